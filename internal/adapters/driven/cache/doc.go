// Package cache implements the local module mirror: a JSON-serialized
// module list stored under one fixed key in a KV backend.
//
// The mirror exists purely to paper over availability gaps in the
// provider's listing endpoints. It is overwritten after every successful
// reconciliation and upload completion, and it is never treated as
// authoritative on conflict.
package cache
