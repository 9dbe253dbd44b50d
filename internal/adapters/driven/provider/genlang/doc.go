// Package genlang implements the index store, upload and grounded query
// ports against the generative-language REST API.
//
// The adapter speaks the v1beta file-search surface: store lifecycle under
// /v1beta/fileSearchStores, media uploads under /upload/v1beta, and
// long-running operation polling under /v1beta/{operation}. Requests are
// authenticated with an API key header and rate limited client-side so
// bulk listing stays under provider quotas.
//
// Error classification for retries lives in the domain package; this
// adapter only makes sure provider failures keep their HTTP status and
// status words in the error message.
package genlang
