// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - StoreProvider: Remote index store lifecycle (create/list/delete)
//   - UploadProvider: File submission and indexing-operation polling
//   - ModuleCache: Local mirror of the module list
//   - KV: Flat key-value persistence backing the cache
//
// # Optional Interfaces
//
//   - QueryProvider: Grounded question answering. Without it, the ask
//     surface is disabled; sync and listing still work.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
