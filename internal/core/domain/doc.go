// Package domain defines the core business entities for Shelf.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Module: A named collection of documents indexed in a remote store
//   - UploadFile / UploadState: A file moving through the indexing pipeline
//   - Failure: The transient/permanent/timeout error taxonomy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
