package driven

import (
	"context"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
)

// KV is flat key-value persistence for small serialized blobs.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}

// ModuleCache mirrors the module list for degraded-mode listing.
//
// The cache is not authoritative: reconciliation lets any cloud-reported
// store win on conflict, and uses cached entries only to fill in stores the
// cloud failed to report. Load never fails on corrupt data; it degrades to
// an empty list. Callers follow a single-writer-at-a-time discipline per
// session; the read-modify-write cycle is not atomic across processes.
type ModuleCache interface {
	// Load returns the cached module list. Corrupt or missing data
	// yields an empty list, not an error.
	Load(ctx context.Context) ([]domain.Module, error)

	// Save overwrites the cached module list.
	Save(ctx context.Context, modules []domain.Module) error
}
