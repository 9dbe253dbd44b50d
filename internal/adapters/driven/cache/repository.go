package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// DefaultKey is the fixed KV key holding the serialized module list.
const DefaultKey = "shelf.modules"

// Ensure Repository implements the interface.
var _ driven.ModuleCache = (*Repository)(nil)

// Repository stores the module list as a JSON array of
// {name, storeName, books[]} records under a single KV key.
type Repository struct {
	kv  driven.KV
	key string
}

// NewRepository creates a repository over kv using DefaultKey.
func NewRepository(kv driven.KV) *Repository {
	return &Repository{kv: kv, key: DefaultKey}
}

// Load returns the cached module list. A missing key or unparsable value
// degrades to an empty list: the cache is an availability fallback, and a
// corrupt fallback must never block listing.
func (r *Repository) Load(ctx context.Context) ([]domain.Module, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load module cache: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var modules []domain.Module
	if err := json.Unmarshal([]byte(raw), &modules); err != nil {
		logger.Warn("module cache is corrupt, treating as empty: %v", err)
		return nil, nil
	}
	return modules, nil
}

// Save overwrites the cached module list.
func (r *Repository) Save(ctx context.Context, modules []domain.Module) error {
	if modules == nil {
		modules = []domain.Module{}
	}
	raw, err := json.Marshal(modules)
	if err != nil {
		return fmt.Errorf("encode module cache: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, string(raw)); err != nil {
		return fmt.Errorf("save module cache: %w", err)
	}
	return nil
}
