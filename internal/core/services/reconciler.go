package services

import (
	"context"
	"time"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// Reconciler defaults.
const (
	// DefaultPageDelay spaces out paginated listing calls so a large
	// library does not hammer the provider.
	DefaultPageDelay = 200 * time.Millisecond

	// DefaultListTimeout bounds the whole remote listing walk.
	DefaultListTimeout = 60 * time.Second

	// DefaultMaxPages is a sanity ceiling on pagination; a provider that
	// keeps returning tokens past this is misbehaving.
	DefaultMaxPages = 50
)

// ReconcilerConfig tunes the store registry reconciler.
type ReconcilerConfig struct {
	// PageDelay is the pause between listing pages.
	PageDelay time.Duration

	// ListTimeout bounds the remote store listing as a whole.
	ListTimeout time.Duration

	// MaxPages caps pagination.
	MaxPages int
}

func (c ReconcilerConfig) withDefaults() ReconcilerConfig {
	if c.PageDelay == 0 {
		c.PageDelay = DefaultPageDelay
	}
	if c.ListTimeout == 0 {
		c.ListTimeout = DefaultListTimeout
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	return c
}

// Reconciler produces the module list shown to users by merging the
// cloud-reported stores with the locally cached mirror.
//
// The cloud wins on existence and naming of a store; the cache only fills
// in stores a flaky listing failed to report, and supplies document lists
// when a per-store metadata call fails. The reconciled list is written
// back to the cache, so the mirror tracks cloud truth.
type Reconciler struct {
	stores  driven.StoreProvider
	cache   driven.ModuleCache
	retrier *Retrier
	config  ReconcilerConfig
}

// NewReconciler creates a reconciler. Zero config fields get defaults.
func NewReconciler(stores driven.StoreProvider, cache driven.ModuleCache, retrier *Retrier, config ReconcilerConfig) *Reconciler {
	return &Reconciler{
		stores:  stores,
		cache:   cache,
		retrier: retrier,
		config:  config.withDefaults(),
	}
}

// ListModules reconciles cloud and cache state and returns the result.
// A total listing failure degrades to cache-only output rather than an
// error; reconciliation with unchanged inputs is idempotent.
func (r *Reconciler) ListModules(ctx context.Context) ([]domain.Module, error) {
	cloud, err := WithTimeout(ctx, r.config.ListTimeout, "listing index stores timed out",
		func(tctx context.Context) ([]driven.StoreInfo, error) {
			return r.listAllStores(tctx)
		})
	if err != nil {
		// Degrade to the cache rather than blocking the caller.
		logger.Warn("store listing failed, serving cached modules: %v", err)
		cloud = nil
	}

	cached, err := r.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	cachedByHandle := make(map[string]domain.Module, len(cached))
	for _, m := range cached {
		cachedByHandle[m.StoreHandle] = m
	}

	// Seed from the cloud: its display name wins, its existence wins.
	// Document lists start from the cache seed and are refreshed below.
	merged := make([]domain.Module, 0, len(cloud)+len(cached))
	seen := make(map[string]struct{}, len(cloud))
	for _, s := range cloud {
		if _, ok := seen[s.Handle]; ok {
			continue
		}
		seen[s.Handle] = struct{}{}
		m := domain.Module{Name: s.DisplayName, StoreHandle: s.Handle}
		if prior, ok := cachedByHandle[s.Handle]; ok {
			m.Documents = domain.DedupeDocuments(prior.Documents)
		}
		merged = append(merged, m)
	}

	// Cache fills gaps, never overrides.
	for _, m := range cached {
		if _, ok := seen[m.StoreHandle]; ok {
			continue
		}
		seen[m.StoreHandle] = struct{}{}
		m.Documents = domain.DedupeDocuments(m.Documents)
		merged = append(merged, m)
	}

	for i := range merged {
		r.refreshDocuments(ctx, &merged[i])
	}

	if err := r.cache.Save(ctx, merged); err != nil {
		logger.Warn("failed to persist reconciled modules: %v", err)
	}
	return merged, nil
}

// listAllStores walks the paginated listing to exhaustion.
func (r *Reconciler) listAllStores(ctx context.Context) ([]driven.StoreInfo, error) {
	var all []driven.StoreInfo
	token := ""

	for page := 0; page < r.config.MaxPages; page++ {
		var result driven.StorePage
		err := r.retrier.Do(ctx, func(_ int) error {
			var callErr error
			result, callErr = r.stores.ListStores(ctx, token)
			return callErr
		})
		if err != nil {
			return nil, err
		}

		all = append(all, result.Stores...)
		token = result.NextPageToken
		if token == "" {
			return all, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.config.PageDelay):
		}
	}

	logger.Warn("store listing stopped after %d pages with a continuation token still present", r.config.MaxPages)
	return all, nil
}

// refreshDocuments replaces a module's document list with the cloud view.
// A per-store failure keeps whatever the module already had; a single
// store's metadata hiccup must not blank its listing.
func (r *Reconciler) refreshDocuments(ctx context.Context, m *domain.Module) {
	var fetched []string
	err := r.retrier.Do(ctx, func(_ int) error {
		var callErr error
		fetched, callErr = r.stores.ListDocuments(ctx, m.StoreHandle)
		return callErr
	})
	if err != nil {
		logger.Debug("document listing for %s failed, keeping cached names: %v", m.StoreHandle, err)
		if len(m.Documents) == 0 {
			m.Documents = []string{domain.NoDocsMarker}
		}
		return
	}

	m.Documents = domain.NormaliseDocuments(append(fetched, m.Documents...))
}
