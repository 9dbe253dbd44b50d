package domain

import "sort"

const (
	// DocPlaceholder is the sentinel document name cached while a module's
	// first upload is still indexing. It is stripped as soon as at least
	// one real document is confirmed.
	DocPlaceholder = "(indexing in progress)"

	// NoDocsMarker is substituted when a store reports no documents at
	// all, so callers always have something non-blank to render.
	NoDocsMarker = "No files found"
)

// Module is a named collection of documents indexed in one remote store.
//
// StoreHandle is the provider-assigned identifier and the merge key during
// reconciliation. The JSON tags define the local cache shape: an array of
// {name, storeName, books[]} records under a single cache key.
type Module struct {
	// Name is the display label, user-chosen or derived from the remote
	// store's display name. The cloud always wins on naming conflicts.
	Name string `json:"name"`

	// StoreHandle is the opaque identifier of the remote index store.
	// Stable, provider-assigned, unique.
	StoreHandle string `json:"storeName"`

	// Documents holds the display names of indexed documents. Order is
	// not significant; the set contains no duplicates and never the
	// placeholder sentinel once a real document exists.
	Documents []string `json:"books"`
}

// AddDocument inserts name into the document set, dropping the placeholder
// and any marker entry now that a real document exists.
func (m *Module) AddDocument(name string) {
	m.Documents = NormaliseDocuments(append(m.Documents, name))
}

// HasDocument reports whether name is already in the document set.
func (m *Module) HasDocument(name string) bool {
	for _, d := range m.Documents {
		if d == name {
			return true
		}
	}
	return false
}

// DedupeDocuments removes duplicate and empty names while preserving any
// placeholder sentinel. Used for cache entries whose store could not be
// re-checked against the cloud, where indexing may still be in flight.
func DedupeDocuments(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// NormaliseDocuments de-duplicates names, drops placeholder and marker
// sentinels when a real document is present, and falls back to the
// NoDocsMarker when nothing remains. The result is sorted so that
// reconciliation output is deterministic.
func NormaliseDocuments(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	real := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || n == DocPlaceholder || n == NoDocsMarker {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		real = append(real, n)
	}
	if len(real) == 0 {
		return []string{NoDocsMarker}
	}
	sort.Strings(real)
	return real
}
