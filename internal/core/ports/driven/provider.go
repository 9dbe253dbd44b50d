package driven

import (
	"context"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
)

// StoreInfo describes one remote index store as reported by the provider.
type StoreInfo struct {
	// Handle is the provider-assigned store identifier.
	Handle string

	// DisplayName is the provider-recorded display name.
	DisplayName string
}

// StorePage is one page of a store listing.
type StorePage struct {
	// Stores are the entries on this page.
	Stores []StoreInfo

	// NextPageToken continues the listing when non-empty.
	NextPageToken string
}

// StoreProvider manages remote index stores.
// The provider is authoritative for store existence and naming; the local
// cache only papers over availability gaps in these calls.
type StoreProvider interface {
	// CreateStore creates a remote store with the given display name.
	CreateStore(ctx context.Context, displayName string) (StoreInfo, error)

	// ListStores returns one page of stores. Pass an empty token for the
	// first page; follow NextPageToken until it is empty.
	ListStores(ctx context.Context, pageToken string) (StorePage, error)

	// ListDocuments returns the display names of documents indexed in a
	// store.
	ListDocuments(ctx context.Context, storeHandle string) ([]string, error)

	// DeleteStore removes a store and everything indexed in it.
	DeleteStore(ctx context.Context, storeHandle string) error
}

// Operation is the observed status of a long-running indexing job.
type Operation struct {
	// Handle is the provider-assigned operation identifier.
	Handle string

	// Done reports whether the job has finished, successfully or not.
	Done bool

	// ErrMessage carries the provider-reported error payload when the
	// job finished unsuccessfully.
	ErrMessage string
}

// UploadProvider submits files for indexing and polls the resulting jobs.
type UploadProvider interface {
	// SubmitUpload sends file bytes into a store and returns the handle
	// of the indexing operation. An empty handle means the upload was
	// rejected.
	SubmitUpload(ctx context.Context, storeHandle string, data []byte, mimeType, displayName string) (string, error)

	// OperationStatus fetches the current status of an indexing job.
	OperationStatus(ctx context.Context, operationHandle string) (Operation, error)
}

// QueryRequest is one grounded question against a store.
type QueryRequest struct {
	// StoreHandle selects the index store to ground against.
	StoreHandle string

	// Text is the user's question.
	Text string

	// Instructions is the system prompt framing the answer.
	Instructions string

	// Attempt is the retry attempt index, 0 for the first try. Providers
	// may degrade to a cheaper model on retries.
	Attempt int
}

// QueryProvider answers questions grounded in an index store.
type QueryProvider interface {
	// Query generates a grounded answer with citations.
	Query(ctx context.Context, req QueryRequest) (domain.Answer, error)
}
