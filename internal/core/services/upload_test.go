package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/cache"
	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/cache/memory"
	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driving"
)

// --- Mock providers for pipeline testing ---

type uploadMockStores struct {
	createErr   error
	created     []string
	nextHandle  string
	deleteCalls []string
}

func (m *uploadMockStores) CreateStore(_ context.Context, displayName string) (driven.StoreInfo, error) {
	if m.createErr != nil {
		return driven.StoreInfo{}, m.createErr
	}
	m.created = append(m.created, displayName)
	handle := m.nextHandle
	if handle == "" {
		handle = "store-1"
	}
	return driven.StoreInfo{Handle: handle, DisplayName: displayName}, nil
}

func (m *uploadMockStores) ListStores(_ context.Context, _ string) (driven.StorePage, error) {
	return driven.StorePage{}, nil
}

func (m *uploadMockStores) ListDocuments(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (m *uploadMockStores) DeleteStore(_ context.Context, handle string) error {
	m.deleteCalls = append(m.deleteCalls, handle)
	return nil
}

// scriptedUpload drives one file's submission and poll sequence.
type scriptedUpload struct {
	submitErr error
	opHandle  string
	polls     []domain.PollResult
}

type uploadMockUploads struct {
	scripts     map[string]*scriptedUpload
	submitted   []string
	mimeByName  map[string]string
	pollCounts  map[string]int
	unknownPoll driven.Operation
}

func newUploadMockUploads() *uploadMockUploads {
	return &uploadMockUploads{
		scripts:    make(map[string]*scriptedUpload),
		mimeByName: make(map[string]string),
		pollCounts: make(map[string]int),
	}
}

func (m *uploadMockUploads) SubmitUpload(_ context.Context, _ string, _ []byte, mimeType, displayName string) (string, error) {
	script, ok := m.scripts[displayName]
	if !ok {
		return "", fmt.Errorf("no script for %s", displayName)
	}
	if script.submitErr != nil {
		return "", script.submitErr
	}
	m.submitted = append(m.submitted, displayName)
	m.mimeByName[displayName] = mimeType
	return script.opHandle, nil
}

func (m *uploadMockUploads) OperationStatus(_ context.Context, opHandle string) (driven.Operation, error) {
	for name, script := range m.scripts {
		if script.opHandle != opHandle {
			continue
		}
		i := m.pollCounts[name]
		m.pollCounts[name]++
		if i >= len(script.polls) {
			i = len(script.polls) - 1
		}
		res := script.polls[i]
		return driven.Operation{Handle: opHandle, Done: res.Done, ErrMessage: res.ErrMessage}, res.PollErr
	}
	return m.unknownPoll, nil
}

func newTestPipeline(stores driven.StoreProvider, uploads driven.UploadProvider, repo driven.ModuleCache, maxPolls int) *UploadPipeline {
	return NewUploadPipeline(stores, uploads, repo, fastRetrier(2), PipelineConfig{
		PollInterval: time.Millisecond,
		MaxPolls:     maxPolls,
	})
}

func TestUploadBatch_SingleFileSucceeds(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	uploads.scripts["algebra.pdf"] = &scriptedUpload{
		opHandle: "op-1",
		polls: []domain.PollResult{
			{Done: false},
			{Done: false},
			{Done: true},
		},
	}
	repo := cache.NewRepository(memory.NewKV())
	ctx := context.Background()

	var progress []domain.UploadProgress
	result, err := newTestPipeline(stores, uploads, repo, 10).UploadBatch(ctx,
		[]domain.UploadFile{{Name: "algebra.pdf", Data: make([]byte, 5*1024*1024)}},
		"Grade 5 Math",
		func(p domain.UploadProgress) { progress = append(progress, p) },
	)

	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, []string{"Grade 5 Math"}, stores.created)
	assert.Equal(t, "Grade 5 Math", result.Module.Name)
	assert.Equal(t, "store-1", result.Module.StoreHandle)
	assert.Equal(t, []string{"algebra.pdf"}, result.Module.Documents)
	assert.Equal(t, "application/pdf", uploads.mimeByName["algebra.pdf"])
	assert.Equal(t, 3, uploads.pollCounts["algebra.pdf"])

	// Progress carried the filename and human-readable size.
	require.NotEmpty(t, progress)
	assert.Equal(t, 1, progress[0].Index)
	assert.Equal(t, 1, progress[0].Total)
	assert.Contains(t, progress[0].Message, "algebra.pdf")
	assert.Contains(t, progress[0].Message, "MB")

	// Confirmed upload is durably cached without the placeholder.
	cached, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, []string{"algebra.pdf"}, cached[0].Documents)
}

func TestUploadBatch_PollCeilingRaisesIndexingTimeout(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	uploads.scripts["slow.pdf"] = &scriptedUpload{
		opHandle: "op-1",
		polls:    []domain.PollResult{{Done: false}},
	}
	repo := cache.NewRepository(memory.NewKV())

	result, err := newTestPipeline(stores, uploads, repo, 150).UploadBatch(context.Background(),
		[]domain.UploadFile{{Name: "slow.pdf", Data: []byte("x")}}, "Slow", nil)

	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 150, uploads.pollCounts["slow.pdf"])

	// Indexing timeout is distinct from a provider-reported error.
	assert.True(t, domain.IsTimeout(result.Failures[0].Err))
	assert.Contains(t, result.Failures[0].Err.Error(), "may still")
}

func TestUploadBatch_NoOperationHandleIsPermanent(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	uploads.scripts["rejected.pdf"] = &scriptedUpload{opHandle: ""}
	uploads.scripts["fine.pdf"] = &scriptedUpload{
		opHandle: "op-2",
		polls:    []domain.PollResult{{Done: true}},
	}
	repo := cache.NewRepository(memory.NewKV())

	result, err := newTestPipeline(stores, uploads, repo, 10).UploadBatch(context.Background(),
		[]domain.UploadFile{
			{Name: "rejected.pdf", Data: []byte("x")},
			{Name: "fine.pdf", Data: []byte("y")},
		}, "Mixed", nil)

	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "rejected.pdf", result.Failures[0].FileName)
	assert.ErrorIs(t, result.Failures[0].Err, domain.ErrUploadRejected)
	assert.Equal(t, domain.FailurePermanent, domain.FailureKindOf(result.Failures[0].Err))

	// One file's failure does not cancel the rest.
	assert.Equal(t, []string{"fine.pdf"}, result.Module.Documents)
}

func TestUploadBatch_PollErrorsAreTolerated(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	uploads.scripts["flaky.pdf"] = &scriptedUpload{
		opHandle: "op-1",
		polls: []domain.PollResult{
			{PollErr: errors.New("503 unavailable")},
			{PollErr: errors.New("503 unavailable")},
			{Done: true},
		},
	}
	repo := cache.NewRepository(memory.NewKV())

	result, err := newTestPipeline(stores, uploads, repo, 10).UploadBatch(context.Background(),
		[]domain.UploadFile{{Name: "flaky.pdf", Data: []byte("x")}}, "Flaky", nil)

	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, []string{"flaky.pdf"}, result.Module.Documents)
}

func TestUploadBatch_ProviderErrorPayloadSurfacedAsReason(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	uploads.scripts["bad.pdf"] = &scriptedUpload{
		opHandle: "op-1",
		polls:    []domain.PollResult{{Done: true, ErrMessage: "unsupported page count"}},
	}
	repo := cache.NewRepository(memory.NewKV())

	result, err := newTestPipeline(stores, uploads, repo, 10).UploadBatch(context.Background(),
		[]domain.UploadFile{{Name: "bad.pdf", Data: []byte("x")}}, "Bad", nil)

	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Err.Error(), "unsupported page count")
	assert.False(t, domain.IsTimeout(result.Failures[0].Err))
}

func TestUploadBatch_SequentialSubmissionOrder(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		uploads.scripts[name] = &scriptedUpload{
			opHandle: "op-" + name,
			polls:    []domain.PollResult{{Done: true}},
		}
	}
	repo := cache.NewRepository(memory.NewKV())

	result, err := newTestPipeline(stores, uploads, repo, 10).UploadBatch(context.Background(),
		[]domain.UploadFile{
			{Name: "a.pdf", Data: []byte("1")},
			{Name: "b.pdf", Data: []byte("2")},
			{Name: "c.pdf", Data: []byte("3")},
		}, "Ordered", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, uploads.submitted)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, result.Module.Documents)
}

func TestUploadBatch_EmptyBatchRejected(t *testing.T) {
	repo := cache.NewRepository(memory.NewKV())
	pipeline := newTestPipeline(&uploadMockStores{}, newUploadMockUploads(), repo, 10)

	_, err := pipeline.UploadBatch(context.Background(), nil, "Empty", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestUploadBatch_MissingLabelRejected(t *testing.T) {
	repo := cache.NewRepository(memory.NewKV())
	pipeline := newTestPipeline(&uploadMockStores{}, newUploadMockUploads(), repo, 10)

	_, err := pipeline.UploadBatch(context.Background(),
		[]domain.UploadFile{{Name: "a.pdf"}}, "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadBatch_CreateStoreFailurePropagates(t *testing.T) {
	stores := &uploadMockStores{createErr: errors.New("401: API key not valid")}
	repo := cache.NewRepository(memory.NewKV())
	pipeline := newTestPipeline(stores, newUploadMockUploads(), repo, 10)

	_, err := pipeline.UploadBatch(context.Background(),
		[]domain.UploadFile{{Name: "a.pdf"}}, "Doomed", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create store")
}

func TestUploadBatch_PlaceholderCachedUntilFirstDocument(t *testing.T) {
	stores := &uploadMockStores{}
	uploads := newUploadMockUploads()
	uploads.scripts["slow.pdf"] = &scriptedUpload{
		opHandle: "op-1",
		polls:    []domain.PollResult{{Done: false}},
	}
	kv := memory.NewKV()
	repo := cache.NewRepository(kv)
	ctx := context.Background()

	var sawPlaceholder bool
	_, err := newTestPipeline(stores, uploads, repo, 3).UploadBatch(ctx,
		[]domain.UploadFile{{Name: "slow.pdf", Data: []byte("x")}}, "Pending",
		func(domain.UploadProgress) {
			cached, loadErr := repo.Load(ctx)
			if loadErr == nil && len(cached) == 1 && cached[0].HasDocument(domain.DocPlaceholder) {
				sawPlaceholder = true
			}
		})

	require.NoError(t, err)
	assert.True(t, sawPlaceholder, "placeholder entry should be cached while indexing is pending")
}

var _ driving.ProgressFunc = func(domain.UploadProgress) {}
