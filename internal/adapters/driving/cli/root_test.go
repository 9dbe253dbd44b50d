package cli

import (
	"context"
	"errors"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driving"
)

// mockLibrary implements driving.Library for command tests.
type mockLibrary struct {
	modules     []domain.Module
	listErr     error
	batchResult *driving.BatchResult
	batchErr    error
	deleted     []string
	deleteErr   error
}

func (m *mockLibrary) ListModules(_ context.Context) ([]domain.Module, error) {
	return m.modules, m.listErr
}

func (m *mockLibrary) UploadBatch(_ context.Context, files []domain.UploadFile, moduleLabel string, onProgress driving.ProgressFunc) (*driving.BatchResult, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	if onProgress != nil {
		for i, f := range files {
			onProgress(domain.UploadProgress{
				Index:    i + 1,
				Total:    len(files),
				FileName: f.Name,
				Message:  "indexed",
			})
		}
	}
	if m.batchResult != nil {
		return m.batchResult, nil
	}
	module := domain.Module{Name: moduleLabel, StoreHandle: "fileSearchStores/test"}
	for _, f := range files {
		module.AddDocument(f.Name)
	}
	return &driving.BatchResult{Module: module}, nil
}

func (m *mockLibrary) DeleteModule(_ context.Context, storeHandle string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, storeHandle)
	return nil
}

// mockAnswerer implements driving.Answerer for command tests.
type mockAnswerer struct {
	answer domain.Answer
	err    error
	asked  []string
}

func (m *mockAnswerer) Ask(_ context.Context, _, question string) (domain.Answer, error) {
	m.asked = append(m.asked, question)
	return m.answer, m.err
}

// setupTestServices installs mock services and returns a cleanup func.
func setupTestServices() func() {
	lib := &mockLibrary{
		modules: []domain.Module{
			{Name: "Biology", StoreHandle: "fileSearchStores/bio", Documents: []string{"cells.pdf"}},
		},
	}
	ans := &mockAnswerer{
		answer: domain.Answer{
			Text:      "Mitochondria produce ATP.",
			Citations: []domain.Citation{{Source: "cells.pdf", Snippet: "the powerhouse"}},
		},
	}
	SetLibrary(lib)
	SetAnswerer(ans)
	return func() {
		SetLibrary(nil)
		SetAnswerer(nil)
	}
}

var errServiceDown = errors.New("service unavailable")
