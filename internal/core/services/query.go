package services

import (
	"context"
	"fmt"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driving"
)

// defaultInstructions frames answers for the study-help use case and keeps
// the model grounded in the indexed material.
const defaultInstructions = "You are a study assistant. Answer using only the " +
	"provided course material. If the material does not cover the question, " +
	"say so instead of guessing. Cite the document each fact comes from."

// Ensure QueryService implements the interface.
var _ driving.Answerer = (*QueryService)(nil)

// QueryService answers grounded questions against one module. It shares
// the Retrier with the sync core; the attempt index is forwarded so the
// provider can fall back to a cheaper model on retries.
type QueryService struct {
	provider driven.QueryProvider
	retrier  *Retrier
}

// NewQueryService creates a query service.
func NewQueryService(provider driven.QueryProvider, retrier *Retrier) *QueryService {
	return &QueryService{provider: provider, retrier: retrier}
}

// Ask answers question grounded in the documents of storeHandle.
func (s *QueryService) Ask(ctx context.Context, storeHandle, question string) (domain.Answer, error) {
	if s.provider == nil {
		return domain.Answer{}, domain.ErrProviderUnavailable
	}
	if storeHandle == "" || question == "" {
		return domain.Answer{}, fmt.Errorf("%w: store handle and question are required", domain.ErrInvalidInput)
	}

	var answer domain.Answer
	err := s.retrier.Do(ctx, func(attempt int) error {
		var callErr error
		answer, callErr = s.provider.Query(ctx, driven.QueryRequest{
			StoreHandle:  storeHandle,
			Text:         question,
			Instructions: defaultInstructions,
			Attempt:      attempt,
		})
		return callErr
	})
	if err != nil {
		return domain.Answer{}, err
	}
	return answer, nil
}
