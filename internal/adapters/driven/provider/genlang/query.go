package genlang

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

type generatePart struct {
	Text string `json:"text,omitempty"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type fileSearchTool struct {
	FileSearch struct {
		FileSearchStoreNames []string `json:"fileSearchStoreNames"`
	} `json:"fileSearch"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	Contents          []generateContent `json:"contents"`
	Tools             []fileSearchTool  `json:"tools"`
}

type generateResponse struct {
	Candidates []struct {
		Content           generateContent `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				RetrievedContext struct {
					Title string `json:"title"`
					Text  string `json:"text"`
				} `json:"retrievedContext"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// modelFor picks the generation model for a retry attempt. The first try
// uses the primary model; retries degrade to the fallback.
func (c *Client) modelFor(attempt int) string {
	if attempt > 0 && c.config.FallbackModel != "" {
		return c.config.FallbackModel
	}
	return c.config.Model
}

// Query generates an answer grounded in one store's documents.
func (c *Client) Query(ctx context.Context, request driven.QueryRequest) (domain.Answer, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return domain.Answer{}, err
	}

	model := c.modelFor(request.Attempt)
	logger.Debug("grounded query against %s using %s (attempt %d)", request.StoreHandle, model, request.Attempt)

	var tool fileSearchTool
	tool.FileSearch.FileSearchStoreNames = []string{request.StoreHandle}

	body := generateRequest{
		Contents: []generateContent{{Role: "user", Parts: []generatePart{{Text: request.Text}}}},
		Tools:    []fileSearchTool{tool},
	}
	if request.Instructions != "" {
		body.SystemInstruction = &generateContent{Parts: []generatePart{{Text: request.Instructions}}}
	}

	var generated generateResponse
	resp, err := req.
		SetBody(body).
		SetResult(&generated).
		Post("/v1beta/models/" + model + ":generateContent")
	if err != nil {
		return domain.Answer{}, fmt.Errorf("grounded query: %w", err)
	}
	if err := asAPIError(resp); err != nil {
		return domain.Answer{}, fmt.Errorf("grounded query: %w", err)
	}

	if len(generated.Candidates) == 0 {
		return domain.Answer{}, fmt.Errorf("grounded query: no candidates returned")
	}
	candidate := generated.Candidates[0]

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}

	answer := domain.Answer{Text: text.String()}
	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			answer.Citations = append(answer.Citations, domain.Citation{
				Source:  chunk.RetrievedContext.Title,
				Snippet: chunk.RetrievedContext.Text,
			})
		}
	}
	return answer, nil
}
