package genlang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

type operationResource struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SubmitUpload sends file bytes into a store for indexing and returns the
// handle of the long-running indexing operation. The media endpoint takes
// a multipart request: a JSON metadata part carrying the display name,
// then the file content.
func (c *Client) SubmitUpload(ctx context.Context, storeHandle string, data []byte, mimeType, displayName string) (string, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return "", err
	}

	metadata, err := json.Marshal(map[string]string{"displayName": displayName})
	if err != nil {
		return "", fmt.Errorf("encode upload metadata: %w", err)
	}

	var op operationResource
	resp, err := req.
		SetMultipartField("metadata", "", "application/json", bytes.NewReader(metadata)).
		SetMultipartField("file", displayName, mimeType, bytes.NewReader(data)).
		SetResult(&op).
		Post("/upload/v1beta/" + storeHandle + ":uploadToFileSearchStore")
	if err != nil {
		return "", fmt.Errorf("submit upload: %w", err)
	}
	if err := asAPIError(resp); err != nil {
		return "", fmt.Errorf("submit upload: %w", err)
	}

	logger.Debug("submitted %s (%s, %d bytes) as %s", displayName, mimeType, len(data), op.Name)
	return op.Name, nil
}

// OperationStatus fetches the current status of an indexing operation.
func (c *Client) OperationStatus(ctx context.Context, operationHandle string) (driven.Operation, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return driven.Operation{}, err
	}

	var op operationResource
	resp, err := req.SetResult(&op).Get("/v1beta/" + operationHandle)
	if err != nil {
		return driven.Operation{}, fmt.Errorf("operation status: %w", err)
	}
	if err := asAPIError(resp); err != nil {
		return driven.Operation{}, fmt.Errorf("operation status: %w", err)
	}

	status := driven.Operation{Handle: op.Name, Done: op.Done}
	if op.Error != nil {
		status.ErrMessage = op.Error.Message
	}
	return status, nil
}
