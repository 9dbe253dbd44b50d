package genlang

import (
	"context"
	"fmt"

	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// documentPageSize is the page size for per-store document listing.
const documentPageSize = 100

// maxDocumentPages caps pagination per store. A provider that keeps
// handing out continuation tokens gets a truncated listing, not an
// unbounded loop.
const maxDocumentPages = 50

type storeResource struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type storeListResponse struct {
	FileSearchStores []storeResource `json:"fileSearchStores"`
	NextPageToken    string          `json:"nextPageToken"`
}

type documentResource struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type documentListResponse struct {
	Documents     []documentResource `json:"documents"`
	NextPageToken string             `json:"nextPageToken"`
}

// CreateStore creates a remote file-search store.
func (c *Client) CreateStore(ctx context.Context, displayName string) (driven.StoreInfo, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return driven.StoreInfo{}, err
	}

	var created storeResource
	resp, err := req.
		SetBody(map[string]string{"displayName": displayName}).
		SetResult(&created).
		Post("/v1beta/fileSearchStores")
	if err != nil {
		return driven.StoreInfo{}, fmt.Errorf("create store: %w", err)
	}
	if err := asAPIError(resp); err != nil {
		return driven.StoreInfo{}, fmt.Errorf("create store: %w", err)
	}

	logger.Debug("created store %s (%q)", created.Name, created.DisplayName)
	return driven.StoreInfo{Handle: created.Name, DisplayName: created.DisplayName}, nil
}

// ListStores returns one page of stores.
func (c *Client) ListStores(ctx context.Context, pageToken string) (driven.StorePage, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return driven.StorePage{}, err
	}
	if pageToken != "" {
		req.SetQueryParam("pageToken", pageToken)
	}

	var listed storeListResponse
	resp, err := req.SetResult(&listed).Get("/v1beta/fileSearchStores")
	if err != nil {
		return driven.StorePage{}, fmt.Errorf("list stores: %w", err)
	}
	if err := asAPIError(resp); err != nil {
		return driven.StorePage{}, fmt.Errorf("list stores: %w", err)
	}

	page := driven.StorePage{NextPageToken: listed.NextPageToken}
	for _, s := range listed.FileSearchStores {
		name := s.DisplayName
		if name == "" {
			name = s.Name
		}
		page.Stores = append(page.Stores, driven.StoreInfo{Handle: s.Name, DisplayName: name})
	}
	return page, nil
}

// ListDocuments returns the display names of documents in a store,
// following pagination up to maxDocumentPages.
func (c *Client) ListDocuments(ctx context.Context, storeHandle string) ([]string, error) {
	var names []string
	token := ""

	for page := 0; page < maxDocumentPages; page++ {
		req, err := c.newRequest(ctx)
		if err != nil {
			return nil, err
		}
		req.SetQueryParam("pageSize", fmt.Sprint(documentPageSize))
		if token != "" {
			req.SetQueryParam("pageToken", token)
		}

		var listed documentListResponse
		resp, err := req.SetResult(&listed).Get("/v1beta/" + storeHandle + "/documents")
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		if err := asAPIError(resp); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}

		for _, d := range listed.Documents {
			name := d.DisplayName
			if name == "" {
				name = d.Name
			}
			names = append(names, name)
		}

		token = listed.NextPageToken
		if token == "" {
			return names, nil
		}
	}

	logger.Warn("document listing for %s stopped after %d pages with a continuation token still present", storeHandle, maxDocumentPages)
	return names, nil
}

// DeleteStore removes a store and everything indexed in it.
func (c *Client) DeleteStore(ctx context.Context, storeHandle string) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetQueryParam("force", "true").
		Delete("/v1beta/" + storeHandle)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if err := asAPIError(resp); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	logger.Debug("deleted store %s", storeHandle)
	return nil
}
