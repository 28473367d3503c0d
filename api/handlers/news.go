// ABOUTME: Read-only endpoints exposing the latest batch and the per-source watermarks
// ABOUTME: Lets polling clients and operators inspect pipeline state without a socket

package handlers

import (
	"context"
	"net/http"

	"ai-news-api/core/domain"

	"github.com/danielgtaylor/huma/v2"
)

// LatestProvider returns the most recently broadcast batch
type LatestProvider interface {
	Latest() []domain.NewsItem
}

// WatermarkProvider returns the current per-source watermarks
type WatermarkProvider interface {
	Watermarks() domain.Watermarks
}

// NewsHandler serves pipeline state
type NewsHandler struct {
	latest LatestProvider
	marks  WatermarkProvider
}

// NewNewsHandler creates a news handler
func NewNewsHandler(latest LatestProvider, marks WatermarkProvider) *NewsHandler {
	return &NewsHandler{latest: latest, marks: marks}
}

// RegisterRoutes registers the news routes
func (h *NewsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getLatestNews",
		Method:      http.MethodGet,
		Path:        "/news/latest",
		Summary:     "Latest broadcast batch",
		Description: "Returns the batch most recently pushed to WebSocket clients",
		Tags:        []string{"News"},
	}, h.Latest)

	huma.Register(api, huma.Operation{
		OperationID: "getWatermarks",
		Method:      http.MethodGet,
		Path:        "/watermarks",
		Summary:     "Per-source watermarks",
		Tags:        []string{"News"},
	}, h.Watermarks)
}

// LatestOutput is the body of GET /news/latest
type LatestOutput struct {
	Body struct {
		Count int               `json:"count"`
		Items []domain.NewsItem `json:"items"`
	}
}

// Latest handles GET /news/latest
func (h *NewsHandler) Latest(ctx context.Context, _ *struct{}) (*LatestOutput, error) {
	items := h.latest.Latest()
	if items == nil {
		items = []domain.NewsItem{}
	}
	out := &LatestOutput{}
	out.Body.Count = len(items)
	out.Body.Items = items
	return out, nil
}

// WatermarksOutput is the body of GET /watermarks
type WatermarksOutput struct {
	Body domain.Watermarks
}

// Watermarks handles GET /watermarks
func (h *NewsHandler) Watermarks(ctx context.Context, _ *struct{}) (*WatermarksOutput, error) {
	marks := h.marks.Watermarks()
	if marks == nil {
		marks = domain.Watermarks{}
	}
	return &WatermarksOutput{Body: marks}, nil
}
