package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type resourceRequest struct {
	Title        string    `json:"title"         validate:"required"`
	Description  string    `json:"description"`
	Category     string    `json:"category"      validate:"required,oneof=Equipment 'Raw Materials' Services Software Personnel Training Compliance Marketing"`
	Status       string    `json:"status"        validate:"required,oneof=Available 'Low Stock' 'On Order' Depleted"`
	Quantity     OptNumber `json:"quantity"`
	Unit         string    `json:"unit"`
	Cost         OptNumber `json:"cost"`
	Supplier     string    `json:"supplier"`
	URL          string    `json:"url"           validate:"omitempty,url"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes"`
	MinimumStock OptNumber `json:"minimum_stock"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type resourceResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	Quantity     *float64  `json:"quantity"`
	Unit         string    `json:"unit,omitempty"`
	Cost         *float64  `json:"cost"`
	Supplier     string    `json:"supplier,omitempty"`
	URL          string    `json:"url,omitempty"`
	Location     string    `json:"location,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	MinimumStock *float64  `json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listResourcesResponse struct {
	Data       []resourceResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type statsResponse struct {
	Total          int                `json:"total"`
	ByCategory     map[string]int     `json:"by_category"`
	ByStatus       map[string]int     `json:"by_status"`
	RecentActivity []resourceResponse `json:"recent_activity"`
}

type activityEventResponse struct {
	ResourceID string    `json:"resource_id"`
	Action     string    `json:"action"`
	Title      string    `json:"title"`
	Timestamp  time.Time `json:"timestamp"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}
