package handler

import (
	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

// toResourceInput shapes a validated request into the service DTO.
func toResourceInput(req resourceRequest) ports.ResourceInput {
	return ports.ResourceInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       req.Status,
		Quantity:     req.Quantity.Value,
		Unit:         req.Unit,
		Cost:         req.Cost.Value,
		Supplier:     req.Supplier,
		URL:          req.URL,
		Location:     req.Location,
		Notes:        req.Notes,
		MinimumStock: req.MinimumStock.Value,
	}
}

func toResourceResponse(r domain.Resource) resourceResponse {
	return resourceResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     string(r.Category),
		Status:       string(r.Status),
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		Cost:         r.Cost,
		Supplier:     r.Supplier,
		URL:          r.URL,
		Location:     r.Location,
		Notes:        r.Notes,
		MinimumStock: r.MinimumStock,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toResourceResponses(items []domain.Resource) []resourceResponse {
	out := make([]resourceResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toResourceResponse(r))
	}
	return out
}

func toStatsResponse(s domain.Stats) statsResponse {
	byCategory := make(map[string]int, len(s.ByCategory))
	for c, n := range s.ByCategory {
		byCategory[string(c)] = n
	}
	byStatus := make(map[string]int, len(s.ByStatus))
	for st, n := range s.ByStatus {
		byStatus[string(st)] = n
	}
	return statsResponse{
		Total:          s.Total,
		ByCategory:     byCategory,
		ByStatus:       byStatus,
		RecentActivity: toResourceResponses(s.RecentActivity),
	}
}
