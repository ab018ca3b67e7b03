package domain

import (
	"errors"
	"time"
)

// Category classifies a tracked resource. The set is fixed and aimed at
// small and micro businesses.
type Category string

const (
	CategoryEquipment    Category = "Equipment"
	CategoryRawMaterials Category = "Raw Materials"
	CategoryServices     Category = "Services"
	CategorySoftware     Category = "Software"
	CategoryPersonnel    Category = "Personnel"
	CategoryTraining     Category = "Training"
	CategoryCompliance   Category = "Compliance"
	CategoryMarketing    Category = "Marketing"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryEquipment,
	CategoryRawMaterials,
	CategoryServices,
	CategorySoftware,
	CategoryPersonnel,
	CategoryTraining,
	CategoryCompliance,
	CategoryMarketing,
}

// Status represents the stock state of a resource.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusLowStock  Status = "Low Stock"
	StatusOnOrder   Status = "On Order"
	StatusDepleted  Status = "Depleted"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{
	StatusAvailable,
	StatusLowStock,
	StatusOnOrder,
	StatusDepleted,
}

var ErrResourceNotFound = errors.New("resource not found")
var ErrValidation = errors.New("invalid input")
var ErrNotAuthenticated = errors.New("not authenticated")

// IsValid reports whether the category belongs to the fixed set.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// IsValid reports whether the status belongs to the fixed set.
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Resource is the core aggregate root: a tracked business asset owned by
// exactly one identity.
type Resource struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	OwnerID      string    `json:"owner_id" bson:"owner_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Category     Category  `json:"category" bson:"category"`
	Status       Status    `json:"status" bson:"status"`
	Quantity     *float64  `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Unit         string    `json:"unit,omitempty" bson:"unit,omitempty"`
	Cost         *float64  `json:"cost,omitempty" bson:"cost,omitempty"`
	Supplier     string    `json:"supplier,omitempty" bson:"supplier,omitempty"`
	URL          string    `json:"url,omitempty" bson:"url,omitempty"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
	MinimumStock *float64  `json:"minimum_stock,omitempty" bson:"minimum_stock,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// EffectiveModifiedAt returns the timestamp used for recency ordering:
// the last modification time, falling back to creation time when unset.
func (r Resource) EffectiveModifiedAt() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}
