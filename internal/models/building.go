package models

import "time"

// Building is a listing that belongs to at most one area.
type Building struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Category    string       `json:"category,omitempty"`
	Amenities   []string     `json:"amenities"`
	IsFeatured  bool         `json:"is_featured"`
	AreaID      *int64       `json:"area_id"`
	Area        *AreaSummary `json:"areas,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AreaSummary is the slice of the parent area joined onto a building.
type AreaSummary struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	City             string   `json:"city"`
	Borough          string   `json:"borough"`
	AreaTags         []string `json:"area_tags"`
	GeneralLatitude  *float64 `json:"general_latitude"`
	GeneralLongitude *float64 `json:"general_longitude"`
}

// BuildingCategory is a distinct building category prepared for a filter dropdown.
type BuildingCategory struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
