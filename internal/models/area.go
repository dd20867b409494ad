package models

import "time"

// Area is a neighborhood or municipality with an approximate center and aggregate listing statistics.
type Area struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Borough          string   `json:"borough"`
	Description      string   `json:"description"`
	AreaTags         []string `json:"area_tags"`
	GeneralLatitude  *float64 `json:"general_latitude"`
	GeneralLongitude *float64 `json:"general_longitude"`
	TotalBuildings   int      `json:"total_buildings"`
	AvgRentStudio    *float64 `json:"avg_rent_studio"`
	AvgRent1BR       *float64 `json:"avg_rent_1br"`
	AvgRent2BR       *float64 `json:"avg_rent_2br"`
	ImageURL         string   `json:"image_url"`
}

// HasCoordinates reports whether both center coordinates are known.
func (a Area) HasCoordinates() bool {
	return a.GeneralLatitude != nil && a.GeneralLongitude != nil
}

// NewArea is a row produced by a bulk import, before the store assigns an id.
type NewArea struct {
	Name             string   `json:"name"`
	State            string   `json:"state"`
	City             string   `json:"city"`
	Borough          string   `json:"borough"`
	Description      string   `json:"description"`
	GeneralLatitude  float64  `json:"general_latitude"`
	GeneralLongitude float64  `json:"general_longitude"`
	AreaTags         []string `json:"area_tags"`
}

// AmenityRecord is a named amenity attached to an area.
type AmenityRecord struct {
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// TransportRecord is a transit option attached to an area.
type TransportRecord struct {
	Name      string    `json:"transport_name"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AreaDetails bundles an area with the records shown on its detail view.
type AreaDetails struct {
	Area      Area              `json:"area"`
	Amenities []AmenityRecord   `json:"amenities"`
	Transport []TransportRecord `json:"transport"`
	Buildings []Building        `json:"buildings"`
}

// AreaStatus summarizes the areas table.
type AreaStatus struct {
	TotalAreas  int64     `json:"totalAreas"`
	LastUpdated time.Time `json:"lastUpdated"`
}
