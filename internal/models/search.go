package models

// SearchResultType tags which variant a SearchResult holds.
type SearchResultType string

const (
	SearchResultArea     SearchResultType = "area"
	SearchResultBuilding SearchResultType = "building"
	SearchResultError    SearchResultType = "error"
)

// SearchResult is the outcome of a free-text search. Consumers switch on Type.
type SearchResult struct {
	Type       SearchResultType `json:"type"`
	Found      bool             `json:"found"`
	SearchType string           `json:"searchType,omitempty"`
	Areas      []Area           `json:"areas"`
	Details    *AreaDetails     `json:"details,omitempty"`
	Buildings  []Building       `json:"buildings"`
	Error      string           `json:"error,omitempty"`
}

// AreaMatch wraps the detail bundle of the winning area.
func AreaMatch(picked Area, details AreaDetails) SearchResult {
	return SearchResult{
		Type:       SearchResultArea,
		Found:      true,
		SearchType: "area_match",
		Areas:      []Area{picked},
		Details:    &details,
		Buildings:  []Building{},
	}
}

// BuildingMatch wraps the building fallback; Found is false when nothing matched.
func BuildingMatch(buildings []Building) SearchResult {
	if buildings == nil {
		buildings = []Building{}
	}
	return SearchResult{
		Type:       SearchResultBuilding,
		Found:      len(buildings) > 0,
		SearchType: "building_fallback",
		Areas:      []Area{},
		Buildings:  buildings,
	}
}

// SearchFailure reports an orchestration error without leaking it as a Go error.
func SearchFailure(msg string) SearchResult {
	return SearchResult{
		Type:      SearchResultError,
		Found:     false,
		Areas:     []Area{},
		Buildings: []Building{},
		Error:     msg,
	}
}

// SearchFilters narrows a search result after resolution.
type SearchFilters struct {
	Tags []string `json:"tags,omitempty"`
}

// LocateResult points the map at an area or a geocoded place.
type LocateResult struct {
	Type        string     `json:"type"`
	Area        *Area      `json:"area,omitempty"`
	Place       *Place     `json:"place,omitempty"`
	Coordinates [2]float64 `json:"coordinates"`
}
