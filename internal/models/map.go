package models

// MapLevel tells the map which layer a MapData fills.
type MapLevel string

const (
	MapLevelAreas     MapLevel = "areas"
	MapLevelBuildings MapLevel = "buildings"
)

// MapFilters narrows the map feed. An empty Location or "all" lists everything.
type MapFilters struct {
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// MapData is the content of the map at one zoom level: neighborhoods when zoomed in,
// buildings when zoomed out. The unused list is empty.
type MapData struct {
	Level     MapLevel   `json:"level"`
	Zoom      float64    `json:"zoom"`
	Areas     []Area     `json:"areas"`
	Buildings []Building `json:"buildings"`
}
