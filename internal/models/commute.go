package models

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CommuteResult is the travel estimate between two points.
// Duration is in seconds and Distance in meters.
type CommuteResult struct {
	Destination  *Coordinate `json:"destination,omitempty"`
	Duration     float64     `json:"duration"`
	Distance     float64     `json:"distance"`
	DurationText string      `json:"durationText"`
	DistanceText string      `json:"distanceText"`
	Mode         string      `json:"mode"`
	IsEstimate   bool        `json:"isEstimate,omitempty"`
}
