package models

// Place is a geocoder feature normalized to the fields the frontend consumes.
type Place struct {
	Name        *string  `json:"name"`
	Address     string   `json:"address"`
	Street      *string  `json:"street"`
	HouseNumber *string  `json:"housenumber"`
	City        *string  `json:"city"`
	County      *string  `json:"county"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	Postcode    *string  `json:"postcode"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// CountryName returns the country or an empty string.
func (p Place) CountryName() string {
	if p.Country == nil {
		return ""
	}
	return *p.Country
}

// GeocodeResult is the payload of both geocoding endpoints.
type GeocodeResult struct {
	Top        *Place  `json:"top"`
	Candidates []Place `json:"candidates"`
}

// NewGeocodeResult builds a result whose top entry is the first candidate.
func NewGeocodeResult(candidates []Place) GeocodeResult {
	if candidates == nil {
		candidates = []Place{}
	}
	res := GeocodeResult{Candidates: candidates}
	if len(candidates) > 0 {
		top := candidates[0]
		res.Top = &top
	}
	return res
}
