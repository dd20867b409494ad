package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	parsed := ParseAddress("123 Main St, Palo Alto, CA 94301")
	require.NotNil(t, parsed)
	assert.Equal(t, "CA", parsed.State)
	assert.Equal(t, "Palo Alto", parsed.City)
	assert.Equal(t, []string{"123 Main St", "Palo Alto"}, parsed.Parts)

	parsed = ParseAddress("Hoboken, New Jersey, 07030")
	require.NotNil(t, parsed)
	assert.Equal(t, "NJ", parsed.State)
	assert.Equal(t, "07030", parsed.ZipCode)
	assert.Equal(t, "Hoboken", parsed.City)

	assert.Nil(t, ParseAddress("  "))
}

func TestGeocodingQueries(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    []string
	}{
		{
			name:    "city and state",
			address: "Jersey City, NJ",
			want:    []string{"Jersey City, NJ", "Jersey City, New Jersey"},
		},
		{
			name:    "multiple parts",
			address: "Harrison, Kearny, NJ",
			want: []string{
				"Harrison, Kearny, NJ",
				"Kearny, NJ",
				"Kearny, New Jersey",
				"Harrison, NJ",
			},
		},
		{
			name:    "no state",
			address: "Astoria",
			want:    []string{"Astoria"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeocodingQueries(tt.address))
		})
	}
}
