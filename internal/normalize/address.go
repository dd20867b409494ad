package normalize

import (
	"regexp"
	"strings"
)

var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

var (
	stateCodePattern = regexp.MustCompile(`\b([A-Z]{2})\b`)
	zipPattern       = regexp.MustCompile(`\b(\d{5}(-\d{4})?)\b`)
)

// ParsedAddress is a comma-separated US address split into components.
type ParsedAddress struct {
	Original string
	City     string
	State    string // two-letter code
	ZipCode  string
	Parts    []string
}

// ParseAddress reads the address right to left: state, then ZIP, and whatever remains
// as place parts. The last remaining part is taken as the city. Blank input yields nil.
func ParseAddress(address string) *ParsedAddress {
	cleaned := strings.TrimSpace(address)
	if cleaned == "" {
		return nil
	}

	parsed := &ParsedAddress{Original: cleaned}
	parts := strings.Split(cleaned, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		part := strings.TrimSpace(parts[i])
		if part == "" {
			continue
		}

		if parsed.State == "" {
			if m := stateCodePattern.FindStringSubmatch(part); m != nil {
				if _, ok := usStates[m[1]]; ok {
					parsed.State = m[1]
					continue
				}
			}
			if code := stateCodeByName(part); code != "" {
				parsed.State = code
				continue
			}
		}

		if parsed.ZipCode == "" {
			if m := zipPattern.FindStringSubmatch(part); m != nil {
				parsed.ZipCode = m[1]
				continue
			}
		}

		parsed.Parts = append([]string{part}, parsed.Parts...)
	}

	if len(parsed.Parts) > 0 {
		parsed.City = parsed.Parts[len(parsed.Parts)-1]
	}
	return parsed
}

func stateCodeByName(name string) string {
	for code, full := range usStates {
		if strings.EqualFold(full, name) {
			return code
		}
	}
	return ""
}

// GeocodingQueries lists query strings to try, most specific first, without duplicates.
func GeocodingQueries(address string) []string {
	parsed := ParseAddress(address)
	if parsed == nil {
		return []string{address}
	}

	var queries []string
	seen := make(map[string]struct{})
	add := func(q string) {
		if _, ok := seen[q]; ok {
			return
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	add(parsed.Original)
	if parsed.City != "" && parsed.State != "" {
		add(parsed.City + ", " + parsed.State)
		add(parsed.City + ", " + usStates[parsed.State])
	}
	if len(parsed.Parts) > 1 && parsed.State != "" {
		for _, part := range parsed.Parts {
			add(part + ", " + parsed.State)
		}
	}
	return queries
}
