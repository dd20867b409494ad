// Package normalize cleans free-text search terms and addresses before they reach a store or a geocoder.
package normalize

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// aliases maps a canonical neighborhood name to common misspellings and short forms.
var aliases = map[string][]string{
	"west village":        {"westvillage", "west vilage", "west vil", "wvillage"},
	"east village":        {"eastvillage", "east vilage", "east vil", "evillage"},
	"soho":                {"so ho", "south houston"},
	"noho":                {"no ho", "north houston"},
	"tribeca":             {"tri beca", "triangle below canal"},
	"chinatown":           {"china town"},
	"little italy":        {"littleitaly"},
	"financial district":  {"fidi", "financial", "wall street"},
	"upper east side":     {"ues", "upper east"},
	"upper west side":     {"uws", "upper west"},
	"midtown":             {"mid town", "times square"},
	"chelsea":             {"chelsey"},
	"greenwich village":   {"greenwich", "village"},
	"manhattan":           {"manhatan", "manhatten"},
	"brooklyn":            {"brookyn", "bklyn"},
	"queens":              {"queen"},
	"bronx":               {"the bronx"},
	"hoboken":             {"hobokn", "hobokken"},
	"jersey city":         {"jc", "jerseycity"},
	"fort lee":            {"fortlee"},
}

// Normalize lowercases and trims term and collapses runs of whitespace to one space.
func Normalize(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// ExpandVariants returns the normalized term followed by its known aliases,
// a no-space form, a title-cased form and an ASCII-folded form. Order is stable
// and duplicates are dropped. An empty term yields no variants.
func ExpandVariants(term string) []string {
	base := Normalize(term)
	if base == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	add(base)
	for _, a := range aliases[base] {
		add(a)
	}
	if strings.Contains(base, " ") {
		add(strings.ReplaceAll(base, " ", ""))
	}
	// a Caser holds state, so each call gets its own
	add(cases.Title(language.English).String(base))
	if folded := strings.ToLower(unidecode.Unidecode(base)); folded != base && isPrintableASCII(folded) {
		add(folded)
	}
	return out
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return strings.TrimSpace(s) != ""
}
