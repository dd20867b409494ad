package translation

import (
	"sort"
	"strings"
)

type placeName struct {
	source  string
	english string
}

// placeNames covers the Bay Area cities and the New York / New Jersey neighborhoods
// users search for most often.
var placeNames = []placeName{
	{"旧金山", "San Francisco"},
	{"圣弗朗西斯科", "San Francisco"},
	{"三藩市", "San Francisco"},
	{"圣何塞", "San Jose"},
	{"圣荷西", "San Jose"},
	{"洛思阿图斯", "Los Altos"},
	{"洛斯阿尔托斯", "Los Altos"},
	{"帕洛阿尔托", "Palo Alto"},
	{"帕罗奥图", "Palo Alto"},
	{"山景城", "Mountain View"},
	{"桑尼维尔", "Sunnyvale"},
	{"桑尼韦尔", "Sunnyvale"},
	{"库比蒂诺", "Cupertino"},
	{"库珀蒂诺", "Cupertino"},
	{"圣克拉拉", "Santa Clara"},
	{"圣马特奥", "San Mateo"},
	{"雷德伍德城", "Redwood City"},
	{"弗里蒙特", "Fremont"},
	{"海沃德", "Hayward"},
	{"奥克兰", "Oakland"},
	{"伯克利", "Berkeley"},
	{"柏克莱", "Berkeley"},
	{"加州", "California"},
	{"加利福尼亚", "California"},
	{"美国", "USA"},
	{"哈里森", "Harrison"},
	{"曼哈顿", "Manhattan"},
	{"布鲁克林", "Brooklyn"},
	{"皇后区", "Queens"},
	{"布朗克斯", "Bronx"},
	{"史坦顿岛", "Staten Island"},
	{"泽西城", "Jersey City"},
	{"霍博肯", "Hoboken"},
	{"长岛市", "Long Island City"},
	{"威廉斯堡", "Williamsburg"},
	{"阿斯托利亚", "Astoria"},
	{"东村", "East Village"},
	{"西村", "West Village"},
	{"李堡", "Fort Lee"},
}

// Dictionary maps well-known place names to English.
type Dictionary struct {
	exact map[string]string
	// ordered by descending key length so the most specific key wins substring lookups
	ordered []placeName
}

// NewDictionary builds the default place-name dictionary.
func NewDictionary() *Dictionary {
	return newDictionary(placeNames)
}

func newDictionary(entries []placeName) *Dictionary {
	d := &Dictionary{exact: make(map[string]string, len(entries))}
	for _, e := range entries {
		d.exact[e.source] = e.english
	}
	d.ordered = append([]placeName(nil), entries...)
	sort.SliceStable(d.ordered, func(i, j int) bool {
		return len([]rune(d.ordered[i].source)) > len([]rune(d.ordered[j].source))
	})
	return d
}

// Lookup returns the English name for an exact (trimmed) match.
func (d *Dictionary) Lookup(text string) (string, bool) {
	v, ok := d.exact[strings.TrimSpace(text)]
	return v, ok
}

// ReplaceFirst replaces the first dictionary key found inside text, once.
func (d *Dictionary) ReplaceFirst(text string) (string, bool) {
	for _, e := range d.ordered {
		if strings.Contains(text, e.source) {
			return strings.Replace(text, e.source, e.english, 1), true
		}
	}
	return text, false
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.exact)
}
