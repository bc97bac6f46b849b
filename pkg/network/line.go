package network

import (
	"slices"
	"strings"
)

// DefaultLineColor is substituted for missing or malformed line colors.
const DefaultLineColor = "#E3002B"

// LinePathType selects how an edge is routed between its stations.
type LinePathType string

// Path types.
const (
	PathDiagonal            LinePathType = "diagonal"
	PathPerpendicular       LinePathType = "perpendicular"
	PathRotatePerpendicular LinePathType = "rotate-perpendicular"
	PathSimple              LinePathType = "simple"
)

// DefaultPathType is used when a path type is absent or unknown.
const DefaultPathType = PathDiagonal

// PathFamily groups path types whose parallel edges share one offset space.
type PathFamily string

// Path families.
const (
	FamilyPolyline PathFamily = "polyline"
	FamilyStraight PathFamily = "straight"
)

// PathTypes is the closed catalog of path types and their families.
var PathTypes = map[LinePathType]PathFamily{
	PathDiagonal:            FamilyPolyline,
	PathPerpendicular:       FamilyPolyline,
	PathRotatePerpendicular: FamilyPolyline,
	PathSimple:              FamilyStraight,
}

// Family returns the path family of p. Unknown path types form their own
// family so they never share parallel indices with catalog types.
func (p LinePathType) Family() PathFamily {
	if f, ok := PathTypes[p]; ok {
		return f
	}
	return PathFamily(p)
}

// ParsePathType parses a path type name, case-insensitively.
func ParsePathType(s string) (LinePathType, bool) {
	p := LinePathType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := PathTypes[p]
	return p, ok
}

// PathAttrs holds the geometry attributes of a path type. Fields that do not
// apply to the edge's path type stay zero.
type PathAttrs struct {
	StartFrom         string  `json:"startFrom,omitempty"` // "from" or "to"
	OffsetFrom        float64 `json:"offsetFrom,omitempty"`
	OffsetTo          float64 `json:"offsetTo,omitempty"`
	RoundCornerFactor float64 `json:"roundCornerFactor,omitempty"`
	Offset            float64 `json:"offset,omitempty"`
}

// DefaultPathAttrs returns the default geometry for p.
func DefaultPathAttrs(p LinePathType) PathAttrs {
	switch p {
	case PathDiagonal, PathPerpendicular:
		return PathAttrs{StartFrom: "from", RoundCornerFactor: 10}
	case PathRotatePerpendicular:
		return PathAttrs{StartFrom: "from"}
	default:
		return PathAttrs{}
	}
}

// LineStyleType selects how an edge is painted.
type LineStyleType string

// Style types.
const (
	StyleSingleColor         LineStyleType = "single-color"
	StyleDualColor           LineStyleType = "dual-color"
	StyleBjsubwaySingleColor LineStyleType = "bjsubway-single-color"
	StyleMTRRaceDays         LineStyleType = "mtr-race-days"
	StyleChinaRailway        LineStyleType = "china-railway"
	StyleShmetroVirtualInt   LineStyleType = "shmetro-virtual-int"
	StyleGzmtrVirtualInt     LineStyleType = "gzmtr-virtual-int"
	StyleRiver               LineStyleType = "river"
)

// DefaultStyleType is used when a style type is absent or unknown.
const DefaultStyleType = StyleSingleColor

// StyleSpec describes a style type.
type StyleSpec struct {
	// Colored styles embed a Theme that follows the owning line's color.
	Colored bool
	// Dual styles carry a second Theme.
	Dual bool
}

// StyleTypes is the closed catalog of style types.
var StyleTypes = map[LineStyleType]StyleSpec{
	StyleSingleColor:         {Colored: true},
	StyleDualColor:           {Colored: true, Dual: true},
	StyleBjsubwaySingleColor: {Colored: true},
	StyleMTRRaceDays:         {Colored: true},
	StyleChinaRailway:        {},
	StyleShmetroVirtualInt:   {},
	StyleGzmtrVirtualInt:     {},
	StyleRiver:               {Colored: true},
}

// Spec returns the catalog entry of s; unknown styles carry no color.
func (s LineStyleType) Spec() StyleSpec { return StyleTypes[s] }

// ParseStyleType parses a style type name, case-insensitively. Spaces and
// underscores are read as hyphens so "single color" is accepted.
func ParseStyleType(s string) (LineStyleType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "-", "_", "-").Replace(v)
	t := LineStyleType(v)
	_, ok := StyleTypes[t]
	return t, ok
}

// PathTypeNames returns the path catalog names in sorted order.
func PathTypeNames() []string {
	names := make([]string, 0, len(PathTypes))
	for p := range PathTypes {
		names = append(names, string(p))
	}
	slices.Sort(names)
	return names
}

// StyleTypeNames returns the style catalog names in sorted order.
func StyleTypeNames() []string {
	names := make([]string, 0, len(StyleTypes))
	for s := range StyleTypes {
		names = append(names, string(s))
	}
	slices.Sort(names)
	return names
}

// Theme is the color tuple embedded in colored styles:
// city code, line code, background color and foreground color.
type Theme struct {
	City string `json:"city"`
	Line string `json:"line"`
	Hex  string `json:"hex"`
	Fg   string `json:"fg"`
}

// LineTheme returns the theme forced onto edges of line l.
func LineTheme(l LineConfig) Theme {
	return Theme{City: "other", Line: l.ID, Hex: l.Color, Fg: "#fff"}
}

// StyleAttrs holds the style-specific attributes of an edge.
type StyleAttrs struct {
	Color  *Theme `json:"color,omitempty"`
	ColorB *Theme `json:"colorB,omitempty"`
}

// DefaultStyleAttrs returns style attributes for s painted with theme.
// Styles without an embedded color ignore theme.
func DefaultStyleAttrs(s LineStyleType, theme Theme) StyleAttrs {
	spec := s.Spec()
	var attrs StyleAttrs
	if spec.Colored {
		c := theme
		attrs.Color = &c
	}
	if spec.Dual {
		c := theme
		attrs.ColorB = &c
	}
	return attrs
}

// Hex returns the embedded primary color, or "" for uncolored styles.
func (a StyleAttrs) Hex() string {
	if a.Color == nil {
		return ""
	}
	return a.Color.Hex
}

// LineConfig is a line as declared in the Lines table.
type LineConfig struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Color  string        `json:"color"`
	Path   LinePathType  `json:"path"`
	Style  LineStyleType `json:"style"`
	ZIndex int           `json:"z_index"`
}

// NewLine returns a line configuration with default color, path and style.
func NewLine(id, name string) LineConfig {
	return LineConfig{
		ID:    id,
		Name:  name,
		Color: DefaultLineColor,
		Path:  DefaultPathType,
		Style: DefaultStyleType,
	}
}

// ParseColor parses a "#RRGGBB" color and returns it in upper case.
func ParseColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return "", false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return "", false
		}
	}
	return strings.ToUpper(s), true
}
