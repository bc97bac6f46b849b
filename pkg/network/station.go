package network

import (
	"slices"
	"strings"
)

// StationPrefix namespaces internal station ids.
const StationPrefix = "stn_"

// WithPrefix returns id in its internal, namespaced form.
// Blank ids stay blank.
func WithPrefix(id string) string {
	if id == "" || strings.HasPrefix(id, StationPrefix) {
		return id
	}
	return StationPrefix + id
}

// StripPrefix returns id without the internal namespace.
func StripPrefix(id string) string { return strings.TrimPrefix(id, StationPrefix) }

// StationType names a station symbol from the rendering catalog.
type StationType string

// Station types known to the editor.
const (
	StationShmetroBasic     StationType = "shmetro-basic"
	StationShmetroBasic2020 StationType = "shmetro-basic-2020"
	StationShmetroInt       StationType = "shmetro-int"
	StationShmetroOsysi     StationType = "shmetro-osysi"
	StationGzmtrBasic       StationType = "gzmtr-basic"
	StationGzmtrInt         StationType = "gzmtr-int"
	StationBjsubwayBasic    StationType = "bjsubway-basic"
	StationBjsubwayInt      StationType = "bjsubway-int"
	StationMTR              StationType = "mtr"
	StationSuzhouRTBasic    StationType = "suzhourt-basic"
	StationLondonTubeBasic  StationType = "london-tube-basic"
	StationLondonTubeInt    StationType = "london-tube-int"
	StationMRTBasic         StationType = "mrt-basic"
)

// DefaultStationType is used when a station type is absent or unknown.
const DefaultStationType = StationShmetroBasic

// NameOffsetX anchors a station label horizontally.
type NameOffsetX string

// Horizontal anchors.
const (
	OffsetLeft   NameOffsetX = "left"
	OffsetCenter NameOffsetX = "middle"
	OffsetRight  NameOffsetX = "right"
)

// NameOffsetY anchors a station label vertically.
type NameOffsetY string

// Vertical anchors.
const (
	OffsetTop    NameOffsetY = "top"
	OffsetMiddle NameOffsetY = "middle"
	OffsetBottom NameOffsetY = "bottom"
)

// StationSpec describes which optional attributes a station type carries
// and their defaults.
type StationSpec struct {
	NameOffset bool
	Height     bool
	Width      bool
	Rotation   bool

	DefaultOffsetX  NameOffsetX
	DefaultOffsetY  NameOffsetY
	DefaultHeight   float64
	DefaultWidth    float64
	DefaultRotation float64
}

// StationTypes is the closed catalog of station types.
var StationTypes = map[StationType]StationSpec{
	StationShmetroBasic:     {NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop},
	StationShmetroBasic2020: {NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop},
	StationShmetroInt: {
		NameOffset: true, Height: true, Width: true, Rotation: true,
		DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop,
		DefaultHeight: 10, DefaultWidth: 13,
	},
	StationShmetroOsysi: {NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop},
	StationGzmtrBasic:   {NameOffset: true, DefaultOffsetX: OffsetCenter, DefaultOffsetY: OffsetTop},
	StationGzmtrInt:     {NameOffset: true, DefaultOffsetX: OffsetCenter, DefaultOffsetY: OffsetTop},
	StationBjsubwayBasic: {
		NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop,
	},
	StationBjsubwayInt: {
		NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop,
	},
	StationMTR: {
		NameOffset: true, Rotation: true,
		DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop,
	},
	StationSuzhouRTBasic: {NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetTop},
	StationLondonTubeBasic: {
		Rotation: true,
	},
	StationLondonTubeInt: {
		Rotation: true,
	},
	StationMRTBasic: {NameOffset: true, DefaultOffsetX: OffsetRight, DefaultOffsetY: OffsetBottom},
}

// Spec returns the catalog entry of t, or the default type's entry if t is
// not in the catalog.
func (t StationType) Spec() StationSpec {
	if s, ok := StationTypes[t]; ok {
		return s
	}
	return StationTypes[DefaultStationType]
}

// ParseStationType parses a station type name. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseStationType(s string) (StationType, bool) {
	t := StationType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := StationTypes[t]
	return t, ok
}

// StationTypeNames returns the catalog names in sorted order.
func StationTypeNames() []string {
	names := make([]string, 0, len(StationTypes))
	for t := range StationTypes {
		names = append(names, string(t))
	}
	slices.Sort(names)
	return names
}

// ParseNameOffsetX parses a horizontal anchor.
func ParseNameOffsetX(s string) (NameOffsetX, bool) {
	switch v := NameOffsetX(strings.ToLower(strings.TrimSpace(s))); v {
	case OffsetLeft, OffsetCenter, OffsetRight:
		return v, true
	}
	return "", false
}

// ParseNameOffsetY parses a vertical anchor.
func ParseNameOffsetY(s string) (NameOffsetY, bool) {
	switch v := NameOffsetY(strings.ToLower(strings.TrimSpace(s))); v {
	case OffsetTop, OffsetMiddle, OffsetBottom:
		return v, true
	}
	return "", false
}

// Station is a vertex of the network.
type Station struct {
	ID     string // internal id, always carries StationPrefix
	X, Y   float64
	Type   StationType
	Names  [2]string // primary (local) and secondary (English) label
	ZIndex int

	// Label anchors; empty when the type has no name offsets.
	NameOffsetX NameOffsetX
	NameOffsetY NameOffsetY

	// Icon geometry; nil when the type does not define the attribute.
	Height   *float64
	Width    *float64
	Rotation *float64
}

// NewStation returns a station of type t at the origin with every optional
// attribute set to the type's default.
func NewStation(id string, t StationType) Station {
	if _, ok := StationTypes[t]; !ok {
		t = DefaultStationType
	}
	s := Station{ID: id, Type: t}
	spec := t.Spec()
	if spec.NameOffset {
		s.NameOffsetX = spec.DefaultOffsetX
		s.NameOffsetY = spec.DefaultOffsetY
	}
	if spec.Height {
		s.Height = ptr(spec.DefaultHeight)
	}
	if spec.Width {
		s.Width = ptr(spec.DefaultWidth)
	}
	if spec.Rotation {
		s.Rotation = ptr(spec.DefaultRotation)
	}
	return s
}

// ExternalID returns the id used in workbooks (without the namespace).
func (s Station) ExternalID() string { return StripPrefix(s.ID) }

// SetNames sets both labels, letting each fall back to the other when blank.
func (s *Station) SetNames(primary, secondary string) {
	primary, secondary = strings.TrimSpace(primary), strings.TrimSpace(secondary)
	if primary == "" {
		primary = secondary
	}
	if secondary == "" {
		secondary = primary
	}
	s.Names = [2]string{primary, secondary}
}

func ptr(f float64) *float64 { return &f }
