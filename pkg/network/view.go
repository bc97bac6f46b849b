package network

// Viewport defaults used when a workbook has no Project row.
const (
	DefaultZoom = 100.0
	DefaultMinX = 0.0
	DefaultMinY = 0.0
)

// ViewMeta is the editor viewport. It is carried through import and export
// unchanged and never interpreted.
type ViewMeta struct {
	Zoom float64 `json:"zoom"`
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
}

// DefaultViewMeta returns the viewport used when none is given.
func DefaultViewMeta() ViewMeta {
	return ViewMeta{Zoom: DefaultZoom, MinX: DefaultMinX, MinY: DefaultMinY}
}
