package exporter

import (
	"strconv"

	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

// StationRow is one row of the Stations sheet.
type StationRow struct {
	ID           string              `json:"station_id"`
	X            float64             `json:"x"`
	Y            float64             `json:"y"`
	NameEN       string              `json:"name_en"`
	NameZH       string              `json:"name_zh"`
	NameOffsetX  network.NameOffsetX `json:"name_offset_x,omitempty"`
	NameOffsetY  network.NameOffsetY `json:"name_offset_y,omitempty"`
	IconHeight   *float64            `json:"icon_height,omitempty"`
	IconWidth    *float64            `json:"icon_width,omitempty"`
	IconRotation *float64            `json:"icon_rotation,omitempty"`
	Type         network.StationType `json:"station_type"`
	ZIndex       int                 `json:"z_index"`
}

// LineRow is one row of the Lines sheet.
type LineRow struct {
	ID     string                `json:"line_id"`
	Name   string                `json:"line_name"`
	Color  string                `json:"color_hex"`
	Path   network.LinePathType  `json:"line_path"`
	Style  network.LineStyleType `json:"line_style"`
	ZIndex int                   `json:"z_index"`
}

// StopRow is one row of the LineStops sheet. Order is 1-based.
type StopRow struct {
	LineID    string `json:"line_id"`
	Order     int    `json:"stop_order"`
	StationID string `json:"station_id"`
}

// Rows is the tabular form of a network.
type Rows struct {
	Stations []StationRow     `json:"stations"`
	Lines    []LineRow        `json:"lines"`
	Stops    []StopRow        `json:"line_stops"`
	Project  network.ViewMeta `json:"project"`
}

// Workbook renders r as sheet tables with the canonical headers.
func (r *Rows) Workbook() *sheet.Workbook {
	stations := sheet.NewTable(sheet.SheetStations, sheet.StationColumns)
	for _, s := range r.Stations {
		stations.Append(
			s.ID,
			formatFloat(s.X),
			formatFloat(s.Y),
			s.NameEN,
			s.NameZH,
			string(s.NameOffsetX),
			string(s.NameOffsetY),
			formatOptional(s.IconHeight),
			formatOptional(s.IconWidth),
			formatOptional(s.IconRotation),
			string(s.Type),
			strconv.Itoa(s.ZIndex),
		)
	}

	lines := sheet.NewTable(sheet.SheetLines, sheet.LineColumns)
	for _, l := range r.Lines {
		lines.Append(l.ID, l.Name, l.Color, string(l.Path), string(l.Style), strconv.Itoa(l.ZIndex))
	}

	stops := sheet.NewTable(sheet.SheetLineStops, sheet.LineStopColumns)
	for _, s := range r.Stops {
		stops.Append(s.LineID, strconv.Itoa(s.Order), s.StationID)
	}

	project := sheet.NewTable(sheet.SheetProject, sheet.ProjectColumns)
	project.Append(formatFloat(r.Project.Zoom), formatFloat(r.Project.MinX), formatFloat(r.Project.MinY))

	return &sheet.Workbook{Stations: stations, Lines: lines, LineStops: stops, Project: project}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
