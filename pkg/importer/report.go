package importer

import "fmt"

// NoteKind classifies a condition that was recovered during import.
type NoteKind string

// Note kinds.
const (
	NoteGeneratedStationID NoteKind = "generated_station_id"
	NoteGeneratedLineID    NoteKind = "generated_line_id"
	NoteDuplicateLine      NoteKind = "duplicate_line"
	NoteInvalidValue       NoteKind = "invalid_value"
	NoteUnknownLine        NoteKind = "unknown_line"
	NoteUnknownStation     NoteKind = "unknown_station"
	NoteDuplicateStop      NoteKind = "duplicate_stop"
)

// Note is one recovered condition.
type Note struct {
	Kind   NoteKind `json:"kind"`
	Sheet  string   `json:"sheet"`
	Row    int      `json:"row"`
	Detail string   `json:"detail"`
}

// String formats the note as "Sheet row N: detail".
func (n Note) String() string {
	return fmt.Sprintf("%s row %d: %s", n.Sheet, n.Row, n.Detail)
}

// Report lists everything an import recovered from.
type Report struct {
	Notes []Note `json:"notes,omitempty"`
}

// Count returns the number of notes of the given kind.
func (r Report) Count(kind NoteKind) int {
	n := 0
	for _, note := range r.Notes {
		if note.Kind == kind {
			n++
		}
	}
	return n
}

// Empty reports whether nothing was recovered.
func (r Report) Empty() bool { return len(r.Notes) == 0 }
