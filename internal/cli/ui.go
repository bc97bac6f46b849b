package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/importer"
	"github.com/matzehuels/railsheet/pkg/pipeline"
)

// =============================================================================
// Palette and Styles
// =============================================================================

// Colors are ANSI 256 codes, picked to read on light and dark terminals.
var (
	colorAccent  = lipgloss.Color("38")
	colorOK      = lipgloss.Color("71")
	colorCaution = lipgloss.Color("214")
	colorFailure = lipgloss.Color("160")
	colorCommand = lipgloss.Color("111")
	colorBright  = lipgloss.Color("253")
	colorMuted   = lipgloss.Color("244")
	colorFaint   = lipgloss.Color("239")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorBright)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	StyleWarning = lipgloss.NewStyle().Foreground(colorCaution)

	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleCaution = lipgloss.NewStyle().Foreground(colorCaution)
	styleFailure = lipgloss.NewStyle().Foreground(colorFailure)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// maxNotes limits how many import notes are printed without --verbose.
const maxNotes = 10

// out is where command output goes. Tests replace it.
var out io.Writer = os.Stdout

// =============================================================================
// Status Output
// =============================================================================

// PrintError writes err to w as a user-facing message followed by its code.
func PrintError(w io.Writer, err error) {
	line := styleFailure.Render(iconError) + " " + errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		line += " " + StyleDim.Render("("+string(code)+")")
	}
	fmt.Fprintln(w, line)
}

// printStatus prints one icon-led line to out.
func printStatus(icon string, iconStyle lipgloss.Style, text string) {
	fmt.Fprintln(out, iconStyle.Render(icon)+" "+text)
}

func printSuccess(format string, args ...any) {
	printStatus(iconSuccess, styleOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(iconWarning, styleCaution, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(iconInfo, styleMuted, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests the command a user usually runs next.
func printNextStep(hint, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(hint+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Pipeline Output
// =============================================================================

// printStats prints the size of a pipeline result on a single line.
func printStats(s pipeline.Stats) {
	parts := []string{
		fmt.Sprintf("%d stations", s.Stations),
		fmt.Sprintf("%d edges", s.Edges),
	}
	if s.Lines > 0 {
		parts = append(parts, fmt.Sprintf("%d lines", s.Lines))
	}
	if s.Stops > 0 {
		parts = append(parts, fmt.Sprintf("%d stops", s.Stops))
	}

	fmt.Fprintln(out, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printReport prints the conditions the importer recovered from. Without
// all, at most maxNotes notes are listed.
func printReport(r importer.Report, all bool) {
	if r.Empty() {
		return
	}
	printWarning("%d problems were repaired during import", len(r.Notes))
	for i, n := range r.Notes {
		if !all && i == maxNotes {
			printDetail("... and %d more (use --verbose to list all)", len(r.Notes)-maxNotes)
			return
		}
		printDetail("%s", n.String())
	}
}
