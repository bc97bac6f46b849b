package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/railsheet/pkg/network"
)

func testGraph(t *testing.T) *network.Graph {
	t.Helper()
	g := network.New()
	a := network.NewStation("stn_A", network.DefaultStationType)
	a.SetNames("甲", "Alpha")
	b := network.NewStation("stn_B", network.DefaultStationType)
	b.X, b.Y = 10, 20
	ra, err := g.AddStation(a)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := g.AddStation(b)
	if err != nil {
		t.Fatal(err)
	}
	l := network.NewLine("L1", "Line 1")
	l.Color = "#00FF00"
	if _, err := g.AddEdge(network.Edge{
		From: ra, To: rb, Visible: true,
		Style:      network.StyleSingleColor,
		StyleAttrs: network.DefaultStyleAttrs(network.StyleSingleColor, network.LineTheme(l)),
		Reconcile:  "L1",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddEdge(network.Edge{From: rb, To: ra, Style: network.StyleChinaRailway}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		`"stn_A" [label="Alpha"]`,
		`"stn_B" [label="B"]`,
		`"stn_A" -> "stn_B" [color="#00FF00", tooltip="L1"]`,
		`"stn_B" -> "stn_A" [color="#888888", style=dashed]`,
		"rankdir=LR",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTGeographic(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Geographic: true, Detailed: true, Scale: 2})

	if !strings.Contains(dot, "layout=neato") {
		t.Error("geographic DOT should select neato")
	}
	if !strings.Contains(dot, `pos="20,-40!"`) {
		t.Errorf("expected pinned, flipped position:\n%s", dot)
	}
	if !strings.Contains(dot, `id: A\ntype: shmetro-basic`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	opts := Options{}
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(t), opts), opts)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
}
