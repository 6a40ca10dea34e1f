package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gekko3d/biome"
)

var overlayFace = text.NewGoXFace(basicfont.Face7x13)

// OverlayLines formats the debug overlay: frame rate, camera and the
// per-group instance counts in name order.
func OverlayLines(fps float64, frame *biome.Frame, counts map[string]int) []string {
	lines := []string{
		fmt.Sprintf("fps %.1f  t %.2fs", fps, frame.Elapsed),
		fmt.Sprintf("camera %s (%.2f, %.2f, %.2f)", frame.CameraState, frame.Eye.X(), frame.Eye.Y(), frame.Eye.Z()),
		fmt.Sprintf("instances %d", len(frame.Renderables)),
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %-12s %d", name, counts[name]))
	}
	return lines
}

// overlayColor picks a text color that reads on the background.
func overlayColor(background biome.Color) color.Color {
	if _, _, l := background.RGB.Hsl(); l < 0.5 {
		return color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xdd}
	}
	return color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xcc}
}

func drawOverlay(dst *ebiten.Image, lines []string, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = 15
	text.Draw(dst, strings.Join(lines, "\n"), overlayFace, op)
}
