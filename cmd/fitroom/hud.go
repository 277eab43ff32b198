package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/fitroom/pkg/wardrobe"
)

var (
	hudBar   = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff"))
	hudFPS   = hudBar.Foreground(lipgloss.Color("#5fff87"))
	hudTitle = hudBar.Bold(true)
	hudPolys = hudBar.Foreground(lipgloss.Color("#5fd7ff")).Bold(true)
	hudHint  = hudBar.Foreground(lipgloss.Color("#ffd75f")).Faint(true)
)

// HUD renders an overlay with frame rate, garment states and render modes.
type HUD struct {
	Show bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// hudInfo is the per-frame data the HUD displays.
type hudInfo struct {
	Title     string
	Triangles int
	Garments  []*wardrobe.Manager
	Wireframe bool
	Bounds    bool
	Remote    string
}

// NewHUD creates a new HUD
func NewHUD(show bool) *HUD {
	return &HUD{Show: show, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the top and bottom HUD rows over area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, info hudInfo) {
	w := area.Dx()
	if w <= 0 || area.Dy() < 2 {
		return
	}

	top := spread(w,
		hudFPS.Render(fmt.Sprintf(" %.0f FPS ", h.fps)),
		hudTitle.Render(" "+info.Title+" "),
		hudPolys.Render(fmt.Sprintf(" %d polys ", info.Triangles)),
	)
	uv.NewStyledString(top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, w, 1))

	labels := make([]string, 0, len(info.Garments)+2)
	for _, m := range info.Garments {
		labels = append(labels, garmentLabel(m))
	}
	labels = append(labels, checkbox(info.Wireframe)+" w Wireframe", checkbox(info.Bounds)+" b Bounds")

	hint := "? HUD  esc quit"
	if info.Remote != "" {
		hint = "remote " + info.Remote + "  " + hint
	}
	bottom := spread(w, hudBar.Render(" "+strings.Join(labels, "  ")+" "), "", hudHint.Render(" "+hint+" "))
	uv.NewStyledString(bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, w, 1))
}

// garmentLabel renders a garment as a checkbox with its first key.
func garmentLabel(m *wardrobe.Manager) string {
	var box string
	switch m.State() {
	case wardrobe.Loading:
		box = "[…]"
	case wardrobe.Failed:
		box = "[✗]"
	default:
		box = checkbox(m.Visible())
	}
	key := ""
	if len(m.Garment.Keys) > 0 {
		key = m.Garment.Keys[0] + " "
	}
	return box + " " + key + m.Garment.Name
}

func checkbox(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

// spread lays out left, middle and right segments across width cells. The
// middle segment is dropped when it does not fit.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	if lw+mw+rw > width {
		mid, mw = "", 0
	}

	midStart := max((width-mw)/2, lw)
	gap1 := midStart - lw
	gap2 := max(width-rw-midStart-mw, 0)
	if mw == 0 {
		gap1, gap2 = max(width-lw-rw, 0), 0
	}
	return left + strings.Repeat(" ", gap1) + mid + strings.Repeat(" ", gap2) + right
}
