package hexlink

import (
	"fmt"

	platformcore "github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
)

const (
	hudHeight    = 4
	footerHeight = 2

	// Screen offset of one step along q and r.
	colPerQ = 6
	colPerR = 3
	rowPerR = 2
)

// portGlyphs places each port stub relative to the tile center.
var portGlyphs = [core.DirCount]struct {
	dx, dy int
	r      rune
}{
	core.DirNE: {1, -1, '/'},
	core.DirE:  {2, 0, '─'},
	core.DirSE: {1, 1, '\\'},
	core.DirSW: {-1, 1, '/'},
	core.DirW:  {-2, 0, '─'},
	core.DirNW: {-1, -1, '\\'},
}

// gridLayout maps axial coordinates onto screen cells.
type gridLayout struct {
	offsetX int
	offsetY int
	fits    bool
}

func newGridLayout(snap core.GridSnapshot, screenW, screenH int) gridLayout {
	if snap.Len() == 0 {
		return gridLayout{}
	}

	minX, minY := 1<<30, 1<<30
	maxX, maxY := -(1 << 30), -(1 << 30)
	for _, v := range snap.Tiles() {
		x, y := rawPos(v.Pos)
		minX, maxX = min(minX, x-2), max(maxX, x+2)
		minY, maxY = min(minY, y-1), max(maxY, y+1)
	}

	w, h := maxX-minX+1, maxY-minY+1
	availH := screenH - hudHeight - footerHeight
	return gridLayout{
		offsetX: (screenW-w)/2 - minX,
		offsetY: hudHeight + (availH-h)/2 - minY,
		fits:    w <= screenW && h <= availH,
	}
}

func rawPos(c core.Coord) (int, int) {
	return c.Q*colPerQ + c.R*colPerR, c.R * rowPerR
}

// cellPos returns the screen position of a tile center.
func (l gridLayout) cellPos(c core.Coord) (int, int) {
	x, y := rawPos(c)
	return x + l.offsetX, y + l.offsetY
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.session == nil:
		g.renderOverlay(dst, "NO LEVEL LOADED", g.message)
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
		return
	}

	g.renderGrid(dst)
	g.renderFooter(dst)

	if g.won {
		g.renderOverlay(dst, "ACCESS GRANTED",
			fmt.Sprintf("Breach time %s | HOP_COUNT %d",
				platformcore.FormatDuration(g.result.ElapsedSeconds), g.result.Moves),
			"Enter: next level | R: rescramble | B: menu")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := " DATA ROUTING :: " + g.level.Name
	if g.level.Name == "" {
		title = " DATA ROUTING :: " + g.level.ID
	}
	dst.DrawTextWithColor(0, 0, title, platformcore.ColorCyan)

	if g.session != nil {
		snap := g.session.Snapshot()
		stats := fmt.Sprintf("NODES %d/%d  HOP_COUNT %d ", snap.ActiveCount(), snap.Len(), g.session.MoveCount())
		dst.DrawTextWithColor(dst.Width()-len(stats), 0, stats, platformcore.ColorGray)

		if g.session.Ready() {
			dst.DrawTextWithColor(1, 2, "● LINK ESTABLISHED", platformcore.ColorBrightGreen)
		} else {
			dst.DrawTextWithColor(1, 2, "○ NO CARRIER", platformcore.ColorRed)
		}
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

func (g *Game) renderGrid(dst *platformcore.Screen) {
	snap := g.session.Snapshot()

	for i := range snap.Len() {
		v := snap.At(i)
		x, y := g.grid.cellPos(v.Pos)
		color := tileColor(v)

		ports := core.Ports(v.Kind, v.Rotation)
		if v.Kind == core.KindSource || v.Kind == core.KindTarget {
			// Omni tiles only draw stubs towards existing neighbours.
			ports = 0
			for _, d := range core.AllDirs {
				if _, ok := snap.TileAt(v.Pos.Neighbor(d)); ok {
					ports |= core.NewPortSet(d)
				}
			}
		}
		for _, d := range ports.Dirs() {
			p := portGlyphs[d]
			dst.SetWithColor(x+p.dx, y+p.dy, p.r, color)
		}

		dst.SetWithColor(x, y, tileGlyph(v), color)

		switch {
		case i == g.cursor:
			dst.SetWithColor(x-1, y, '[', platformcore.ColorBrightWhite)
			dst.SetWithColor(x+1, y, ']', platformcore.ColorBrightWhite)
		case g.hasHint && v.ID == g.hint:
			dst.SetWithColor(x-1, y, '<', platformcore.ColorBrightYellow)
			dst.SetWithColor(x+1, y, '>', platformcore.ColorBrightYellow)
		}
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - footerHeight
	if g.msgTicks > 0 && g.message != "" {
		dst.DrawTextCenteredWithColor(y, g.message, g.msgColor)
	} else if v := g.selected(); v.ID >= 0 {
		desc := fmt.Sprintf("NODE %d  %s  ports %s", v.ID, v.Kind, core.Ports(v.Kind, v.Rotation))
		if v.Fixed {
			desc += "  [locked]"
		}
		dst.DrawTextCenteredWithColor(y, desc, platformcore.ColorGray)
	}
	dst.DrawTextWithColor(0, y+1,
		" ←↑↓→ select  Space rotate  Enter unlock  H hint  R rescramble  B menu",
		platformcore.ColorGray)
}

func (g *Game) renderOverlay(dst *platformcore.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2

	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).CenterIn(w, h)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		dst.DrawHLine(box.X, yy, box.W, ' ', platformcore.ColorDefault)
	}
	dst.DrawBox(box, platformcore.ColorCyan)

	for i, l := range lines {
		c := platformcore.ColorWhite
		if i == 0 {
			c = platformcore.ColorBrightCyan
		}
		dst.DrawTextCenteredWithColor(box.Y+1+i, l, c)
	}
}

func tileGlyph(v core.TileView) rune {
	switch v.Kind {
	case core.KindSource:
		return '◉'
	case core.KindTarget:
		return '◎'
	case core.KindEmpty:
		return '·'
	}
	if v.Active {
		return '●'
	}
	return '○'
}

func tileColor(v core.TileView) platformcore.Color {
	switch {
	case v.Kind == core.KindTarget && v.Active:
		return platformcore.ColorBrightMagenta
	case v.Kind == core.KindTarget:
		return platformcore.ColorMagenta
	case v.Kind == core.KindEmpty:
		return platformcore.ColorGray
	case v.Active:
		return platformcore.ColorBrightCyan
	default:
		return platformcore.ColorGray
	}
}
