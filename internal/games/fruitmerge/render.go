package fruitmerge

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-fruitmerge/internal/core"
)

const (
	hudRows = 3 // Score line, info line, drop cursor line
	minCols = 16
	minRows = 12
)

// Layout maps world units to screen cells. Terminal cells are roughly
// twice as tall as they are wide, so a row spans twice the world units of
// a column and circles stay round on screen.
type Layout struct {
	OriginX, OriginY int // Top-left interior cell of the container
	Cols, Rows       int
	ColUnits         float64 // World units per column
	RowUnits         float64 // World units per row
}

// computeLayout fits the container into a width x height screen, leaving
// room for the HUD, both walls and the floor.
func computeLayout(width, height int, b Bounds) (Layout, bool) {
	rows := height - hudRows - 1
	if rows < 1 || width < 3 || b.Width <= 0 || b.Height <= 0 {
		return Layout{}, true
	}

	rowUnits := b.Height / float64(rows)
	colUnits := rowUnits / 2
	cols := int(math.Ceil(b.Width / colUnits))
	if cols > width-2 {
		cols = width - 2
		colUnits = b.Width / float64(cols)
		rowUnits = colUnits * 2
		rows = int(math.Ceil(b.Height / rowUnits))
	}

	l := Layout{
		OriginX:  (width-cols-2)/2 + 1,
		OriginY:  hudRows,
		Cols:     cols,
		Rows:     rows,
		ColUnits: colUnits,
		RowUnits: rowUnits,
	}
	return l, cols < minCols || rows < minRows
}

// Cell returns the screen cell containing a world point.
func (l Layout) Cell(x, y float64) (int, int) {
	col := l.OriginX + int(math.Floor(x/l.ColUnits))
	row := l.OriginY + int(math.Floor(y/l.RowUnits))
	return col, row
}

// worldX converts a screen column to the world x at the column's center.
func (l Layout) worldX(col int) float64 {
	return (float64(col-l.OriginX) + 0.5) * l.ColUnits
}

// inside reports whether a cell is within the container interior.
func (l Layout) inside(col, row int) bool {
	return col >= l.OriginX && col < l.OriginX+l.Cols &&
		row >= l.OriginY && row < l.OriginY+l.Rows
}

// Drawable draws one fruit tier. Ghost requests the muted drop preview.
type Drawable interface {
	Draw(dst *core.Screen, l Layout, x, y, r float64, ghost bool)
}

// spriteRegistry maps tier indices to their drawing strategy.
type spriteRegistry struct {
	sprites  []Drawable
	fallback Drawable
}

func newSpriteRegistry(cat *Catalog) *spriteRegistry {
	reg := &spriteRegistry{
		sprites:  make([]Drawable, cat.Len()),
		fallback: discSprite{glyph: '?', color: core.ColorWhite},
	}
	for i := range reg.sprites {
		def := cat.Def(i)
		if strings.Contains(strings.ToLower(def.Name), "melon") {
			reg.sprites[i] = stripedSprite{glyph: def.Glyph, color: def.Color, stripe: core.ColorDarkGreen}
		} else {
			reg.sprites[i] = discSprite{glyph: def.Glyph, color: def.Color}
		}
	}
	return reg
}

func (r *spriteRegistry) lookup(tier int) Drawable {
	if tier < 0 || tier >= len(r.sprites) {
		return r.fallback
	}
	return r.sprites[tier]
}

// forEachDiscCell calls fn for every interior cell whose center lies inside
// the circle. The center cell is always visited so tiny fruits stay visible.
func forEachDiscCell(l Layout, x, y, r float64, fn func(col, row int, center bool)) {
	ccol, crow := l.Cell(x, y)
	spanC := int(math.Ceil(r/l.ColUnits)) + 1
	spanR := int(math.Ceil(r/l.RowUnits)) + 1

	for row := crow - spanR; row <= crow+spanR; row++ {
		for col := ccol - spanC; col <= ccol+spanC; col++ {
			if !l.inside(col, row) {
				continue
			}
			center := col == ccol && row == crow
			wx := (float64(col-l.OriginX) + 0.5) * l.ColUnits
			wy := (float64(row-l.OriginY) + 0.5) * l.RowUnits
			if center || math.Hypot(wx-x, wy-y) <= r {
				fn(col, row, center)
			}
		}
	}
}

// discSprite is a solid disc with the tier glyph in the middle.
type discSprite struct {
	glyph rune
	color core.Color
}

func (s discSprite) Draw(dst *core.Screen, l Layout, x, y, r float64, ghost bool) {
	forEachDiscCell(l, x, y, r, func(col, row int, center bool) {
		switch {
		case ghost && center:
			dst.SetColored(col, row, s.glyph, core.ColorGray)
		case ghost:
			dst.SetColored(col, row, '░', core.ColorGray)
		case center:
			dst.SetColored(col, row, s.glyph, core.ColorBrightWhite)
		default:
			dst.SetColored(col, row, '█', s.color)
		}
	})
}

// stripedSprite alternates body and stripe colors column by column.
type stripedSprite struct {
	glyph  rune
	color  core.Color
	stripe core.Color
}

func (s stripedSprite) Draw(dst *core.Screen, l Layout, x, y, r float64, ghost bool) {
	forEachDiscCell(l, x, y, r, func(col, row int, center bool) {
		switch {
		case ghost && center:
			dst.SetColored(col, row, s.glyph, core.ColorGray)
		case ghost:
			dst.SetColored(col, row, '░', core.ColorGray)
		case center:
			dst.SetColored(col, row, s.glyph, core.ColorBrightWhite)
		case (col-l.OriginX)%2 == 0:
			dst.SetColored(col, row, '█', s.color)
		default:
			dst.SetColored(col, row, '▓', s.stripe)
		}
	})
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.session == nil {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)
	g.renderContainer(dst)
	g.renderDangerLine(dst, snap.DangerY)

	for _, f := range snap.Fruits {
		g.sprites.lookup(f.Type).Draw(dst, g.layout, f.X, f.Y, f.Radius, false)
	}

	if snap.State == StatePlaying {
		g.renderDropCursor(dst, snap)
	}
	g.renderFlashes(dst)
	g.renderOverlays(dst, snap)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score, pending piece and best tier.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	cat := g.session.Catalog()
	left := g.layout.OriginX - 1
	right := g.layout.OriginX + g.layout.Cols + 1

	dst.DrawTextColored(left, 0, g.title, core.ColorBrightYellow)
	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(right-len(score), 0, score)

	next := cat.Def(snap.PendingType)
	nextStr := fmt.Sprintf("Next: %c %s", next.Glyph, next.Name)
	dst.DrawText(left, 1, "Next: ")
	dst.SetColored(left+6, 1, next.Glyph, next.Color)
	dst.DrawText(left+8, 1, next.Name)

	if snap.MaxTier > 0 {
		best := "Best: " + cat.Def(snap.MaxTier).Name
		if x := right - len(best); x > left+len(nextStr) {
			dst.DrawText(x, 1, best)
		}
	}
}

// renderContainer draws the walls and floor. The top stays open.
func (g *Game) renderContainer(dst *core.Screen) {
	l := g.layout
	leftWall := l.OriginX - 1
	rightWall := l.OriginX + l.Cols
	floor := l.OriginY + l.Rows

	dst.DrawVLine(leftWall, l.OriginY, l.Rows, '│', core.ColorGray)
	dst.DrawVLine(rightWall, l.OriginY, l.Rows, '│', core.ColorGray)
	dst.DrawHLine(l.OriginX, floor, l.Cols, '─', core.ColorGray)
	dst.SetColored(leftWall, floor, '└', core.ColorGray)
	dst.SetColored(rightWall, floor, '┘', core.ColorGray)
}

// renderDangerLine draws a dashed line across the container.
func (g *Game) renderDangerLine(dst *core.Screen, dangerY float64) {
	_, row := g.layout.Cell(0, dangerY)
	for col := g.layout.OriginX; col < g.layout.OriginX+g.layout.Cols; col++ {
		if (col-g.layout.OriginX)%2 == 0 {
			dst.SetColored(col, row, '╌', core.ColorRed)
		}
	}
}

// renderDropCursor draws the aim marker and, when a drop is allowed, the
// ghosted pending piece at the spawn point.
func (g *Game) renderDropCursor(dst *core.Screen, snap Snapshot) {
	col, _ := g.layout.Cell(snap.DropX, 0)
	if !snap.CanDrop {
		dst.SetColored(col, hudRows-1, '▽', core.ColorGray)
		return
	}
	dst.SetColored(col, hudRows-1, '▼', core.ColorBrightWhite)

	cat := g.session.Catalog()
	r := cat.Radius(snap.PendingType)
	x := core.ClampF(snap.DropX, r, g.session.Settings().Bounds.Width-r)
	g.sprites.lookup(snap.PendingType).Draw(dst, g.layout, x, g.session.Settings().SpawnY, r, true)
}

// renderFlashes draws the recent merge labels.
func (g *Game) renderFlashes(dst *core.Screen) {
	for _, f := range g.flashes {
		col, row := g.layout.Cell(f.pos.X, f.pos.Y)
		label := fmt.Sprintf("+%d", f.points)
		dst.DrawTextColored(col-len(label)/2, row-1, label, core.ColorBrightYellow)
	}
}

// renderOverlays draws the title card, pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot) {
	switch {
	case snap.State == StateMenu:
		g.drawMessageBox(dst, []string{
			strings.ToUpper(g.title),
			"",
			"Press ENTER or SPACE to start",
			"←/→ or mouse to aim, SPACE to drop",
		})
	case snap.State == StateGameOver:
		g.drawMessageBox(dst, []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Final Score: %d", snap.Score),
			"Largest: " + g.session.Catalog().Def(snap.MaxTier).Name,
			"",
			"R restart, ESC menu, Q quit",
		})
	case g.paused:
		g.drawMessageBox(dst, []string{"PAUSED", "", "P to resume"})
	}
}

// drawMessageBox draws a bordered box with centered lines over the field.
func (g *Game) drawMessageBox(dst *core.Screen, lines []string) {
	w := 0
	for _, line := range lines {
		w = core.Max(w, len([]rune(line)))
	}
	w += 4
	h := len(lines) + 2

	box := core.NewRect((g.screenW-w)/2, (g.screenH-h)/2, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		x := box.X + (w-len([]rune(line)))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
