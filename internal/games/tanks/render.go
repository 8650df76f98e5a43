package tanks

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
)

// Glyphs used on the field.
const (
	TankChar      = '█'
	WreckChar     = '▒'
	GunChar       = '•'
	BulletChar    = '∙'
	ExplosiveChar = '◉'
	GrassChar     = '▓'
	RockChar      = '█'
	ShadowChar    = '░'
	BombChar      = '●'
	BlastChar     = '*'
)

// hudRows is the height of the status area above the field.
const hudRows = 2

var facingGlyphs = map[arena.Facing]rune{
	arena.FacingUp:    '▲',
	arena.FacingRight: '▶',
	arena.FacingDown:  '▼',
	arena.FacingLeft:  '◀',
}

var tankColors = [2]core.Color{core.ColorBrightBlue, core.ColorBrightRed}

// viewport maps arena units onto the terminal cells below the HUD.
type viewport struct {
	x0, y0 int
	w, h   int
	sx, sy float64 // arena units per cell
}

func newViewport(screenW, screenH int, a config.ArenaConfig) viewport {
	w := max(screenW, 1)
	h := max(screenH-hudRows, 1)
	return viewport{
		x0: 0,
		y0: hudRows,
		w:  w,
		h:  h,
		sx: a.Width / float64(w),
		sy: a.Height / float64(h),
	}
}

// cell returns the screen cell containing an arena point.
func (v viewport) cell(x, y float64) (int, int) {
	cx := core.Clamp(int(x/v.sx), 0, v.w-1)
	cy := core.Clamp(int(y/v.sy), 0, v.h-1)
	return v.x0 + cx, v.y0 + cy
}

// rect returns the cells covered by an arena box, at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x1 := int(b.X / v.sx)
	y1 := int(b.Y / v.sy)
	x2 := int(math.Ceil(b.Right() / v.sx))
	y2 := int(math.Ceil(b.Bottom() / v.sy))
	return core.NewRect(v.x0+x1, v.y0+y1, max(x2-x1, 1), max(y2-y1, 1))
}

// toArena converts a screen cell to the arena point at its center.
func (v viewport) toArena(cx, cy int) (float64, float64, bool) {
	if cx < v.x0 || cy < v.y0 || cx >= v.x0+v.w || cy >= v.y0+v.h {
		return 0, 0, false
	}
	return (float64(cx-v.x0) + 0.5) * v.sx, (float64(cy-v.y0) + 0.5) * v.sy, true
}

// Render draws the current screen of the game.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	snap := g.sim.Snapshot()

	switch snap.State {
	case arena.StateMenu:
		g.renderTitle(dst, "T A N K S", "Two tanks. One arena. Last one standing wins.")
		g.renderButtons(dst, snap)
		g.renderHints(dst, "Enter or click Start", "q quit")
	case arena.StateModeSelect:
		g.renderTitle(dst, "SELECT MODE", "Blue: WASD move, F fire, J explosive   Red: arrows move, / fire, . explosive")
		g.renderButtons(dst, snap)
		g.renderHints(dst, "Enter or click Two Players", "q quit")
	case arena.StatePlaying:
		g.renderHUD(dst, snap)
		g.renderField(dst, snap)
		if g.paused {
			dst.DrawTextCentered(g.view.y0+g.view.h/2, "  PAUSED  (p to resume)  ", core.ColorBrightYellow)
		}
	case arena.StateWinner:
		g.renderHUD(dst, snap)
		g.renderField(dst, snap)
		g.renderWinner(dst, snap)
	}
}

func (g *Game) renderTitle(dst *core.Screen, title, subtitle string) {
	y := g.view.y0 + g.view.h/6
	dst.DrawTextCentered(y, title, core.ColorBrightYellow)
	dst.DrawTextCentered(y+2, subtitle, core.ColorGray)
}

func (g *Game) renderHints(dst *core.Screen, left, right string) {
	y := dst.Height() - 1
	dst.DrawTextColor(1, y, left, core.ColorGray)
	dst.DrawTextColor(dst.Width()-len(right)-1, y, right, core.ColorGray)
}

func (g *Game) renderButtons(dst *core.Screen, snap arena.Snapshot) {
	for _, b := range arena.ScreenButtons(snap.State) {
		r := g.view.rect(snap.Buttons[b])
		r.H = max(r.H, 3)
		r.W = max(r.W, len(b.String())+4)
		dst.DrawBox(r, core.ColorBrightWhite)
		label := b.String()
		dst.DrawTextColor(r.X+(r.W-len(label))/2, r.Y+r.H/2, label, core.ColorBrightWhite)
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap arena.Snapshot) {
	cfg := g.cfg.Tank
	blue := tankStatus("BLUE", snap.Tanks[arena.Blue], cfg)
	red := tankStatus("RED", snap.Tanks[arena.Red], cfg)
	dst.DrawTextColor(1, 0, blue, tankColors[arena.Blue])
	dst.DrawTextColor(dst.Width()-len([]rune(red))-1, 0, red, tankColors[arena.Red])

	status := fmt.Sprintf("%s  %5.1fs", strings.ToUpper(g.variant.Title), snap.MatchTime)
	if snap.Shield.Active {
		status += fmt.Sprintf("  shield: %s %.0fs", snap.Shield.Owner, snap.Shield.Remaining)
	}
	for _, t := range snap.Tanks {
		if t.PoweredUp {
			status += fmt.Sprintf("  %s boosted", t.ID)
		}
	}
	dst.DrawTextCentered(1, status, core.ColorGray)
}

// tankStatus formats one side of the HUD.
func tankStatus(name string, t arena.TankView, cfg config.TankConfig) string {
	const barLen = 10
	filled := 0
	if cfg.MaxHealth > 0 {
		filled = core.Clamp(t.Health*barLen/cfg.MaxHealth, 0, barLen)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barLen-filled)
	ammo := strings.Repeat("|", t.Ammo) + strings.Repeat(".", max(cfg.MaxAmmo-t.Ammo, 0))
	s := fmt.Sprintf("%s %s %3d  ammo %s  score %d", name, bar, t.Health, ammo, t.Score)
	if t.Charges > 0 {
		s += fmt.Sprintf("  bombs %d", t.Charges)
	}
	return s
}

func (g *Game) renderField(dst *core.Screen, snap arena.Snapshot) {
	v := g.view

	for _, o := range snap.Obstacles {
		if o.Shadow {
			dst.DrawRect(v.rect(o.Box), ShadowChar, core.ColorDarkGray)
		}
	}
	for _, o := range snap.Obstacles {
		if o.Destroyed {
			continue
		}
		if o.Kind == arena.Rock {
			dst.DrawRect(v.rect(o.Box), RockChar, core.ColorBrown)
		} else {
			dst.DrawRect(v.rect(o.Box), GrassChar, core.ColorDarkGreen)
		}
	}

	if pb := snap.PowerBox; pb != nil {
		r := v.rect(pb.Box)
		glyph, c := 'S', core.ColorBrightCyan
		if pb.Type == arena.BoxPowerUp {
			glyph, c = 'P', core.ColorBrightYellow
		}
		dst.DrawRect(r, '■', c)
		dst.SetColored(r.X+r.W/2, r.Y+r.H/2, glyph, c)
	}

	for _, b := range snap.Bombs {
		x, y := v.cell(b.Box.Center())
		dst.SetColored(x, y, BombChar, core.ColorOrange)
	}

	for _, t := range snap.Tanks {
		g.renderTank(dst, t)
	}

	for _, b := range snap.Bullets {
		x, y := v.cell(b.Box.Center())
		glyph := BulletChar
		if b.Explosive {
			glyph = ExplosiveChar
		}
		dst.SetColored(x, y, glyph, tankColors[b.Owner])
	}

	for _, e := range snap.Explosions {
		dst.DrawRect(v.rect(e), BlastChar, core.ColorBrightYellow)
	}
}

func (g *Game) renderTank(dst *core.Screen, t arena.TankView) {
	v := g.view
	r := v.rect(t.Box)
	if t.Destroyed {
		dst.DrawRect(r, WreckChar, core.ColorDarkGray)
		return
	}

	c := tankColors[t.ID]
	if t.Shielded && r.W >= 2 && r.H >= 2 {
		dst.DrawBox(core.NewRect(r.X-1, r.Y-1, r.W+2, r.H+2), core.ColorBrightCyan)
	}
	dst.DrawRect(r, TankChar, c)

	cx, cy := t.Box.Center()
	x, y := v.cell(cx, cy)
	dst.SetColored(x, y, facingGlyphs[t.Facing], core.ColorBrightWhite)

	// Gun tip just outside the hull along the aim direction.
	rad := (t.Rotation + t.GunRotation) * math.Pi / 180
	reach := math.Max(t.Box.W, t.Box.H)*0.5 + math.Max(v.sx, v.sy)
	gx, gy := v.cell(cx+reach*math.Sin(rad), cy-reach*math.Cos(rad))
	dst.SetColored(gx, gy, GunChar, core.ColorBrightYellow)
}

func (g *Game) renderWinner(dst *core.Screen, snap arena.Snapshot) {
	winner := snap.Winner
	if winner == arena.NoTank {
		return
	}
	title := fmt.Sprintf("  %s TANK WINS  ", strings.ToUpper(winner.String()))
	y := g.view.y0 + g.view.h/4
	dst.DrawTextCentered(y, title, tankColors[winner])
	score := fmt.Sprintf("  blue %d  :  red %d  ", snap.Tanks[arena.Blue].Score, snap.Tanks[arena.Red].Score)
	dst.DrawTextCentered(y+1, score, core.ColorBrightWhite)
	g.renderButtons(dst, snap)
	g.renderHints(dst, "Enter/r play again, Esc home", "q quit")
}
