// internal/system/render.go
package system

import (
	"fmt"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"grill-defense/internal/utils"
	"grill-defense/pkg/render"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// boardAreaHeight высота, которую делят дорожки; ниже остаётся место под панель.
const boardAreaHeight = config.ScreenHeight - config.BoardOffsetY - 150

const hitFlashMs = 120.0

// LaneHeight returns the on-screen height of one lane for the given lane count.
func LaneHeight(lanes int) float32 {
	if lanes <= 0 {
		return config.LaneHeight
	}
	return float32(math.Min(config.LaneHeight, boardAreaHeight/float64(lanes)))
}

// LaneCenterY returns the screen y of the lane's middle line.
func LaneCenterY(lane, lanes int) float32 {
	h := LaneHeight(lanes)
	return config.BoardOffsetY + h*float32(lane) + h/2
}

// ScreenX maps a lane position to screen x.
func ScreenX(x float64) float32 {
	return float32(config.BoardOffsetX + x/config.LaneLength*config.BoardWidth)
}

// SlotAt находит слот под курсором.
func SlotAt(w *entity.World, sx, sy int) (lane, index int, ok bool) {
	h := float64(LaneHeight(w.Lanes))
	fx := float64(sx) - config.BoardOffsetX
	fy := float64(sy) - config.BoardOffsetY
	if fx < 0 || fy < 0 || fx >= config.BoardWidth || fy >= h*float64(w.Lanes) {
		return 0, 0, false
	}
	lane = int(fy / h)
	index = w.SlotIndexAt(fx / config.BoardWidth * config.LaneLength)
	return lane, index, index >= 0
}

// RenderSystem рисует доску, юнитов, врагов, снаряды и эффекты.
type RenderSystem struct {
	world    *entity.World
	lib      *defs.Library
	settings *config.Settings
	font     font.Face
	shapes   *render.Shapes
	board    *ebiten.Image // предрендеренные дорожки и слоты
}

func NewRenderSystem(w *entity.World, lib *defs.Library, settings *config.Settings, face font.Face) *RenderSystem {
	s := &RenderSystem{
		world:    w,
		lib:      lib,
		settings: settings,
		font:     face,
		shapes:   render.NewShapes(),
		board:    ebiten.NewImage(config.ScreenWidth, config.ScreenHeight),
	}
	s.renderBoard()
	return s
}

// renderBoard рисует статичный задник один раз.
func (s *RenderSystem) renderBoard() {
	s.board.Clear()
	s.board.Fill(config.BackgroundColor)
	h := LaneHeight(s.world.Lanes)
	slotW := float32(config.BoardWidth) / float32(s.world.SlotsPerLane)

	for l := 0; l < s.world.Lanes; l++ {
		top := config.BoardOffsetY + h*float32(l)
		laneColor := config.LaneColor
		if l%2 == 1 {
			laneColor = config.LaneAltColor
		}
		vector.DrawFilledRect(s.board, config.BoardOffsetX, top, config.BoardWidth, h, laneColor, false)
		for i := 0; i < s.world.SlotsPerLane; i++ {
			x := float32(config.BoardOffsetX) + slotW*float32(i)
			vector.StrokeRect(s.board, x+2, top+4, slotW-4, h-8, 1, config.SlotStroke, false)
		}
		if bonus := s.settings.LaneBonus(l); bonus != "" {
			text.Draw(s.board, bonus, s.font, 10, int(top+h/2)+14, render.DarkenColor(config.TextLightColor))
		}
	}
	// линия игрока
	vector.StrokeLine(s.board, config.BoardOffsetX, config.BoardOffsetY, config.BoardOffsetX, config.BoardOffsetY+h*float32(s.world.Lanes), 3, config.HPBarEnemy, false)
}

// Draw рисует кадр. selected может быть nil.
func (s *RenderSystem) Draw(screen *ebiten.Image, now float64, lanes []LaneBonus, selected *component.Slot) {
	screen.DrawImage(s.board, nil)
	s.drawLaneTags(screen, lanes)

	s.world.EachSlot(func(slot *component.Slot) {
		if slot.Unit != nil {
			s.drawUnit(screen, slot, now)
		}
	})
	if selected != nil {
		s.drawSelection(screen, selected)
	}
	for _, e := range s.world.Enemies {
		s.drawEnemy(screen, e, now)
	}
	for _, p := range s.world.Projectiles {
		vector.DrawFilledCircle(screen, ScreenX(p.X), LaneCenterY(p.Lane, s.world.Lanes), config.ProjectileRadius, projectileColor(p), true)
	}
	for _, v := range s.world.Effects {
		s.drawEffect(screen, v, now)
	}
}

func (s *RenderSystem) drawLaneTags(screen *ebiten.Image, lanes []LaneBonus) {
	for l, b := range lanes {
		if len(b.Tags) == 0 {
			continue
		}
		y := int(LaneCenterY(l, s.world.Lanes)) - 4
		text.Draw(screen, strings.Join(b.Tags, " "), s.font, 10, y, config.CoinColor)
	}
}

func (s *RenderSystem) unitColor(u *component.Unit) color.RGBA {
	def := s.lib.Units[u.Type]
	c, ok := config.FamilyColors[def.Family]
	if !ok {
		c = config.TextLightColor
	}
	return c
}

func (s *RenderSystem) drawUnit(screen *ebiten.Image, slot *component.Slot, now float64) {
	u := slot.Unit
	cx := ScreenX(s.world.SlotCenter(slot.Index))
	cy := LaneCenterY(slot.Lane, s.world.Lanes)
	r := float32(math.Min(config.UnitRadius, float64(LaneHeight(s.world.Lanes))/3))

	body := render.RegularPolygon(cx, cy, r, 6, math.Pi/6)
	s.shapes.Fill(screen, body, s.unitColor(u))

	stroke := render.DarkenColor(s.unitColor(u))
	switch {
	case u.Stunned(now):
		stroke = config.StunColor
	case u.AttackedAt >= 0 && now-u.AttackedAt < config.HighlightMs:
		stroke = config.HighlightColor
	case s.lib.Units[u.Type].Unique:
		stroke = config.SelectedStroke
	}
	s.shapes.Stroke(screen, body, 2, stroke)

	label := fmt.Sprintf("%d", u.Level)
	b := text.BoundString(s.font, label)
	text.Draw(screen, label, s.font, int(cx)-b.Dx()/2, int(cy)+b.Dy()/2, color.Black)
	if u.SkillPoints > 0 {
		vector.DrawFilledCircle(screen, cx+r, cy-r, 3, config.CoinColor, true)
	}

	drawHPBar(screen, cx, cy+r+4, r*2, u.HP/u.MaxHP, config.HPBarUnit)
}

func (s *RenderSystem) drawSelection(screen *ebiten.Image, slot *component.Slot) {
	h := LaneHeight(s.world.Lanes)
	slotW := float32(config.BoardWidth) / float32(s.world.SlotsPerLane)
	x := float32(config.BoardOffsetX) + slotW*float32(slot.Index)
	y := config.BoardOffsetY + h*float32(slot.Lane)
	vector.StrokeRect(screen, x+1, y+2, slotW-2, h-4, 2, config.SelectedStroke, false)
}

// HitFlash reports whether the enemy was damaged recently enough to blink.
func HitFlash(e *component.Enemy, now float64) bool {
	return e.LastHitTime >= 0 && now-e.LastHitTime < hitFlashMs
}

func (s *RenderSystem) drawEnemy(screen *ebiten.Image, e *component.Enemy, now float64) {
	cx := ScreenX(e.X)
	cy := LaneCenterY(e.Lane, s.world.Lanes) + 10
	r := float32(config.EnemyRadius)
	c := config.EnemyColor
	if e.Behavior == defs.BehaviorBoss {
		r *= 1.5
		c = config.BossColor
	}
	if e.Phasing {
		c = config.PhasingColor
	}
	if e.Slowed {
		c = render.LightenColor(c, 40)
	}
	if HitFlash(e, now) {
		c = render.LightenColor(c, 90)
	}
	vector.DrawFilledCircle(screen, cx, cy, r, c, true)
	if e.Attacking {
		vector.StrokeCircle(screen, cx, cy, r, 2, config.HPBarEnemy, true)
	}
	drawHPBar(screen, cx, cy-r-6, r*2, e.HP/e.MaxHP, config.HPBarEnemy)
}

func (s *RenderSystem) drawEffect(screen *ebiten.Image, v *component.VisualEffect, now float64) {
	p := v.Progress(now)
	cx := ScreenX(v.X)
	cy := LaneCenterY(v.Lane, s.world.Lanes)

	switch v.Kind {
	case EffectKindText, EffectKindCoin:
		c := config.TextLightColor
		if v.Kind == EffectKindCoin {
			c = config.CoinColor
			vector.DrawFilledCircle(screen, cx, cy-float32(p*20), config.CoinRadius, render.WithAlpha(config.CoinColor, 1-p), true)
		}
		text.Draw(screen, v.Text, s.font, int(cx)+8, int(cy-float32(p*30)), render.WithAlpha(c, 1-p))
	default:
		radius := float32(8 + p*24)
		vector.StrokeCircle(screen, cx, cy, radius, 2, render.WithAlpha(effectColor(v.Kind), 1-p), true)
	}
}

func effectColor(kind string) color.RGBA {
	switch kind {
	case event.EffectExplosion:
		return config.OverheatColor
	case event.EffectHeal, event.EffectLevelUp, event.EffectAutoUpgrade:
		return config.HPBarUnit
	case event.EffectStun:
		return config.StunColor
	case event.EffectDeath:
		return config.HPBarEnemy
	}
	return config.HighlightColor
}

func projectileColor(p *component.Projectile) color.RGBA {
	if c, ok := config.FamilyColors[p.Kind]; ok {
		return c
	}
	return config.ProjectileColor
}

func drawHPBar(screen *ebiten.Image, cx, y, width float32, ratio float64, fill color.RGBA) {
	ratio = utils.Clamp(ratio, 0, 1)
	x := cx - width/2
	vector.DrawFilledRect(screen, x, y, width, 4, config.HPBarBack, false)
	vector.DrawFilledRect(screen, x, y, width*float32(ratio), 4, fill, false)
}
