// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"grill-defense/internal/config"
	"grill-defense/internal/defs"
	"grill-defense/internal/event"
	"grill-defense/internal/interfaces"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 20
	columnSpacing  = 200
	titleFontSize  = 18

	actionWidth  = 130
	actionHeight = 28
	skillWidth   = 150
)

type panelAction struct {
	Button
	request event.Event
}

// InfoPanel показывает выбранного юнита и кнопки улучшения, продажи и навыков.
// Кнопки не меняют сессию сами, а отправляют запросы через диспетчер.
type InfoPanel struct {
	IsVisible       bool
	lane, slot      int
	hasTarget       bool
	fontFace        font.Face
	titleFontFace   font.Face
	currentY        float64
	targetY         float64
	resetCost       int
	actions         []panelAction
	eventDispatcher *event.Dispatcher
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(font font.Face, titleFont font.Face, dispatcher *event.Dispatcher, resetCost int) *InfoPanel {
	return &InfoPanel{
		fontFace:        font,
		titleFontFace:   titleFont,
		currentY:        config.ScreenHeight,
		targetY:         config.ScreenHeight,
		resetCost:       resetCost,
		eventDispatcher: dispatcher,
	}
}

func (p *InfoPanel) SetTarget(lane, slot int) {
	p.lane, p.slot = lane, slot
	p.hasTarget = true
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Target returns the selected slot while the panel is shown.
func (p *InfoPanel) Target() (lane, slot int, ok bool) {
	return p.lane, p.slot, p.hasTarget && p.targetY < config.ScreenHeight
}

// Contains reports whether a screen point falls on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Update(ctx interfaces.GameContext) {
	p.animate()
	p.layout(ctx)

	if p.IsVisible && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.Click(ebiten.CursorPosition())
	}
}

func (p *InfoPanel) animate() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	if math.Abs(diff) < animationSpeed {
		p.currentY = p.targetY
	} else if diff > 0 {
		p.currentY += animationSpeed
	} else {
		p.currentY -= animationSpeed
	}

	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.hasTarget = false
	}
}

func (p *InfoPanel) rect() image.Rectangle {
	return image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
}

// layout пересобирает кнопки под текущее состояние юнита.
func (p *InfoPanel) layout(ctx interfaces.GameContext) {
	p.actions = p.actions[:0]
	if !p.hasTarget {
		return
	}
	u := ctx.World().Unit(p.lane, p.slot)
	if u == nil {
		p.Hide()
		return
	}
	lib := ctx.Library()
	def := lib.Units[u.Type]
	money := ctx.World().Player.Money
	playing := ctx.Phase().Playing()
	target := event.SlotData{Lane: p.lane, Slot: p.slot}
	r := p.rect()

	col := r.Max.X - actionWidth - 15
	row := func(i int) image.Rectangle {
		y := r.Min.Y + 12 + i*(actionHeight+6)
		return image.Rect(col, y, col+actionWidth, y+actionHeight)
	}
	cost := ctx.UpgradeCost(u)
	p.actions = append(p.actions,
		panelAction{
			Button:  Button{Rect: row(0), Text: fmt.Sprintf("Upgrade $%d", cost), Disabled: !playing || money < cost},
			request: event.Event{Type: event.UpgradeRequested, Data: target},
		},
		panelAction{
			Button:  Button{Rect: row(1), Text: "Sell", Disabled: !playing || def.Unique},
			request: event.Event{Type: event.SellRequested, Data: target},
		},
		panelAction{
			Button:  Button{Rect: row(2), Text: fmt.Sprintf("Reset $%d", p.resetCost), Disabled: !playing || u.SpentSkillPoints == 0 || money < p.resetCost},
			request: event.Event{Type: event.SkillResetRequested, Data: target},
		},
	)

	y := r.Max.Y - actionHeight - 12
	for i, sk := range lib.SkillsFor(u.Type) {
		x := r.Min.X + 15 + i*(skillWidth+8)
		name := sk.Name
		if sk.Hidden && u.Level < sk.UnlockLevel {
			name = "???"
		}
		unlocked := u.HasSkill(sk.ID)
		data := target
		data.SkillID = sk.ID
		p.actions = append(p.actions, panelAction{
			Button: Button{
				Rect:     image.Rect(x, y, x+skillWidth, y+actionHeight),
				Text:     fmt.Sprintf("%s L%d", name, sk.UnlockLevel),
				Active:   unlocked,
				Disabled: !unlocked && (!playing || u.Level < sk.UnlockLevel || u.SkillPoints < sk.Cost),
			},
			request: event.Event{Type: event.SkillUnlockRequested, Data: data},
		})
	}
}

// Click отправляет запрос кнопки под курсором. Возвращает true, если клик пришёлся на панель.
func (p *InfoPanel) Click(x, y int) bool {
	if !p.Contains(x, y) {
		return false
	}
	for _, a := range p.actions {
		if a.Contains(x, y) && !a.Disabled && !a.Active {
			p.eventDispatcher.Dispatch(a.request)
			log.Printf("%s dispatched for slot %d:%d", a.request.Type, p.lane, p.slot)
			break
		}
	}
	return true
}

func (p *InfoPanel) Draw(screen *ebiten.Image, ctx interfaces.GameContext) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := p.rect()
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	if !p.hasTarget {
		return
	}
	p.drawUnitInfo(screen, ctx, panelRect.Min.X+15, panelRect.Min.Y+15)
	for i := range p.actions {
		p.actions[i].Draw(screen, p.fontFace)
	}
}

func (p *InfoPanel) drawUnitInfo(screen *ebiten.Image, ctx interfaces.GameContext, startX, startY int) {
	u := ctx.World().Unit(p.lane, p.slot)
	if u == nil {
		return
	}
	def := ctx.Library().Units[u.Type]
	y := startY + titleFontSize
	text.Draw(screen, fmt.Sprintf("%s  Lv %d", def.Name, u.Level), p.titleFontFace, startX, y, config.TextLightColor)
	text.Draw(screen, string(def.Tier), p.fontFace, startX+columnSpacing*2, y, tierColor(def.Tier))
	y += lineHeight

	col2 := startX + columnSpacing
	text.Draw(screen, fmt.Sprintf("HP: %.0f / %.0f", u.HP, u.MaxHP), p.fontFace, startX, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Role: %s", def.Role), p.fontFace, col2, y, config.TextLightColor)
	y += lineHeight
	if def.Attacks() {
		text.Draw(screen, fmt.Sprintf("Damage: %.0f", def.Damage), p.fontFace, startX, y, config.TextLightColor)
		text.Draw(screen, fmt.Sprintf("Interval: %.0f ms", def.Interval), p.fontFace, col2, y, config.TextLightColor)
		y += lineHeight
	}
	text.Draw(screen, fmt.Sprintf("Skill points: %d", u.SkillPoints), p.fontFace, startX, y, config.TextLightColor)
}

func tierColor(t defs.Tier) color.RGBA {
	switch t {
	case defs.TierKing, defs.TierGod, defs.TierSupreme:
		return config.CoinColor
	case defs.TierBonus, defs.TierSpecial:
		return config.HighlightColor
	}
	return config.TextLightColor
}
