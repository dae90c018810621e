// internal/ui/shop.go
package ui

import (
	"fmt"
	"grill-defense/internal/defs"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

const (
	shopColumns   = 12
	shopCellWidth = 96
	shopGap       = 3
)

// Shop сетка покупаемых юнитов. Выбранный тип ставится кликом по пустому слоту.
type Shop struct {
	X, Y      int
	RowHeight int
	fontFace  font.Face
	items     []string
	buttons   []Button
	selected  int
}

// NewShop lays out one button per purchasable unit.
func NewShop(x, y, rowHeight int, fontFace font.Face, lib *defs.Library) *Shop {
	s := &Shop{X: x, Y: y, RowHeight: rowHeight, fontFace: fontFace, selected: -1}
	for i, id := range lib.ShopUnits() {
		def := lib.Units[id]
		col, row := i%shopColumns, i/shopColumns
		bx := x + col*(shopCellWidth+shopGap)
		by := y + row*(rowHeight+shopGap)
		s.items = append(s.items, id)
		s.buttons = append(s.buttons, Button{
			Rect: image.Rect(bx, by, bx+shopCellWidth, by+rowHeight),
			Text: fmt.Sprintf("%s $%d", shortName(id), def.Cost),
		})
	}
	return s
}

// shortName обрезает ID до ширины ячейки.
func shortName(id string) string {
	const limit = 9
	if len(id) <= limit {
		return id
	}
	return id[:limit]
}

// Selected returns the chosen unit type or "".
func (s *Shop) Selected() string {
	if s.selected < 0 {
		return ""
	}
	return s.items[s.selected]
}

// Select выбирает тип по номеру в списке, повторный выбор снимает выделение.
func (s *Shop) Select(i int) {
	if i < 0 || i >= len(s.items) || i == s.selected {
		s.selected = -1
		return
	}
	s.selected = i
}

// Click выбирает кнопку под курсором. Возвращает true, если клик попал в магазин.
func (s *Shop) Click(x, y int) bool {
	for i := range s.buttons {
		if s.buttons[i].Contains(x, y) {
			s.Select(i)
			return true
		}
	}
	return false
}

// Draw рисует магазин; недоступные по деньгам кнопки гаснут.
func (s *Shop) Draw(screen *ebiten.Image, lib *defs.Library, money int) {
	for i := range s.buttons {
		b := &s.buttons[i]
		b.Active = i == s.selected
		b.Disabled = lib.Units[s.items[i]].Cost > money
		b.Draw(screen, s.fontFace)
	}
}
