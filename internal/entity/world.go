// internal/entity/world.go
package entity

import (
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/types"
	"math"

	"github.com/google/uuid"
)

// World всё изменяемое состояние одной игровой сессии.
// Владелец один: оркестратор. Системы получают указатель и работают по очереди.
type World struct {
	SessionID    string
	Lanes        int
	SlotsPerLane int
	Now          float64
	NextID       types.EntityID
	Slots        [][]*component.Slot // [дорожка][позиция]
	Enemies      []*component.Enemy
	Projectiles  []*component.Projectile
	Effects      []*component.VisualEffect
	Player       component.Player
}

// NewWorld creates an empty board of lanes × slotsPerLane.
func NewWorld(lanes, slotsPerLane int) *World {
	w := &World{
		SessionID:    uuid.NewString(),
		Lanes:        lanes,
		SlotsPerLane: slotsPerLane,
		NextID:       1,
		Slots:        make([][]*component.Slot, lanes),
	}
	for l := 0; l < lanes; l++ {
		w.Slots[l] = make([]*component.Slot, slotsPerLane)
		for i := 0; i < slotsPerLane; i++ {
			w.Slots[l][i] = &component.Slot{Lane: l, Index: i}
		}
	}
	return w
}

func (w *World) NewEntity() types.EntityID {
	id := w.NextID
	w.NextID++
	return id
}

// Slot returns the slot at (lane, index).
func (w *World) Slot(lane, index int) (*component.Slot, bool) {
	if lane < 0 || lane >= w.Lanes || index < 0 || index >= w.SlotsPerLane {
		return nil, false
	}
	return w.Slots[lane][index], true
}

// Unit returns the unit at (lane, index) or nil.
func (w *World) Unit(lane, index int) *component.Unit {
	if s, ok := w.Slot(lane, index); ok {
		return s.Unit
	}
	return nil
}

// SlotWidth ширина слота в нормализованных координатах.
func (w *World) SlotWidth() float64 {
	return config.LaneLength / float64(w.SlotsPerLane)
}

// SlotStart returns the lane coordinate where the slot begins.
func (w *World) SlotStart(index int) float64 {
	return float64(index) * w.SlotWidth()
}

// SlotCenter returns the lane coordinate of the slot middle.
func (w *World) SlotCenter(index int) float64 {
	return (float64(index) + 0.5) * w.SlotWidth()
}

// SlotIndexAt возвращает индекс слота под координатой x или -1 за пределами доски.
func (w *World) SlotIndexAt(x float64) int {
	idx := int(math.Floor(x / w.SlotWidth()))
	if idx < 0 || idx >= w.SlotsPerLane {
		return -1
	}
	return idx
}

// EmptySlots returns the empty slots of a lane in position order.
func (w *World) EmptySlots(lane int) []*component.Slot {
	var out []*component.Slot
	for _, s := range w.Slots[lane] {
		if s.Empty() {
			out = append(out, s)
		}
	}
	return out
}

// LaneFull reports whether every slot of the lane holds a unit.
func (w *World) LaneFull(lane int) bool {
	for _, s := range w.Slots[lane] {
		if s.Empty() {
			return false
		}
	}
	return true
}

// FullLanes counts completely occupied lanes.
func (w *World) FullLanes() int {
	n := 0
	for l := 0; l < w.Lanes; l++ {
		if w.LaneFull(l) {
			n++
		}
	}
	return n
}

// EachSlot calls fn for every slot, lane by lane, left to right.
func (w *World) EachSlot(fn func(s *component.Slot)) {
	for l := 0; l < w.Lanes; l++ {
		for _, s := range w.Slots[l] {
			fn(s)
		}
	}
}

// Neighbors returns the left and right units of a slot in the same lane, nil if empty.
func (w *World) Neighbors(lane, index int) (left, right *component.Unit) {
	return w.Unit(lane, index-1), w.Unit(lane, index+1)
}

// HasEnemyType reports whether a living enemy of this type is on the board.
func (w *World) HasEnemyType(enemyType string) bool {
	for _, e := range w.Enemies {
		if e.Type == enemyType && e.Alive() {
			return true
		}
	}
	return false
}

// ClearBoard removes all units, enemies, projectiles and effects.
func (w *World) ClearBoard() {
	w.EachSlot(func(s *component.Slot) { s.Unit = nil })
	w.Enemies = nil
	w.Projectiles = nil
	w.Effects = nil
}
