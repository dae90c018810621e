// internal/system/visual_effect.go
package system

import (
	"fmt"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
)

// Kinds of visual effects that are not plain flashes.
const (
	EffectKindText = "text"
	EffectKindCoin = "coin"
)

// VisualEffectSystem превращает запросы эффектов в короткоживущие записи мира
// и удаляет истёкшие.
type VisualEffectSystem struct {
	world *entity.World
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(w *entity.World, d *event.Dispatcher) *VisualEffectSystem {
	s := &VisualEffectSystem{world: w}
	d.SubscribeAll(s, event.EffectRequested, event.TextRequested, event.CoinDropped)
	return s
}

func (s *VisualEffectSystem) OnEvent(e event.Event) {
	now := s.world.Now
	switch data := e.Data.(type) {
	case event.EffectData:
		s.add(&component.VisualEffect{Kind: data.Kind, Lane: data.Lane, X: data.X, CreatedAt: now, ExpiresAt: now + config.EffectLifetimeMs})
	case event.TextData:
		s.add(&component.VisualEffect{Kind: EffectKindText, Text: data.Text, Lane: data.Lane, X: data.X, CreatedAt: now, ExpiresAt: now + config.TextLifetimeMs})
	case event.CoinData:
		s.add(&component.VisualEffect{Kind: EffectKindCoin, Text: fmt.Sprintf("+$%d", data.Value), Lane: data.Lane, X: data.X, CreatedAt: now, ExpiresAt: now + config.TextLifetimeMs})
	}
}

func (s *VisualEffectSystem) add(v *component.VisualEffect) {
	s.world.Effects = append(s.world.Effects, v)
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(now float64) {
	kept := s.world.Effects[:0]
	for _, v := range s.world.Effects {
		if !v.Expired(now) {
			kept = append(kept, v)
		}
	}
	clear(s.world.Effects[len(kept):])
	s.world.Effects = kept
}
