// internal/interfaces/game_context.go
package interfaces

import (
	"grill-defense/internal/component"
	"grill-defense/internal/defs"
	"grill-defense/internal/entity"
)

// GameContext то, что UI читает из сессии. Изменения идут только через события.
type GameContext interface {
	World() *entity.World
	Library() *defs.Library
	Phase() component.Phase
	Now() float64
	UpgradeCost(u *component.Unit) int
}
