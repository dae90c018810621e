// internal/component/player.go
package component

// Player общий пул здоровья, деньги и счёт.
type Player struct {
	HP            int
	MaxHP         int
	Money         int
	Score         int
	Wave          int
	Heat          float64
	OverheatUntil float64
}

// Overheated reports whether the overheat boost is active.
func (p *Player) Overheated(now float64) bool {
	return p.OverheatUntil > now
}

// TakeDamage subtracts damage and clamps hp at zero.
func (p *Player) TakeDamage(amount int) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}
