package component

// Phase состояние оркестратора.
type Phase string

const (
	PhaseRunning        Phase = "running"
	PhaseVictoryPending Phase = "victory_pending"
	PhaseVictory        Phase = "victory"
	PhaseDefeat         Phase = "defeat"
	PhasePaused         Phase = "paused"
)

// Playing reports whether the simulation advances in this phase.
func (p Phase) Playing() bool {
	return p == PhaseRunning || p == PhaseVictoryPending
}
