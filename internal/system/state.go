// internal/system/state.go
package system

import (
	"context"
	"errors"
	"grill-defense/internal/component"
	"grill-defense/internal/config"
	"grill-defense/internal/entity"
	"grill-defense/internal/event"
	"log"

	"github.com/looplab/fsm"
)

// Phase machine events.
const (
	EventPend    = "pend"
	EventCancel  = "cancel"
	EventWin     = "win"
	EventLose    = "lose"
	EventPause   = "pause"
	EventResume  = "resume"
	EventRevive  = "revive"
	EventAdvance = "advance"
)

var ErrWrongPhase = errors.New("action not allowed in current phase")

// PhaseSystem ведёт фазы сессии: игра, ожидание победы, победа, поражение, пауза.
type PhaseSystem struct {
	world        *entity.World
	settings     *config.Settings
	dispatcher   *event.Dispatcher
	machine      *fsm.FSM
	pendingSince float64
}

func NewPhaseSystem(w *entity.World, settings *config.Settings, d *event.Dispatcher) *PhaseSystem {
	s := &PhaseSystem{
		world:      w,
		settings:   settings,
		dispatcher: d,
	}
	running := string(component.PhaseRunning)
	pending := string(component.PhaseVictoryPending)
	playing := []string{running, pending}

	s.machine = fsm.NewFSM(
		running,
		fsm.Events{
			{Name: EventPend, Src: []string{running}, Dst: pending},
			{Name: EventCancel, Src: []string{pending}, Dst: running},
			{Name: EventWin, Src: []string{pending}, Dst: string(component.PhaseVictory)},
			{Name: EventLose, Src: playing, Dst: string(component.PhaseDefeat)},
			{Name: EventPause, Src: playing, Dst: string(component.PhasePaused)},
			{Name: EventResume, Src: []string{string(component.PhasePaused)}, Dst: running},
			{Name: EventRevive, Src: []string{string(component.PhaseDefeat)}, Dst: running},
			{Name: EventAdvance, Src: []string{string(component.PhaseVictory)}, Dst: running},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.onEnter(e.Src, e.Dst)
			},
		},
	)
	return s
}

func (s *PhaseSystem) onEnter(from, to string) {
	log.Printf("Phase %s -> %s (session %s)", from, to, s.world.SessionID)
	s.dispatcher.Dispatch(event.Event{Type: event.PhaseChanged, Data: event.PhaseData{From: from, To: to}})
	switch component.Phase(to) {
	case component.PhaseVictory:
		requestSound(s.dispatcher, event.SoundVictory, "")
	case component.PhaseDefeat:
		requestSound(s.dispatcher, event.SoundDefeat, "")
	}
}

func (s *PhaseSystem) Current() component.Phase {
	return component.Phase(s.machine.Current())
}

// Can reports whether the event is allowed in the current phase.
func (s *PhaseSystem) Can(name string) bool {
	return s.machine.Can(name)
}

// Fire переводит машину по событию. Недопустимый переход даёт ErrWrongPhase.
func (s *PhaseSystem) Fire(name string) error {
	if !s.machine.Can(name) {
		return ErrWrongPhase
	}
	if err := s.machine.Event(context.Background(), name); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return nil
		}
		log.Printf("Error firing phase event %s: %v", name, err)
		return err
	}
	return nil
}

// Evaluate проверяет поражение и победу в конце тика.
// Победа требует удержать нужное число заполненных дорожек весь интервал ожидания.
func (s *PhaseSystem) Evaluate(now float64) error {
	if !s.Current().Playing() {
		return nil
	}
	if s.world.Player.HP <= 0 {
		return s.Fire(EventLose)
	}

	full := s.world.FullLanes() >= s.settings.VictoryLanes()
	switch s.Current() {
	case component.PhaseRunning:
		if full {
			s.pendingSince = now
			return s.Fire(EventPend)
		}
	case component.PhaseVictoryPending:
		if !full {
			return s.Fire(EventCancel)
		}
		if now-s.pendingSince >= s.settings.VictoryDebounceMs {
			return s.Fire(EventWin)
		}
	}
	return nil
}
