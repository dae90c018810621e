// internal/sound/sound.go
package sound

import (
	"grill-defense/internal/event"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Manager синтезирует звуки по запросам SoundRequested.
// До Initialize запросы молча отбрасываются, поэтому симуляция работает и без аудиоустройства.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewManager creates a sound manager with the given master volume in [0, 1].
func NewManager(volume float64) *Manager {
	return &Manager{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the audio device.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops everything that is still playing.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// ToggleMute переключает звук и возвращает новое состояние.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = !m.muted
	if m.muted && m.initialized {
		speaker.Lock()
		m.mixer.Clear()
		speaker.Unlock()
	}
	return m.muted
}

// Muted reports whether sound is off.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Play queues a sound. Unknown kinds are ignored.
func (m *Manager) Play(kind event.SoundKind, unitType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return
	}
	s := m.streamer(kind, unitType)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

func (m *Manager) streamer(kind event.SoundKind, unitType string) beep.Streamer {
	notes := patchFor(kind, unitType)
	if len(notes) == 0 {
		return nil
	}
	return withVolume(build(notes, sampleRate), m.volume)
}

// OnEvent реализует интерфейс event.Listener.
func (m *Manager) OnEvent(e event.Event) {
	data, ok := e.Data.(event.SoundData)
	if !ok {
		log.Printf("Unexpected payload for %s: %T", e.Type, e.Data)
		return
	}
	m.Play(data.Kind, data.UnitType)
}
