package event

import "testing"

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) {
	r.got = append(r.got, e)
}

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(EnemyKilled, a)
	d.SubscribeAll(b, EnemyKilled, CoinDropped)

	d.Dispatch(Event{Type: EnemyKilled, Data: EnemyData{Type: "RAT"}})
	d.Dispatch(Event{Type: CoinDropped, Data: CoinData{Value: 10}})

	if len(a.got) != 1 {
		t.Errorf("a received %d events, want 1", len(a.got))
	}
	if len(b.got) != 2 {
		t.Errorf("b received %d events, want 2", len(b.got))
	}
	if data, ok := b.got[1].Data.(CoinData); !ok || data.Value != 10 {
		t.Errorf("unexpected payload %#v", b.got[1].Data)
	}
}

func TestDispatcherUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(SoundRequested, r)
	d.Unsubscribe(SoundRequested, r)
	d.Dispatch(Event{Type: SoundRequested})
	if len(r.got) != 0 {
		t.Errorf("received %d events after unsubscribe", len(r.got))
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Type: EnemyKilled})
}
