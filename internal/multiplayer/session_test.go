package multiplayer

import "testing"

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession(NewSessionID("alice"), 2)

	for frame := 1; frame <= 3; frame++ {
		s.Send(LobbyErrorEvent{Message: string(rune('0' + frame))})
	}

	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", s.Dropped())
	}
	first := (<-s.Events()).(LobbyErrorEvent)
	if first.Message != "2" {
		t.Errorf("oldest queued event = %q, expected the first one to be dropped", first.Message)
	}
}

func TestChannelSessionDropsSnapshotsFirst(t *testing.T) {
	s := NewChannelSession(NewSessionID("alice"), 3)

	s.Send(MatchStartedEvent{MatchID: "m1", Side: Player1})
	s.Send(SnapshotEvent{MatchID: "m1", Tick: 1})
	s.Send(SnapshotEvent{MatchID: "m1", Tick: 2})
	s.Send(SnapshotEvent{MatchID: "m1", Tick: 3})

	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", s.Dropped())
	}
	if _, ok := (<-s.Events()).(MatchStartedEvent); !ok {
		t.Fatal("the match start should survive a full queue")
	}
	for _, want := range []uint64{2, 3} {
		snap, ok := (<-s.Events()).(SnapshotEvent)
		if !ok || snap.Tick != want {
			t.Errorf("next event = %+v, expected snapshot tick %d", snap, want)
		}
	}
}

func TestChannelSessionClosed(t *testing.T) {
	s := NewChannelSession(NewSessionID("bob"), 1)
	s.Close()
	s.Close()

	s.Send(LobbyErrorEvent{Message: "late"})
	if len(s.Events()) != 0 {
		t.Error("a closed session should not queue events")
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	a := NewChannelSession(NewSessionID("alice"), 1)
	r.Register(a)

	if got, ok := r.Get(a.ID()); !ok || got != SessionHandle(a) {
		t.Errorf("Get() = %v, %v", got, ok)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", r.Count())
	}

	r.Unregister(a.ID())
	if _, ok := r.Get(a.ID()); ok || r.Count() != 0 {
		t.Error("session should be gone after Unregister")
	}
}
