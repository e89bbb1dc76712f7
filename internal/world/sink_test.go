package world

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ashfall-games/towers/internal/chunk"
	"github.com/ashfall-games/towers/pkg/tower"
)

func TestAssertingSink_ForwardsEventToCallerSink(t *testing.T) {
	s := NewService(512, zerolog.Nop())
	var got *chunk.Event
	s.Info = func(e chunk.Event) { got = &e }

	sink := s.assertingSink("test_op", s.infoSink())
	sink(chunk.Event{Kind: chunk.PlayerKilled, PlayerId: tower.PlayerId(7)})

	if got == nil || got.PlayerId != tower.PlayerId(7) {
		t.Fatal("expected the caller-supplied Info sink to observe the forwarded event")
	}
}

func TestAssertingSink_PanicsInDebugMode(t *testing.T) {
	s := NewService(512, zerolog.Nop())
	s.Debug = true

	sink := s.assertingSink("test_op", s.infoSink())

	defer func() {
		if recover() == nil {
			t.Fatal("expected assertingSink to panic when Debug is set and an event arrives")
		}
	}()
	sink(chunk.Event{Kind: chunk.PlayerKilled, PlayerId: tower.PlayerId(1)})
}

func TestAssertingSink_NoPanicOutsideDebugMode(t *testing.T) {
	s := NewService(512, zerolog.Nop())
	sink := s.assertingSink("test_op", s.infoSink())
	sink(chunk.Event{Kind: chunk.PlayerKilled, PlayerId: tower.PlayerId(1)})
}

func TestInfoSink_DefaultsToNoop(t *testing.T) {
	s := NewService(512, zerolog.Nop())
	if s.Info != nil {
		t.Fatal("expected a freshly constructed Service to have a nil Info sink")
	}
	s.infoSink()(chunk.Event{Kind: chunk.PlayerKilled, PlayerId: tower.PlayerId(1)})
}
