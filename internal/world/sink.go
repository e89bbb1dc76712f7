package world

import (
	"fmt"

	"github.com/ashfall-games/towers/internal/chunk"
)

// InfoSink receives chunk info events (deaths, captures) raised while
// dispatching a message, matching the original's caller-supplied sink
// closures passed to dispatch_chunk_input/dispatch_chunk_maintenance.
type InfoSink = chunk.Sink

// noopInfoSink discards every event. It's Service.Info's zero-value
// behavior: a caller that doesn't care about info events needn't supply one.
func noopInfoSink(chunk.Event) {}

// assertingSink wraps sink with a debug-only assertion that panics if an
// event ever arrives at a call site whose operation is never expected to
// raise one. This mirrors every debug_assert!(false, "<op> should not have
// killed player") (and the shrink/generate unreachable!("generate killed
// player")) closure the original wraps around its own dispatch calls: every
// operation below, in today's reference chunk implementation, never raises
// PlayerKilled, so any event reaching here means dispatch logic drifted
// from that invariant. The event is still forwarded to sink first, so a
// caller-supplied sink observes it in both debug and release builds; only
// the panic is gated on s.Debug.
func (s *Service) assertingSink(op string, sink InfoSink) InfoSink {
	return func(e chunk.Event) {
		sink(e)
		if s.Debug {
			panic(fmt.Sprintf("%s should not have raised info event %+v", op, e))
		}
	}
}

// infoSink returns the caller-supplied sink, or noopInfoSink if none was
// configured.
func (s *Service) infoSink() InfoSink {
	if s.Info != nil {
		return s.Info
	}
	return noopInfoSink
}
