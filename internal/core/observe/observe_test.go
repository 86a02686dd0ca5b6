package observe

import (
	"errors"
	"testing"
)

func TestRecorderCaptures(t *testing.T) {
	var r Recorder
	r.Emit(Event{Kind: KindEditApplied, Document: "doc-1"})
	r.Emit(Event{Kind: KindEditRejected, Document: "doc-1", Err: errors.New("oob")})
	r.Emit(Event{Kind: KindEditApplied, Document: "doc-1"})

	if len(r.Events) != 3 {
		t.Fatalf("captured %d events, want 3", len(r.Events))
	}

	applied := r.ByKind(KindEditApplied)
	if len(applied) != 2 {
		t.Errorf("ByKind(applied) = %d events, want 2", len(applied))
	}

	rejected := r.ByKind(KindEditRejected)
	if len(rejected) != 1 || rejected[0].Err == nil {
		t.Error("rejected event should carry its error")
	}
}

func TestNopSink(t *testing.T) {
	// Must simply not panic.
	NopSink{}.Emit(Event{Kind: KindReparse})
}
