package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestTraceRoundTrip(t *testing.T) {
	trace := &TraceContext{TraceID: "t1", SpanID: "s1", RequestID: "r1"}
	ctx := WithTrace(context.Background(), trace)

	if got := GetTrace(ctx); got != trace {
		t.Errorf("GetTrace = %+v, want %+v", got, trace)
	}
	if got := GetTrace(context.Background()); got != nil {
		t.Errorf("GetTrace on bare context = %+v, want nil", got)
	}
}

func TestWorkspaceIDRoundTrip(t *testing.T) {
	wsID := uuid.New()
	ctx := WithWorkspaceID(context.Background(), wsID)

	if got := GetWorkspaceID(ctx); got != wsID {
		t.Errorf("GetWorkspaceID = %s, want %s", got, wsID)
	}
	if got := GetWorkspaceID(context.Background()); got != uuid.Nil {
		t.Errorf("GetWorkspaceID on bare context = %s, want Nil", got)
	}
}
