package sink

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/goliatone/go-userform/pkg/form"
)

func snapshot() form.Snapshot {
	return form.NewSnapshot(map[string]form.Value{"fullName": "Alice Doe", "age": 25})
}

func TestJSON_WritesOneObjectPerAccept(t *testing.T) {
	var buf bytes.Buffer
	s := JSON(&buf)
	s.Accept(context.Background(), snapshot())
	s.Accept(context.Background(), snapshot())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != `{"age":25,"fullName":"Alice Doe"}` {
		t.Fatalf("unexpected payload %s", lines[0])
	}
}

func TestLog_PrintsSnapshot(t *testing.T) {
	var buf bytes.Buffer
	Log(log.New(&buf, "", 0)).Accept(context.Background(), snapshot())
	if got := strings.TrimSpace(buf.String()); got != `userform: submitted {"age":25,"fullName":"Alice Doe"}` {
		t.Fatalf("unexpected log line %q", got)
	}
}

func TestMulti_FansOut(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	Multi(first, nil, second).Accept(context.Background(), snapshot())
	if first.Len() != 1 || second.Len() != 1 {
		t.Fatalf("expected both recorders to receive the snapshot")
	}
	if got := first.Snapshots()[0].String("fullName"); got != "Alice Doe" {
		t.Fatalf("unexpected recorded value %q", got)
	}
}

func TestFunc_NilIsNoop(t *testing.T) {
	var fn Func
	fn.Accept(context.Background(), snapshot())
}
