package profiling

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestStartIsNoopWhenDisabled(t *testing.T) {
	reset()

	stopper := Start("anything")
	if _, ok := stopper.(noopStopper); !ok {
		t.Fatalf("Start() while disabled returned %T, want noopStopper", stopper)
	}

	var buf bytes.Buffer
	Summarize(&buf)
	if buf.Len() != 0 {
		t.Errorf("Summarize() while disabled wrote %q, want nothing", buf.String())
	}
}

func TestNestedSpansSummarize(t *testing.T) {
	reset()
	Enable()

	func() {
		defer Start("outer").Stop()
		func() {
			defer Start("inner").Stop()
			time.Sleep(time.Millisecond)
		}()
	}()

	var buf bytes.Buffer
	Summarize(&buf)
	out := buf.String()

	if !strings.Contains(out, "Timing Profile") {
		t.Fatalf("summary missing header:\n%s", out)
	}
	if !strings.Contains(out, "  - outer (") {
		t.Errorf("summary missing outer span:\n%s", out)
	}
	// Nested span indents one level deeper than its parent
	if !strings.Contains(out, "    - inner (") {
		t.Errorf("summary missing nested inner span:\n%s", out)
	}
}

func TestEnableIsIdempotent(t *testing.T) {
	reset()
	Enable()
	Start("first").Stop()
	Enable()
	Start("second").Stop()

	var buf bytes.Buffer
	Summarize(&buf)
	out := buf.String()

	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("second Enable() discarded recorded spans:\n%s", out)
	}
}
