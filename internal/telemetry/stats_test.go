package telemetry

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCollectorRecord(t *testing.T) {
	c := NewCollector()
	if c.Len() != 0 {
		t.Errorf("new collector len = %d, want 0", c.Len())
	}

	c.Record(FrameStats{Frame: 0, Time: 0.016, Vertices: 4096, EvalUs: 1200})
	c.Record(FrameStats{Frame: 1, Time: 0.033, Vertices: 4096, EvalUs: 1100})

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if c.Samples()[1].Frame != 1 {
		t.Errorf("second sample frame = %d, want 1", c.Samples()[1].Frame)
	}
	if got := c.TotalEvalTime(); got != 2300*time.Microsecond {
		t.Errorf("total eval time = %v, want 2.3ms", got)
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("len after reset = %d, want 0", c.Len())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	c := NewCollector()
	c.Record(FrameStats{
		Frame: 3, Time: 1.5, Vertices: 1024,
		EvalUs: 842, NonFinite: 2, MinHeight: -0.5, MaxHeight: 2.25,
	})

	var buf bytes.Buffer
	if err := c.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "frame,time,vertices,eval_us,non_finite,min_height,max_height") {
		t.Errorf("unexpected CSV header: %q", strings.SplitN(out, "\n", 2)[0])
	}

	samples, err := ReadCSV(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("sample count = %d, want 1", len(samples))
	}
	if samples[0] != c.Samples()[0] {
		t.Errorf("round trip mismatch: %+v vs %+v", samples[0], c.Samples()[0])
	}
}
