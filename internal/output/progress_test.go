package output

import (
	"bytes"
	"os"
	"testing"
)

func TestProgressInPlacePadsShorterLines(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, ProgressInPlace)

	p.Update("12 Prince - Purple Rain")
	p.Update("13 ABBA - SOS")
	p.Break()
	p.Break()

	want := "\r12 Prince - Purple Rain" + "\r13 ABBA - SOS          " + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestProgressPadsByDisplayWidth(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, ProgressInPlace)

	p.Update("坂本龍一")
	p.Update("ab")

	want := "\r坂本龍一" + "\rab      "
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestProgressLines(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, ProgressLines)

	p.Update("one")
	p.Update("two")
	p.Break()

	if buf.String() != "one\ntwo\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestProgressOffWritesNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, ProgressOff)
	p.Update("one")
	p.Step(1, 2, "two")
	p.Break()
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	NewProgress(nil, ProgressInPlace).Update("no writer")
}

func TestProgressStep(t *testing.T) {
	buf := &bytes.Buffer{}
	NewProgress(buf, ProgressLines).Step(1, 4, "Prince - Kiss")

	want := "[#####---------------]  25.0% 1/4 Prince - Kiss\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderBarClamps(t *testing.T) {
	cases := map[float64]string{
		-5:  "[----]   0.0%",
		50:  "[##--]  50.0%",
		250: "[####] 100.0%",
	}
	for percent, want := range cases {
		if got := RenderBar(percent, 4); got != want {
			t.Fatalf("RenderBar(%v) = %q, want %q", percent, got, want)
		}
	}
}

func TestSupportsInPlaceUpdatesRejectsNonTerminals(t *testing.T) {
	if SupportsInPlaceUpdates(&bytes.Buffer{}) {
		t.Fatalf("buffer reported as terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()
	if SupportsInPlaceUpdates(f) {
		t.Fatalf("regular file reported as terminal")
	}
}
