package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJSONEmitterSerializesEvent(t *testing.T) {
	buf := &bytes.Buffer{}
	emitter := NewJSONEmitter(buf)

	event := Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelInfo,
		Event:     EventFileTransferred,
		Path:      "/music/a & b.mp3",
		Message:   "moved a & b.mp3",
		Details: map[string]any{
			"dest": "/out/A/a.mp3",
		},
	}

	if err := emitter.Emit(event); err != nil {
		t.Fatalf("emit: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, `\u0026`) {
		t.Fatalf("expected unescaped ampersand, got %s", line)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if decoded["event"] != string(EventFileTransferred) {
		t.Fatalf("unexpected event name: %v", decoded["event"])
	}
	if decoded["path"] != "/music/a & b.mp3" {
		t.Fatalf("unexpected path: %v", decoded["path"])
	}
}

func TestHumanEmitterRoutesByLevel(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	emitter := NewHumanEmitter(stdout, stderr, false, false)

	events := []Event{
		{Level: LevelInfo, Event: EventIndexFinished, Message: "indexed 3 songs"},
		{Level: LevelInfo, Event: EventFileTransferred, Message: "moved a.mp3"},
		{Level: LevelWarn, Event: EventDirFailed, Message: "cannot create X"},
		{Level: LevelError, Event: EventFileFailed, Message: "cannot move b.mp3"},
	}
	for _, event := range events {
		if err := emitter.Emit(event); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}

	if stdout.String() != "indexed 3 songs\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if stderr.String() != "WARN: cannot create X\nERROR: cannot move b.mp3\n" {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestHumanEmitterVerboseShowsPerFileEvents(t *testing.T) {
	stdout := &bytes.Buffer{}
	emitter := NewHumanEmitter(stdout, &bytes.Buffer{}, false, true)

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventFileTransferred, Message: "moved a.mp3"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if stdout.String() != "moved a.mp3\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestHumanEmitterQuietKeepsSummaryAndErrors(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	emitter := NewHumanEmitter(stdout, stderr, true, false)

	_ = emitter.Emit(Event{Level: LevelInfo, Event: EventPlanReady, Message: "plan"})
	_ = emitter.Emit(Event{Level: LevelWarn, Event: EventDirFailed, Message: "warn"})
	_ = emitter.Emit(Event{Level: LevelError, Event: EventFileFailed, Message: "boom"})
	_ = emitter.Emit(Event{Level: LevelInfo, Event: EventOrganizeFinished, Message: "done"})

	if stdout.String() != "done\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if stderr.String() != "ERROR: boom\n" {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestHumanEmitterBreaksActiveProgressLine(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgress(buf, ProgressInPlace)
	emitter := NewHumanEmitter(buf, buf, false, false).WithProgress(progress)

	progress.Update("1 Prince - Kiss")
	if err := emitter.Emit(Event{Level: LevelWarn, Message: "unreadable"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if buf.String() != "\r1 Prince - Kiss\nWARN: unreadable\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestMultiEmitterFansOut(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	emitter := NewMultiEmitter(NewJSONEmitter(first), NewHumanEmitter(second, second, false, false))

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventPlanReady, Message: "ready"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(first.String(), `"plan_ready"`) {
		t.Fatalf("json emitter missed event: %q", first.String())
	}
	if second.String() != "ready\n" {
		t.Fatalf("human emitter missed event: %q", second.String())
	}
}
