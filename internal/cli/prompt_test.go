package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestPrompter(input string) (*consolePrompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := &AppContext{IO: IOStreams{In: strings.NewReader(input), Out: out, ErrOut: out}}
	return newConsolePrompter(app), out
}

func TestChooseRepromptsOnInvalidInput(t *testing.T) {
	p, out := newTestPrompter("abc\n-1\n4\n2\n")

	choice, err := p.Choose("pick", []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if choice != 2 {
		t.Fatalf("expected choice 2, got %d", choice)
	}
	if got := strings.Count(out.String(), "invalid input"); got != 3 {
		t.Fatalf("expected 3 re-prompts, got %d in %q", got, out.String())
	}
	if !strings.HasPrefix(out.String(), "pick\n[0] a\n[1] b\n[2] c\n[3] d\n") {
		t.Fatalf("unexpected menu: %q", out.String())
	}
}

func TestChooseFailsOnClosedInput(t *testing.T) {
	p, _ := newTestPrompter("x\n")
	if _, err := p.Choose("pick", []string{"a"}); !errors.Is(err, errNoInput) {
		t.Fatalf("expected errNoInput, got %v", err)
	}
}

func TestLineAcceptsUnterminatedInput(t *testing.T) {
	p, _ := newTestPrompter("The Artist")
	line, err := p.Line("enter new name:")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if line != "The Artist" {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"N\n", false},
		{"yes\nn\n", false},
		{"\r\n", true},
	}
	for _, tc := range tests {
		p, _ := newTestPrompter(tc.input)
		got, err := p.Confirm("3 files will be moved. Continue")
		if err != nil {
			t.Fatalf("confirm %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("confirm %q = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestConfirmSharesBufferedInputWithChoose(t *testing.T) {
	p, _ := newTestPrompter("1\ny\n")
	if choice, err := p.Choose("", []string{"a", "b"}); err != nil || choice != 1 {
		t.Fatalf("choose = %d, %v", choice, err)
	}
	if ok, err := p.Confirm("go"); err != nil || !ok {
		t.Fatalf("confirm = %v, %v", ok, err)
	}
}
