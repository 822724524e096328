package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/export"
	"github.com/passforge/passforge-go/internal/session"
)

type fakeCopier struct {
	text string
}

func (f *fakeCopier) Copy(text string) error {
	f.text = text
	return nil
}

func newTestApp(input string) (*App, *bytes.Buffer, *fakeCopier) {
	out := &bytes.Buffer{}
	copier := &fakeCopier{}
	return &App{
		In:      strings.NewReader(input),
		Out:     out,
		Err:     &bytes.Buffer{},
		Copier:  copier,
		Session: session.New(),
	}, out, copier
}

func run(t *testing.T, app *App, args ...string) error {
	t.Helper()
	return app.Execute(context.Background(), append([]string{"--config="}, args...))
}

// passwords returns the first field of every output line that carries a rating.
func passwords(out string) []string {
	var pws []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, " bits)") {
			pws = append(pws, strings.Fields(line)[0])
		}
	}
	return pws
}

func TestGenerateCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCount  int
		wantLength int
		forbidden  crypto.Class
	}{
		{name: "default", args: nil, wantCount: 1, wantLength: 16, forbidden: -1},
		{name: "preset", args: []string{"--preset", "very-strong"}, wantCount: 1, wantLength: 24, forbidden: -1},
		{name: "preset alias with length", args: []string{"-p", "Very Strong", "-l", "30"}, wantCount: 1, wantLength: 30, forbidden: -1},
		{name: "bulk", args: []string{"--preset", "easy", "--count", "3"}, wantCount: 3, wantLength: 10, forbidden: crypto.Symbol},
		{name: "no symbols", args: []string{"--length", "20", "--no-symbols"}, wantCount: 1, wantLength: 20, forbidden: crypto.Symbol},
		{name: "no digits", args: []string{"--no-digits", "-n", "2"}, wantCount: 2, wantLength: 16, forbidden: crypto.Digit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out, _ := newTestApp("")
			if err := run(t, app, append([]string{"generate"}, tt.args...)...); err != nil {
				t.Fatalf("generate unexpected error: %v", err)
			}

			pws := passwords(out.String())
			if len(pws) != tt.wantCount {
				t.Fatalf("got %d passwords, want %d: %q", len(pws), tt.wantCount, out.String())
			}
			if app.Session.Len() != tt.wantCount {
				t.Errorf("session holds %d passwords, want %d", app.Session.Len(), tt.wantCount)
			}
			for _, pw := range pws {
				if len(pw) != tt.wantLength {
					t.Errorf("password %q has length %d, want %d", pw, len(pw), tt.wantLength)
				}
				if tt.forbidden >= 0 && strings.ContainsFunc(pw, tt.forbidden.Contains) {
					t.Errorf("password %q contains excluded class %s", pw, tt.forbidden)
				}
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no classes", args: []string{"--no-upper", "--no-lower", "--no-digits", "--no-symbols"}, want: crypto.ErrInvalidPolicy},
		{name: "unknown preset", args: []string{"--preset", "ultra"}, want: crypto.ErrUnknownPreset},
		{name: "unknown format", args: []string{"--out", "x", "--format", "xml"}, want: export.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp("")
			if err := run(t, app, append([]string{"generate"}, tt.args...)...); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateCopyAndSave(t *testing.T) {
	app, out, copier := newTestApp("")
	path := filepath.Join(t.TempDir(), "out.json")

	if err := run(t, app, "generate", "--copy", "--out", path, "--format", "json"); err != nil {
		t.Fatalf("generate unexpected error: %v", err)
	}

	pws := passwords(out.String())
	if len(pws) != 1 || copier.text != pws[0] {
		t.Fatalf("copied %q, generated %v", copier.text, pws)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var doc export.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(doc.Generated) != 1 || doc.Generated[0] != pws[0] {
		t.Errorf("exported %v, want %v", doc.Generated, pws)
	}
}

func TestGenerateUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("preset: medium\ncount: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	app, out, _ := newTestApp("")
	if err := app.Execute(context.Background(), []string{"--config", cfgPath, "generate"}); err != nil {
		t.Fatalf("generate unexpected error: %v", err)
	}

	pws := passwords(out.String())
	if len(pws) != 2 {
		t.Fatalf("got %d passwords, want 2", len(pws))
	}
	for _, pw := range pws {
		if len(pw) != 12 || strings.ContainsFunc(pw, crypto.Symbol.Contains) {
			t.Errorf("password %q does not match the medium preset", pw)
		}
	}
}

func TestCustomCommand(t *testing.T) {
	app, out, copier := newTestApp("")
	if err := run(t, app, "custom", "--charset", "ab", "--length", "12", "--copy"); err != nil {
		t.Fatalf("custom unexpected error: %v", err)
	}

	pws := passwords(out.String())
	if len(pws) != 1 || len(pws[0]) != 12 || strings.Trim(pws[0], "ab") != "" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if copier.text != pws[0] {
		t.Errorf("copied %q, want %q", copier.text, pws[0])
	}
}

func TestCustomCommandRequiresCharset(t *testing.T) {
	app, _, _ := newTestApp("")
	if err := run(t, app, "custom"); err == nil {
		t.Fatal("expected error without --charset")
	}
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  []string
	}{
		{name: "argument", args: []string{"Ab3!Ab3!Ab3!"}, want: []string{"strong", "78.28 bits", "Pool size:    92", "lower, upper, digit, symbol"}},
		{name: "stdin", input: "1234\n", want: []string{"weak", "13.29 bits", "Classes:      digit"}},
		{name: "empty", input: "\n", want: []string{"weak", "0.00 bits", "Classes:      none"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out, _ := newTestApp(tt.input)
			if err := run(t, app, append([]string{"classify"}, tt.args...)...); err != nil {
				t.Fatalf("classify unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestPresetsCommand(t *testing.T) {
	app, out, _ := newTestApp("")
	if err := run(t, app, "presets"); err != nil {
		t.Fatalf("presets unexpected error: %v", err)
	}
	for _, name := range []string{"easy", "medium", "strong", "very-strong"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("output missing preset %q", name)
		}
	}
}

func TestHistoryCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")

	app, out, _ := newTestApp("")
	if err := run(t, app, "--history", dsn, "generate", "--preset", "very-strong", "--count", "2"); err != nil {
		t.Fatalf("generate unexpected error: %v", err)
	}
	generated := passwords(out.String())

	app, out, _ = newTestApp("")
	if err := run(t, app, "--history", dsn, "history"); err != nil {
		t.Fatalf("history unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Total generations: 2") {
		t.Errorf("unexpected history output:\n%s", got)
	}
	if !strings.Contains(got, "very-strong") {
		t.Errorf("history should list the preset:\n%s", got)
	}
	for _, pw := range generated {
		if strings.Contains(got, pw) {
			t.Error("history output must never contain a password")
		}
	}
}

func TestHistoryCommandWithoutDatabase(t *testing.T) {
	app, _, _ := newTestApp("")
	if err := run(t, app, "history"); !errors.Is(err, errNoHistory) {
		t.Errorf("error = %v, want %v", err, errNoHistory)
	}
}
