package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractSdataLimit(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		fallback int
		limit    int
		kept     []string
	}{
		{
			name:     "no -G flag uses fallback and forwards args unchanged",
			args:     []string{"-KPIC", "foo.s"},
			fallback: 0,
			limit:    0,
			kept:     []string{"-KPIC", "foo.s"},
		},
		{
			name:     "a -G<N> flag sets the limit and is still forwarded",
			args:     []string{"-G8", "foo.s"},
			fallback: 0,
			limit:    8,
			kept:     []string{"-G8", "foo.s"},
		},
		{
			name:     "last -G<N> wins when several are given",
			args:     []string{"-G4", "-G8", "foo.s"},
			fallback: 0,
			limit:    8,
			kept:     []string{"-G4", "-G8", "foo.s"},
		},
		{
			name:     "a malformed -G flag is left alone and ignored",
			args:     []string{"-Gxyz", "foo.s"},
			fallback: 3,
			limit:    3,
			kept:     []string{"-Gxyz", "foo.s"},
		},
		{
			name:     "bare -G with no digits is not treated as the flag",
			args:     []string{"-G", "foo.s"},
			fallback: 3,
			limit:    3,
			kept:     []string{"-G", "foo.s"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			limit, kept := extractSdataLimit(c.args, c.fallback)
			if limit != c.limit {
				t.Errorf("limit = %d, want %d", limit, c.limit)
			}
			if !equalStrings(kept, c.kept) {
				t.Errorf("kept = %v, want %v", kept, c.kept)
			}
		})
	}
}

func TestStripKPIC(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want []string
	}{
		{"removes a bare -KPIC", []string{"-KPIC", "foo.s"}, []string{"foo.s"}},
		{"removes several occurrences", []string{"-KPIC", "-G0", "-KPIC"}, []string{"-G0"}},
		{"leaves other args untouched", []string{"-G0", "foo.s"}, []string{"-G0", "foo.s"}},
		{"empty input stays empty", nil, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := stripKPIC(c.args)
			if !equalStrings(got, c.want) {
				t.Errorf("stripKPIC(%v) = %v, want %v", c.args, got, c.want)
			}
		})
	}
}

func TestInsertBeforeLast(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		value  string
		before string
		want   []string
	}{
		{
			name:   "inserts immediately before the trailing marker",
			args:   []string{"-G8", "-"},
			value:  "-G0",
			before: "-",
			want:   []string{"-G8", "-G0", "-"},
		},
		{
			name:   "appends when the last element isn't the marker",
			args:   []string{"-G8"},
			value:  "-G0",
			before: "-",
			want:   []string{"-G8", "-G0"},
		},
		{
			name:   "appends on an empty list",
			args:   nil,
			value:  "-G0",
			before: "-",
			want:   []string{"-G0"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := insertBeforeLast(c.args, c.value, c.before)
			if !equalStrings(got, c.want) {
				t.Errorf("insertBeforeLast(%v, %q, %q) = %v, want %v", c.args, c.value, c.before, got, c.want)
			}
		})
	}
}

func TestReadInputPrefersPipedStdin(t *testing.T) {
	restore := fakeStdinWith(t, "piped content\n")
	defer restore()

	got, err := readInput("", false)
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "piped content\n" {
		t.Errorf("got %q, want piped content", got)
	}
}

func TestReadInputFallsBackToFileWhenStdinEmpty(t *testing.T) {
	restore := fakeStdinWith(t, "")
	defer restore()

	path := filepath.Join(t.TempDir(), "foo.s")
	if err := os.WriteFile(path, []byte("lw $2,0($sp)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readInput(path, false)
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "lw $2,0($sp)\n" {
		t.Errorf("got %q, want file contents", got)
	}
}

func TestReadInputForceStdinErrorsWhenStdinEmpty(t *testing.T) {
	restore := fakeStdinWith(t, "")
	defer restore()

	if _, err := readInput("", true); err == nil {
		t.Error("expected an error when --force-stdin is set and stdin is empty")
	}
}

func TestReadInputErrorsWhenNoFileAndNoStdin(t *testing.T) {
	restore := fakeStdinWith(t, "")
	defer restore()

	if _, err := readInput("", false); err == nil {
		t.Error("expected an error when neither stdin nor a file is available")
	}
}

// fakeStdinWith replaces os.Stdin with a pipe pre-loaded with content (which
// may be empty), and returns a func that restores the original os.Stdin.
func fakeStdinWith(t *testing.T, content string) func() {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("writing fake stdin: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing fake stdin writer: %v", err)
	}

	original := os.Stdin
	os.Stdin = r
	return func() {
		os.Stdin = original
		r.Close()
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
