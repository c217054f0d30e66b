package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunStdin(t *testing.T) {
	var out bytes.Buffer
	code := run(nil, strings.NewReader("AA*\nBB\n"), &out)
	if code != 0 {
		t.Fatalf("exit = %d, output:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "Solved in 3 steps. Solver checked 3 moves.") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestRunFileQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walled.txt")
	if err := os.WriteFile(path, []byte("..*\n...\n...\nA..\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	code := run([]string{"-f", path, "-quiet", "-prune"}, strings.NewReader(""), &out)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if got := out.String(); got != "exhausted in 0 steps, 7 moves checked\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRunLibrary(t *testing.T) {
	t.Setenv("PUZZLES_FILE", "")
	var out bytes.Buffer
	if code := run([]string{"-list"}, strings.NewReader(""), &out); code != 0 {
		t.Fatalf("list exit = %d", code)
	}
	if !strings.Contains(out.String(), "tower") {
		t.Fatalf("list output:\n%s", out.String())
	}

	out.Reset()
	if code := run([]string{"-id", "tower", "-quiet"}, strings.NewReader(""), &out); code != 0 {
		t.Fatalf("tower exit = %d: %s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "solved in ") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunBadInput(t *testing.T) {
	var out bytes.Buffer
	for _, args := range [][]string{
		{"-f", filepath.Join(t.TempDir(), "missing.txt")},
		{"-depth"},
	} {
		if code := run(args, strings.NewReader(""), &out); code != 2 {
			t.Errorf("%v: exit = %d", args, code)
		}
	}
	if code := run(nil, strings.NewReader("A?*"), &out); code != 2 {
		t.Errorf("bad grid: exit = %d", code)
	}
	if code := run(nil, strings.NewReader(""), &out); code != 2 {
		t.Errorf("empty stdin: exit = %d", code)
	}
}
