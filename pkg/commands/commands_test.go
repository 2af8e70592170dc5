package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"note", "add"},
		{"note", "edit"},
		{"note", "list"},
		{"note", "rm"},
		{"note", "clear"},
		{"todo", "add"},
		{"todo", "edit"},
		{"todo", "list"},
		{"todo", "show"},
		{"todo", "done"},
		{"todo", "rm"},
		{"todo", "clear"},
		{"todo", "cal"},
		{"stats"},
		{"categories"},
		{"theme"},
		{"ui"},
		{"key"},
		{"info"},
		{"version"},
		{"completion"},
	} {
		cmd, rest, err := root.Find(path)
		if err != nil {
			t.Errorf("Find(%v) error: %v", path, err)
			continue
		}
		if len(rest) != 0 || cmd.Name() != path[len(path)-1] {
			t.Errorf("Find(%v) = %q with %v left", path, cmd.Name(), rest)
		}
	}
}

func TestAliases(t *testing.T) {
	root := New()
	for alias, want := range map[string][]string{
		"tasks":  {"tasks", "ls"},
		"notes":  {"notes", "get"},
		"toggle": {"todo", "toggle"},
	} {
		cmd, _, err := root.Find(want)
		if err != nil {
			t.Fatalf("Find(%v) error: %v", want, err)
		}
		if cmd == root {
			t.Errorf("alias %q did not resolve", alias)
		}
	}
}

func TestListFlags(t *testing.T) {
	root := New()
	cmd, _, err := root.Find([]string{"todo", "list"})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"search", "status", "category", "sort", "json"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("todo list is missing --%s", name)
		}
	}
}

func TestListCommandsShowIDs(t *testing.T) {
	root := New()
	for _, path := range [][]string{{"note", "list"}, {"todo", "list"}} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := cmd.ParseFlags([]string{"--show-id"}); err != nil {
			t.Fatalf("%v: %v", path, err)
		}
		if f := cmd.Flags().Lookup("show-id"); f == nil || f.Value.String() != "true" {
			t.Errorf("%v --show-id not bound", path)
		}
	}
}

func TestDestructiveCommandsConfirm(t *testing.T) {
	root := New()
	for _, path := range [][]string{{"note", "rm"}, {"note", "clear"}, {"todo", "rm"}, {"todo", "clear"}} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatal(err)
		}
		if cmd.Flags().Lookup("yes") == nil {
			t.Errorf("%v is missing --yes", path)
		}
	}
}

func TestThemeRejectsUnknownArg(t *testing.T) {
	root := New()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"theme", "sepia"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "sepia") {
		t.Errorf("theme sepia error = %v", err)
	}
}

func TestVersionShort(t *testing.T) {
	root := New()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"version", "--short"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Errorf("version --short = %q", out.String())
	}
}
