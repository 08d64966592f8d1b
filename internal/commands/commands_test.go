package commands

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
)

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	db := fs.String("db", "", "")
	ran := false
	r.Register("export", "write inventory", fs, func() error {
		ran = true
		return nil
	})

	if err := r.Execute([]string{"export", "-db", "out.db"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran || *db != "out.db" {
		t.Fatalf("ran=%v db=%q", ran, *db)
	}
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	r.Register("build", "build", fs, func() error { return boom })

	if err := r.Execute(nil); !errors.Is(err, ErrUsage) {
		t.Fatalf("empty args err=%v", err)
	}
	if err := r.Execute([]string{"fly"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("unknown err=%v", err)
	}
	if err := r.Execute([]string{"build", "-nope"}); err == nil {
		t.Fatalf("expected flag parse error")
	}
	if err := r.Execute([]string{"build"}); !errors.Is(err, boom) {
		t.Fatalf("run err=%v", err)
	}
}

func TestRegistry_PrintUsage(t *testing.T) {
	r := NewRegistry()
	r.Register("view", "open the viewer", flag.NewFlagSet("view", flag.ContinueOnError), func() error { return nil })
	r.Register("build", "build the plant", flag.NewFlagSet("build", flag.ContinueOnError), func() error { return nil })

	var buf bytes.Buffer
	r.PrintUsage(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "build") || !strings.Contains(lines[1], "view") {
		t.Fatalf("usage=%q", buf.String())
	}
}
