package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_SetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "# scene\nROLLING_SPHERE_TEST_A=one\nROLLING_SPHERE_TEST_B=\"two words\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("ROLLING_SPHERE_TEST_B", "preset")
	os.Unsetenv("ROLLING_SPHERE_TEST_A")
	t.Cleanup(func() { os.Unsetenv("ROLLING_SPHERE_TEST_A") })

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("ROLLING_SPHERE_TEST_A"); got != "one" {
		t.Fatalf("A=%q", got)
	}
	if got := os.Getenv("ROLLING_SPHERE_TEST_B"); got != "preset" {
		t.Fatalf("B=%q, process environment should win", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLookup(t *testing.T) {
	t.Setenv("ROLLING_SPHERE_TEST_C", "")
	if got := Lookup("ROLLING_SPHERE_TEST_C", "fallback"); got != "fallback" {
		t.Fatalf("empty: %q", got)
	}
	t.Setenv("ROLLING_SPHERE_TEST_C", "set")
	if got := Lookup("ROLLING_SPHERE_TEST_C", "fallback"); got != "set" {
		t.Fatalf("set: %q", got)
	}
}
