package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("REGISTRY_TEST_INT", "abc")
	if got := Int("REGISTRY_TEST_INT", 7); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("REGISTRY_TEST_INT", " 42 ")
	if got := Int("REGISTRY_TEST_INT", 7); got != 42 {
		t.Fatalf("Int: want=42 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"1": true, "on": true, "FALSE": false, "off": false}
	for raw, want := range cases {
		t.Setenv("REGISTRY_TEST_BOOL", raw)
		if got := Bool("REGISTRY_TEST_BOOL", !want); got != want {
			t.Fatalf("Bool(%q): want=%v got=%v", raw, want, got)
		}
	}
	t.Setenv("REGISTRY_TEST_BOOL", "maybe")
	if got := Bool("REGISTRY_TEST_BOOL", true); !got {
		t.Fatalf("Bool: expected default on unknown value")
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("REGISTRY_TEST_DUR", "90")
	if got := Duration("REGISTRY_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration seconds: got=%s", got)
	}
	t.Setenv("REGISTRY_TEST_DUR", "250ms")
	if got := Duration("REGISTRY_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("Duration string: got=%s", got)
	}
	t.Setenv("REGISTRY_TEST_DUR", "")
	if got := Duration("REGISTRY_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("Duration default: got=%s", got)
	}
}

func TestString(t *testing.T) {
	t.Setenv("REGISTRY_TEST_STR", "  ")
	if got := String("REGISTRY_TEST_STR", "dflt"); got != "dflt" {
		t.Fatalf("String: got=%q", got)
	}
}
