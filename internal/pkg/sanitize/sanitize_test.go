package sanitize

import (
	"reflect"
	"testing"
)

func TestClean_StripsDangerousKeys(t *testing.T) {
	input := map[string]any{
		"username": "brig",
		"$where":   "this.password.length > 0",
		"a.b":      "path injection",
		"nested": map[string]any{
			"$gt":  "",
			"safe": "value",
			"deeper": map[string]any{
				"$ne":  nil,
				"keep": 1.0,
			},
		},
		"list": []any{
			map[string]any{"$or": []any{}, "ok": true},
			"scalar",
		},
	}

	got := Clean(input)

	want := map[string]any{
		"username": "brig",
		"nested": map[string]any{
			"safe": "value",
			"deeper": map[string]any{
				"keep": 1.0,
			},
		},
		"list": []any{
			map[string]any{"ok": true},
			"scalar",
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Clean mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestClean_Idempotent(t *testing.T) {
	input := map[string]any{
		"$set":  map[string]any{"role": "super-admin"},
		"title": "A Book",
		"tags":  []any{"one", "two"},
		"meta":  map[string]any{"a.b": 1.0, "c": 2.0},
	}

	once := Clean(input)
	twice := Clean(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Clean is not idempotent:\n once: %#v\ntwice: %#v", once, twice)
	}
}

func TestClean_PassesScalarsThrough(t *testing.T) {
	for _, v := range []any{nil, "text", 42.0, true} {
		if got := Clean(v); !reflect.DeepEqual(got, v) {
			t.Fatalf("Clean(%v) = %v, want unchanged", v, got)
		}
	}
}

func TestClean_DropsSilently(t *testing.T) {
	// A request consisting solely of dangerous keys yields an empty object,
	// not an error; the client gets no feedback about the discarded fields.
	got := Clean(map[string]any{"$where": "1", "a.b.c": "2"})

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %#v", m)
	}
}

func TestDangerous(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"$where", true},
		{"a.b", true},
		{"$", true},
		{"username", false},
		{"dollar$inside", false},
	}
	for _, tc := range cases {
		if got := Dangerous(tc.key); got != tc.want {
			t.Fatalf("Dangerous(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}
