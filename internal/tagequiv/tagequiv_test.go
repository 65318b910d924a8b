package tagequiv_test

import (
	"testing"

	"github.com/vortex/xmldiff/internal/tagequiv"
)

func TestEquivalentSameTag(t *testing.T) {
	tb := tagequiv.Empty()
	if !tb.Equivalent("list", "list") {
		t.Fatalf("identical tags must always be equivalent, even in an empty table")
	}
}

func TestEquivalentSameGroup(t *testing.T) {
	tb := tagequiv.Default()
	if !tb.Equivalent("list", "ul") {
		t.Fatalf("list/ul are in the same group, want equivalent")
	}
	if !tb.Equivalent("t", "li") {
		t.Fatalf("t/li are in the same group, want equivalent")
	}
}

func TestEquivalentDifferentGroup(t *testing.T) {
	tb := tagequiv.Default()
	if tb.Equivalent("list", "table") {
		t.Fatalf("list/table are in different groups, want not equivalent")
	}
}

func TestEquivalentUnknownTag(t *testing.T) {
	tb := tagequiv.Default()
	if tb.Equivalent("list", "widget") {
		t.Fatalf("widget belongs to no group, want not equivalent to list")
	}
}

func TestEquivalentNilTable(t *testing.T) {
	var tb *tagequiv.Table
	if tb.Equivalent("a", "b") {
		t.Fatalf("nil table must treat distinct tags as not equivalent")
	}
	if !tb.Equivalent("a", "a") {
		t.Fatalf("nil table must still treat identical tags as equivalent")
	}
}

func TestEmptyTableHasNoGroups(t *testing.T) {
	tb := tagequiv.Empty()
	if tb.Equivalent("list", "ul") {
		t.Fatalf("an empty table (raw mode) must not bless any cross-tag equivalence")
	}
}

func TestLoadCustomGroups(t *testing.T) {
	yaml := []byte(`
groups:
  - [foo, bar]
`)
	tb, err := tagequiv.Load(yaml)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tb.Equivalent("foo", "bar") {
		t.Fatalf("foo/bar loaded into the same group, want equivalent")
	}
	if tb.Equivalent("foo", "baz") {
		t.Fatalf("baz is absent from the table, want not equivalent to foo")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := tagequiv.Load([]byte("groups: [")); err == nil {
		t.Fatalf("Load: want error for malformed YAML")
	}
}

func TestDefaultIsCached(t *testing.T) {
	a := tagequiv.Default()
	b := tagequiv.Default()
	if a != b {
		t.Fatalf("Default() returned distinct tables, want the same cached instance")
	}
}
