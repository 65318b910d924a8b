// Package tagequiv holds the fixed table of tag spellings that the solver
// treats as interchangeable ("tag equivalence table"), e.g. list/ol/ul/dl
// or t/li. The table is exposed as data rather than hard-coded logic, so
// a vocabulary change is a data edit, not a code change: it ships
// embedded as YAML and is parsed with gopkg.in/yaml.v3.
package tagequiv

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed equivalences.yaml
var defaultTableYAML []byte

// Table groups tag names considered equivalent to each other. Every tag in
// a group is mutually equivalent; a tag absent from every group is only
// equivalent to itself.
type Table struct {
	groups    [][]string
	classOf   map[string]int
}

// Equivalent reports whether a and b should be treated as the same tag for
// the solver's update cost and the renderer's rename decision: equal tags
// are always equivalent; otherwise they must share a group.
func (t *Table) Equivalent(a, b string) bool {
	if a == b {
		return true
	}
	if t == nil {
		return false
	}
	ca, ok := t.classOf[a]
	if !ok {
		return false
	}
	cb, ok := t.classOf[b]
	return ok && ca == cb
}

// Load parses a table from YAML shaped as a list of equivalence groups:
//
//	groups:
//	  - [list, ol, ul, dl]
//	  - [t, li]
func Load(data []byte) (*Table, error) {
	var doc struct {
		Groups [][]string `yaml:"groups"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tagequiv: parse table: %w", err)
	}
	t := &Table{groups: doc.Groups, classOf: make(map[string]int)}
	for i, g := range doc.Groups {
		for _, tag := range g {
			t.classOf[tag] = i
		}
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the built-in RFC/Internet-Draft vocabulary table,
// parsing the embedded YAML once.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Load(defaultTableYAML)
	})
	if defaultErr != nil {
		// The embedded table is a build-time constant; a parse failure
		// here means the asset is corrupt, not a runtime condition.
		panic(defaultErr)
	}
	return defaultTable
}

// Empty returns a table with no equivalences, used when raw mode disables
// tag-equivalence entirely.
func Empty() *Table {
	return &Table{classOf: map[string]int{}}
}
