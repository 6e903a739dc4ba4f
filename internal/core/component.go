package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

type MatchMode string

const (
	// MatchExact routes an asset to a component only when its base name
	// without extension equals the component id.
	MatchExact MatchMode = "exact"
	// MatchSubstring routes an asset to the first component, in declaration
	// order, whose id occurs anywhere in the asset's base name. Ids that are
	// substrings of each other ("card", "card-list") make this ambiguous.
	MatchSubstring MatchMode = "substring"
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchSubstring:
		return MatchSubstring, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want exact or substring)", s)
	}
}

type ComponentEntry struct {
	ID     string
	Script string
	Style  string
}

func (c ComponentEntry) Sources() []string {
	var sources []string
	if c.Script != "" {
		sources = append(sources, c.Script)
	}
	if c.Style != "" {
		sources = append(sources, c.Style)
	}
	return sources
}

// ComponentSet keeps component ids in declaration order.
type ComponentSet struct {
	ids  []string
	seen map[string]bool
}

func NewComponentSet(ids ...string) *ComponentSet {
	set := &ComponentSet{seen: make(map[string]bool)}
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

func (s *ComponentSet) Add(id string) {
	if id == "" || s.seen[id] {
		return
	}
	s.seen[id] = true
	s.ids = append(s.ids, id)
}

func (s *ComponentSet) Has(id string) bool {
	return s != nil && s.seen[id]
}

func (s *ComponentSet) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.ids...)
}

func (s *ComponentSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Match returns the component owning an emitted file with the given base name.
func (s *ComponentSet) Match(fileName string, mode MatchMode) (string, bool) {
	if s == nil {
		return "", false
	}
	base := filepath.Base(filepath.ToSlash(fileName))

	if mode == MatchSubstring {
		for _, id := range s.ids {
			if strings.Contains(base, id) {
				return id, true
			}
		}
		return "", false
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if s.seen[stem] {
		return stem, true
	}
	return "", false
}
