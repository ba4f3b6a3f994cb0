package control

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// Spec is the read-only description of one control in a radar model.
type Spec struct {
	Kind      Kind     `yaml:"kind"`
	Min       int      `yaml:"min"`
	Max       int      `yaml:"max"`
	Default   int      `yaml:"default"`
	Unit      string   `yaml:"unit"`
	Comment   string   `yaml:"comment"`
	Names     []string `yaml:"names"`      // label per manual value, indexed by value
	Auto      bool     `yaml:"auto"`       // single generic auto mode
	AutoNames []string `yaml:"auto_names"` // named auto variants, overrides Auto
	StartAuto bool     `yaml:"start_auto"`
}

// AutoVariants returns the number of selectable auto variants.
func (s Spec) AutoVariants() int {
	if len(s.AutoNames) > 0 {
		return len(s.AutoNames)
	}
	if s.Auto {
		return 1
	}
	return 0
}

// Validate checks that the bounds are ordered and stay clear of the
// sentinel range, and that the variant count fits it.
func (s Spec) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("kind %d: %w", s.Kind, ErrUnknownKind)
	}
	if s.Min > s.Max || s.Min <= PendingSentinel {
		return fmt.Errorf("%s [%d, %d]: %w", s.Kind, s.Min, s.Max, ErrInvalidBounds)
	}
	if s.AutoVariants() >= MaxAutoVariants {
		return fmt.Errorf("%s: %d variants: %w", s.Kind, s.AutoVariants(), ErrInvalidVariant)
	}
	return nil
}

// RangeSpec describes the range control of a radar model.
type RangeSpec struct {
	Unit string `yaml:"unit"`
}

// Profile is the control set of one radar model.
type Profile struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Range       RangeSpec `yaml:"range"`
	Controls    []Spec    `yaml:"controls"`
}

// Spec returns the entry for kind.
func (p *Profile) Spec(kind Kind) (Spec, bool) {
	for _, s := range p.Controls {
		if s.Kind == kind {
			return s, true
		}
	}
	return Spec{}, false
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Profile)
)

// LoadProfile loads the named radar model profile. Profiles are parsed once
// and shared; callers must not modify the result.
func LoadProfile(name string) (*Profile, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	cacheMu.RLock()
	if p, ok := cache[name]; ok {
		cacheMu.RUnlock()
		return p, nil
	}
	cacheMu.RUnlock()

	data, err := profileFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("radar model %q not found: %w", name, err)
	}

	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("radar model %q: %w", name, err)
	}

	cacheMu.Lock()
	cache[name] = p
	cacheMu.Unlock()

	return p, nil
}

// ParseProfile decodes and validates a profile document.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	seen := make(map[Kind]bool, len(p.Controls))
	for _, s := range p.Controls {
		if s.Kind == KindRange {
			return nil, fmt.Errorf("range is configured in the range section, not controls")
		}
		if seen[s.Kind] {
			return nil, fmt.Errorf("duplicate control %s", s.Kind.Key())
		}
		seen[s.Kind] = true
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Models lists the embedded radar model profiles.
func Models() []string {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
