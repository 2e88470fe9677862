package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// ReactPackage gets bespoke version handling instead of the generic
// range-overlap rule.
const ReactPackage = "react"

// Rule binds a package name to the version ranges considered unsafe for it.
type Rule struct {
	Package string
	Ranges  []string
}

// RuleSet is an ordered collection of rules with unique package names.
// Immutable after construction.
type RuleSet struct {
	rules []Rule
	index map[string]int
}

// NewRuleSet builds a rule set preserving insertion order. A repeated package
// name replaces the earlier entry in place.
func NewRuleSet(rules ...Rule) *RuleSet {
	s := &RuleSet{index: make(map[string]int, len(rules))}
	for _, r := range rules {
		if i, ok := s.index[r.Package]; ok {
			s.rules[i] = r
			continue
		}
		s.index[r.Package] = len(s.rules)
		s.rules = append(s.rules, r)
	}
	return s
}

// Defaults returns the built-in rule set for the React2Shell advisory. The
// patched releases 19.0.1, 19.1.2 and 19.2.1 fall outside every range.
func Defaults() *RuleSet {
	ranges := []string{"19.0.0", "19.1.0 - 19.1.1", "19.2.0"}
	return NewRuleSet(
		Rule{Package: "react-server-dom-webpack", Ranges: ranges},
		Rule{Package: "react-server-dom-parcel", Ranges: ranges},
		Rule{Package: "react-server-dom-turbopack", Ranges: ranges},
	)
}

// FromConfig converts a configuration mapping into a rule set. Keys are
// sorted so that the same mapping always produces the same set regardless of
// map iteration order.
func FromConfig(m map[string][]string) *RuleSet {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		rules = append(rules, Rule{Package: name, Ranges: m[name]})
	}
	return NewRuleSet(rules...)
}

// Merge layers overrides on top of the receiver. An override for an existing
// package wins wholesale; new packages are appended in the overrides' order.
func (s *RuleSet) Merge(overrides *RuleSet) *RuleSet {
	if overrides == nil || len(overrides.rules) == 0 {
		return s
	}
	merged := make([]Rule, 0, len(s.rules)+len(overrides.rules))
	merged = append(merged, s.rules...)
	merged = append(merged, overrides.rules...)
	return NewRuleSet(merged...)
}

// Lookup returns the rule for a package name.
func (s *RuleSet) Lookup(name string) (Rule, bool) {
	i, ok := s.index[name]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// Packages returns the configured package names in insertion order.
func (s *RuleSet) Packages() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Package
	}
	return names
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Fingerprint returns a stable hash of the effective rule set, used to key
// cached scan results so that configuration changes invalidate them.
func (s *RuleSet) Fingerprint() string {
	names := s.Packages()
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		r, _ := s.Lookup(name)
		h.Write([]byte(name))
		h.Write([]byte{'='})
		h.Write([]byte(strings.Join(r.Ranges, ",")))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
