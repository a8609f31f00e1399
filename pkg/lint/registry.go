package lint

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
)

// Registry indexes rules by ID and by name. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // by ID
	names map[string]string // name -> ID
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule), names: make(map[string]string)}
}

// Register adds rule, replacing any rule registered under the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[rule.ID()]; ok {
		delete(r.names, old.Name())
	}
	r.rules[rule.ID()] = rule
	r.names[rule.Name()] = rule.ID()
}

// Get looks a rule up by ID, then by name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.rules[key]; ok {
		return rule, true
	}
	if id, ok := r.names[key]; ok {
		return r.rules[id], true
	}
	return nil, false
}

// Resolve maps a rule ID or name to the rule's ID.
func (r *Registry) Resolve(key string) (string, bool) {
	rule, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return rule.ID(), true
}

// Rules returns the registered rules ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.SortedFunc(maps.Values(r.rules), func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

// RuleInfos describes every registered rule, in ID order.
func (r *Registry) RuleInfos() []config.RuleInfo {
	return lo.Map(r.Rules(), func(rule Rule, _ int) config.RuleInfo {
		return Describe(rule)
	})
}

// DefaultRegistry holds the built-in rules, registered by package rules.
//
//nolint:gochecknoglobals // populated once at init
var DefaultRegistry = NewRegistry()
