package linter

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// RulesetAll is the implicit ruleset containing every registered rule.
const RulesetAll = "all"

// Registry holds registered rules
type Registry[T any] struct {
	mu       sync.RWMutex
	rules    map[string]RuleRunner[T]
	rulesets map[string][]string // ruleset name -> rule IDs
}

// NewRegistry creates a new rule registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		rules:    make(map[string]RuleRunner[T]),
		rulesets: make(map[string][]string),
	}
}

// Register registers a rule, replacing any rule with the same ID
func (r *Registry[T]) Register(rule RuleRunner[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
}

// RegisterRuleset registers a ruleset
func (r *Registry[T]) RegisterRuleset(name string, ruleIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == RulesetAll {
		return fmt.Errorf("ruleset %q is reserved", name)
	}
	if _, exists := r.rulesets[name]; exists {
		return fmt.Errorf("ruleset %q already registered", name)
	}

	// Validate rule IDs
	for _, id := range ruleIDs {
		if _, exists := r.rules[id]; !exists {
			return fmt.Errorf("rule %q in ruleset %q not found", id, name)
		}
	}

	r.rulesets[name] = slices.Clone(ruleIDs)
	return nil
}

// GetRule returns a rule by ID
func (r *Registry[T]) GetRule(id string) (RuleRunner[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// GetRuleset returns rule IDs for a ruleset
func (r *Registry[T]) GetRuleset(name string) ([]string, bool) {
	if name == RulesetAll {
		return r.AllRuleIDs(), true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.rulesets[name]
	return slices.Clone(ids), ok
}

// AllRules returns all registered rules sorted by ID
func (r *Registry[T]) AllRules() []RuleRunner[T] {
	r.mu.RLock()
	rules := make([]RuleRunner[T], 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	r.mu.RUnlock()

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})
	return rules
}

// RulesInCategory returns the rules of one category sorted by ID
func (r *Registry[T]) RulesInCategory(category string) []RuleRunner[T] {
	var rules []RuleRunner[T]
	for _, rule := range r.AllRules() {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}
	return rules
}

// AllRuleIDs returns all registered rule IDs
func (r *Registry[T]) AllRuleIDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// AllCategories returns all unique categories
func (r *Registry[T]) AllCategories() []string {
	categories := make(map[string]bool)
	for _, rule := range r.AllRules() {
		categories[rule.Category()] = true
	}

	cats := make([]string, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// AllRulesets returns all registered ruleset names
func (r *Registry[T]) AllRulesets() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.rulesets)+1)
	names = append(names, RulesetAll)
	for name := range r.rulesets {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// RulesetsContaining returns names of rulesets that contain the given rule ID
func (r *Registry[T]) RulesetsContaining(ruleID string) []string {
	// "all" always contains everything
	sets := []string{RulesetAll}

	r.mu.RLock()
	for name, ids := range r.rulesets {
		if slices.Contains(ids, ruleID) {
			sets = append(sets, name)
		}
	}
	r.mu.RUnlock()

	sort.Strings(sets)
	return sets
}
