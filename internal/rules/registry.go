// Package rules holds the ordered registry of format rules. Importing it
// registers the built-in rules.
package rules

import (
	"fmt"
	"slices"

	"github.com/donaldgifford/splicefmt/internal/formatter"
)

var formatRules []formatter.FormatRule

// RegisterFormatRule appends r to the pipeline. Rules run in registration
// order. Registering two rules under one name panics.
func RegisterFormatRule(r formatter.FormatRule) {
	if _, ok := Lookup(r.Name()); ok {
		panic(fmt.Sprintf("rules: duplicate format rule %q", r.Name()))
	}
	formatRules = append(formatRules, r)
}

// FormatRules returns the registered rules in execution order. The slice
// is a copy.
func FormatRules() []formatter.FormatRule {
	return slices.Clone(formatRules)
}

// Lookup returns the rule registered under name.
func Lookup(name string) (formatter.FormatRule, bool) {
	i := slices.IndexFunc(formatRules, func(r formatter.FormatRule) bool {
		return r.Name() == name
	})
	if i < 0 {
		return nil, false
	}
	return formatRules[i], true
}

// Names returns the config keys of the registered rules in execution order.
func Names() []string {
	names := make([]string, len(formatRules))
	for i, r := range formatRules {
		names[i] = r.Name()
	}
	return names
}
