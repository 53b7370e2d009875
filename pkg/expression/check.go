package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/scylladb/go-set/i64set"
)

// Evaluate runs every rule against a match result and returns the names of the rules that fired.
func (r *Rules) Evaluate(input string, matched *i64set.Set) ([]string, error) {
	env := &evalContext{Input: input, matched: matched, rules: r}
	var fired []string

	for _, rule := range r.Rules {
		result, err := expr.Run(rule.Program, env)
		if err != nil {
			return nil, fmt.Errorf("check rule %q: %w", rule.Name, err)
		}

		expResult, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("type assert rule %q result: got %T", rule.Name, result)
		}

		if expResult {
			fired = append(fired, rule.Name)
		}
	}

	return fired, nil
}
