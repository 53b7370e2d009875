package expression

import (
	"github.com/expr-lang/expr/vm"

	"github.com/autobrr/regexmatcher/pkg/regex"
)

type CompiledRule struct {
	Name    string
	Program *vm.Program
	Text    string
}

// Rules is a compiled rule set. It is not safe for concurrent use.
type Rules struct {
	Rules []CompiledRule

	// patterns used by RegexMatch and friends, keyed by pattern text
	patterns map[string]*regex.Pattern
}

func (r *Rules) Len() int {
	return len(r.Rules)
}
