package schema

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Rule is a boolean condition over block data. Data properties are
// available as variables, for example "value != nil && value != ''".
// The syntax is described at https://expr-lang.org/docs/language-definition.
type Rule struct {
	Condition string `yaml:"condition"`
	Message   string `yaml:"message"`
	// Path is reported with the issue when the rule fails.
	Path string `yaml:"path"`
}

type compiledRule struct {
	Rule
	program *vm.Program
}

// RuleValidator validates data against a list of rules. All failing
// rules are reported.
type RuleValidator struct {
	rules []compiledRule
}

// NewRuleValidator compiles the rules.
func NewRuleValidator(rules ...Rule) (*RuleValidator, error) {
	v := &RuleValidator{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		program, err := expr.Compile(
			r.Condition,
			expr.AsBool(),
			expr.AllowUndefinedVariables(),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile rule %q", r.Condition)
		}
		v.rules = append(v.rules, compiledRule{Rule: r, program: program})
	}
	return v, nil
}

func (v *RuleValidator) Parse(data map[string]any) error {
	var issues []Issue

	for _, r := range v.rules {
		result, err := expr.Run(r.program, data)
		if err != nil {
			issues = append(issues, Issue{Path: r.Path, Message: fmt.Sprintf("rule %q: %s", r.Condition, err)})
			continue
		}
		if ok, _ := result.(bool); ok {
			continue
		}
		msg := r.Message
		if msg == "" {
			msg = fmt.Sprintf("rule %q is not satisfied", r.Condition)
		}
		issues = append(issues, Issue{Path: r.Path, Message: msg})
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
