// Package regulatory derives permit and registration requirements for a tariff
// entry from a table of CEL predicates.
package regulatory

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	log "github.com/sirupsen/logrus"
	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/textnorm"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a permit or registration the importer needs before release.
type Alert struct {
	Entity      string   `json:"entity"`
	EntityCode  string   `json:"entityCode"`
	Requirement string   `json:"requirement"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// AlertTemplate is an Alert before its severity is derived.
type AlertTemplate struct {
	Entity      string
	EntityCode  string
	Requirement string
	Description string
}

// Rule fires its alerts when Expression evaluates to true. The expression sees
// code, category, description (normalized), duty, consumption and vat.
type Rule struct {
	ID         string
	Expression string
	Alerts     []AlertTemplate
}

// SeverityByEntity maps an entity code to a non-default severity.
var SeverityByEntity = map[string]Severity{
	"MINSA": SeverityCritical,
	"DNFD":  SeverityCritical,
	"ANA":   SeverityWarning,
}

// SeverityFor derives the severity of an alert from its issuing entity.
func SeverityFor(entityCode string) Severity {
	if s, ok := SeverityByEntity[entityCode]; ok {
		return s
	}
	return SeverityInfo
}

// Engine evaluates every rule against an entry. Programs are compiled once and
// are safe for concurrent evaluation.
type Engine struct {
	rules []compiledRule
}

type compiledRule struct {
	rule    Rule
	program cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("code", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("description", cel.StringType),
		cel.Variable("duty", cel.DoubleType),
		cel.Variable("consumption", cel.DoubleType),
		cel.Variable("vat", cel.DoubleType),
	)
}

// NewEngine compiles rules in order. Any rule that does not compile to a
// boolean expression is an error.
func NewEngine(rules []Rule) (*Engine, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	e := &Engine{}
	for _, r := range rules {
		ast, issues := env.Compile(r.Expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.ID, issues.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("rule %s: expression must return bool, got %s", r.ID, ast.OutputType())
		}
		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("failed to create program for rule %s: %w", r.ID, err)
		}
		e.rules = append(e.rules, compiledRule{rule: r, program: program})
	}
	return e, nil
}

// NewDefaultEngine compiles DefaultRules.
func NewDefaultEngine() (*Engine, error) {
	return NewEngine(DefaultRules)
}

func (e *Engine) RulesCount() int {
	return len(e.rules)
}

// RequiredPermits returns the alerts of every rule matching entry, in table
// order. Alerts from different rules naming the same entity are kept.
func (e *Engine) RequiredPermits(entry tariff.Entry) []Alert {
	activation := map[string]any{
		"code":        entry.Code,
		"category":    entry.Category,
		"description": textnorm.Normalize(entry.Description),
		"duty":        entry.DutyPercent,
		"consumption": entry.ConsumptionTaxPercent,
		"vat":         entry.VatPercent,
	}

	alerts := make([]Alert, 0)
	for _, r := range e.rules {
		out, _, err := r.program.Eval(activation)
		if err != nil {
			log.Warnf("regulatory rule %s evaluation failed for %s: %v", r.rule.ID, entry.Code, err)
			continue
		}
		if out != types.True {
			continue
		}
		for _, tpl := range r.rule.Alerts {
			alerts = append(alerts, Alert{
				Entity:      tpl.Entity,
				EntityCode:  tpl.EntityCode,
				Requirement: tpl.Requirement,
				Severity:    SeverityFor(tpl.EntityCode),
				Description: tpl.Description,
			})
		}
	}
	return alerts
}
