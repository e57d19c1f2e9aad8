package sts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/intervention-engine/stsrisk/patient"
)

// Outcome applicability states.
const (
	StatusComputed      = "computed"
	StatusNotApplicable = "not-applicable"
)

// OutcomeResult is the computed risk for a single outcome, with the full
// calculation trace.  Percent is rounded to the outcome's precision; it is
// zero and Display is empty when the outcome is not applicable.
type OutcomeResult struct {
	Outcome string  `json:"outcome" bson:"outcome"`
	Status  string  `json:"status" bson:"status"`
	Percent float64 `json:"probabilityPercent,omitempty" bson:"probabilityPercent,omitempty"`
	Display string  `json:"display,omitempty" bson:"display,omitempty"`
	Trace   Trace   `json:"trace" bson:"trace"`
}

// Term is the evaluated result of a rule that fired: the displayed patient
// value, the coefficient (with an optional display override for derived
// coefficients), an optional arithmetic expression, and the logit
// contribution to add.
type Term struct {
	Value              string
	Coefficient        float64
	CoefficientDisplay string
	Calculation        string
	Contribution       float64
}

// Rule is one conditional risk factor in a model.  Evaluate returns the
// term to apply and whether the rule fired for this record.  Rules are
// evaluated in table order and the order is preserved in the trace.
type Rule struct {
	Name        string
	Description string
	Evaluate    func(r *patient.Record) (Term, bool)
}

// Model is the declarative definition of one outcome for one procedure
// type: a baseline intercept plus an ordered rule table.  All models are
// scored by the same interpreter, so outcomes differ only in data.
type Model struct {
	Outcome   string // display name, e.g. "MORTALITY"
	Key       string // map key, e.g. "mortality"
	Baseline  float64
	Precision int // decimal places of the reported percentage
	Rules     []Rule

	// NotApplicable, when set, short-circuits scoring.  It returns the
	// explanation to record when the outcome cannot be meaningfully
	// computed for this patient.
	NotApplicable func(r *patient.Record) (string, bool)
}

// Score runs the model against a record: baseline, ordered rules, total,
// logistic transform, final percentage.  It never fails; rules that cannot
// evaluate simply do not fire.
func (m Model) Score(r *patient.Record) OutcomeResult {
	if m.NotApplicable != nil {
		if reason, na := m.NotApplicable(r); na {
			trace := Trace{}.AddNote("NOT APPLICABLE", "-", reason)
			return OutcomeResult{Outcome: m.Outcome, Status: StatusNotApplicable, Trace: trace}
		}
	}

	logit := m.Baseline
	trace := Trace{}.AddBaseline(m.Baseline)
	for _, rule := range m.Rules {
		term, fired := rule.Evaluate(r)
		if !fired {
			continue
		}
		logit += term.Contribution
		trace = trace.AddFactor(rule.Name, term, rule.Description)
	}

	probability := logistic(logit)
	percent := roundTo(probability*100, m.Precision)
	trace = trace.AddTotal(logit)
	trace = trace.AddTransform(logit, probability)
	trace = trace.AddFinal(m.Outcome, percent, m.Precision)

	return OutcomeResult{
		Outcome: m.Outcome,
		Status:  StatusComputed,
		Percent: percent,
		Display: FormatPercent(percent, m.Precision),
		Trace:   trace,
	}
}

func logistic(logit float64) float64 {
	return 1 / (1 + math.Exp(-logit))
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// flagRule builds a rule that adds a fixed coefficient when a boolean
// predicate holds.  The displayed value comes from the record field's raw
// answer so the trace shows what the patient actually reported.
func flagRule(name, description string, coefficient float64, pred func(*patient.Record) bool, value func(*patient.Record) string) Rule {
	return Rule{
		Name:        name,
		Description: description,
		Evaluate: func(r *patient.Record) (Term, bool) {
			if !pred(r) {
				return Term{}, false
			}
			v := "Yes"
			if value != nil {
				v = value(r)
			}
			return Term{Value: v, Coefficient: coefficient, Contribution: coefficient}, true
		},
	}
}

// ageSlopeRule builds the piecewise-linear age rule: no contribution at or
// below the threshold, (age - threshold) x slope above it.
func ageSlopeRule(threshold float64, slope float64) Rule {
	return Rule{
		Name:        fmt.Sprintf("Age > %.0f", threshold),
		Description: fmt.Sprintf("%s per year over %.0f", formatCoeff(slope), threshold),
		Evaluate: func(r *patient.Record) (Term, bool) {
			age, ok := r.AgeYears()
			if !ok || age <= threshold {
				return Term{}, false
			}
			contribution := (age - threshold) * slope
			return Term{
				Value:              fmt.Sprintf("%s years", formatCoeff(age)),
				Coefficient:        slope,
				CoefficientDisplay: formatCoeff(slope) + "/yr",
				Calculation:        fmt.Sprintf("(%s - %.0f) × %s", formatCoeff(age), threshold, formatCoeff(slope)),
				Contribution:       contribution,
			}, true
		},
	}
}

// ageStepRule builds the fixed step penalty applied once the patient
// reaches the threshold age.
func ageStepRule(threshold float64, coefficient float64) Rule {
	return Rule{
		Name:        fmt.Sprintf("Age ≥ %.0f", threshold),
		Description: fmt.Sprintf("Additional fixed penalty at %.0f and above", threshold),
		Evaluate: func(r *patient.Record) (Term, bool) {
			age, ok := r.AgeYears()
			if !ok || age < threshold {
				return Term{}, false
			}
			return Term{
				Value:        fmt.Sprintf("%s years", formatCoeff(age)),
				Coefficient:  coefficient,
				Contribution: coefficient,
			}, true
		},
	}
}

// youngAgeRule builds the short-stay bonus for patients under the
// threshold.  This is the one age rule with a positive sign in a
// positive-outcome model.
func youngAgeRule(threshold float64, coefficient float64) Rule {
	return Rule{
		Name:        fmt.Sprintf("Age < %.0f", threshold),
		Description: fmt.Sprintf("Favorable factor for patients under %.0f", threshold),
		Evaluate: func(r *patient.Record) (Term, bool) {
			age, ok := r.AgeYears()
			if !ok || age >= threshold {
				return Term{}, false
			}
			return Term{
				Value:        fmt.Sprintf("%s years", formatCoeff(age)),
				Coefficient:  coefficient,
				Contribution: coefficient,
			}, true
		},
	}
}

// recentMIRule builds the tiered myocardial-infarction timing rule: one
// coefficient for an immediate MI (within six hours), a lower one for any
// other MI within 21 days.
func recentMIRule(immediateCoeff, recentCoeff float64) Rule {
	return Rule{
		Name:        "Recent MI",
		Description: "Myocardial infarction within 21 days",
		Evaluate: func(r *patient.Record) (Term, bool) {
			recent, immediate := r.RecentMI()
			if !recent {
				return Term{}, false
			}
			coeff := recentCoeff
			if immediate {
				coeff = immediateCoeff
			}
			return Term{
				Value:        r.MITiming.String(),
				Coefficient:  coeff,
				Contribution: coeff,
			}, true
		},
	}
}

// thresholdRule builds a rule that fires when a numeric accessor crosses a
// threshold in the given direction ("<" or ">").
func thresholdRule(name, description string, accessor func(*patient.Record) (float64, bool), op string, threshold, coefficient float64, unit string) Rule {
	return Rule{
		Name:        name,
		Description: description,
		Evaluate: func(r *patient.Record) (Term, bool) {
			v, ok := accessor(r)
			if !ok {
				return Term{}, false
			}
			switch op {
			case "<":
				ok = v < threshold
			case ">":
				ok = v > threshold
			default:
				ok = false
			}
			if !ok {
				return Term{}, false
			}
			return Term{
				Value:        strconv.FormatFloat(v, 'f', -1, 64) + unit,
				Coefficient:  coefficient,
				Contribution: coefficient,
			}, true
		},
	}
}
