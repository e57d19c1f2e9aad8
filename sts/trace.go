package sts

import (
	"fmt"
	"strconv"
)

// Contribution kinds.  Factor and baseline rows carry logit contributions
// that must reconcile against the total row; summary rows restate derived
// values for display and are excluded from reconciliation.
const (
	KindBaseline = "baseline"
	KindFactor   = "factor"
	KindSummary  = "summary"
	KindNote     = "note"
)

// Contribution is one row of a calculation trace: a risk factor that fired,
// the patient value that triggered it, the coefficient applied, and the
// resulting logit contribution.  Rows are immutable once appended and their
// order is the order the rules were evaluated in.
type Contribution struct {
	Kind        string  `json:"kind" bson:"kind"`
	Factor      string  `json:"factor" bson:"factor"`
	Value       string  `json:"value" bson:"value"`
	Coefficient string  `json:"coefficient" bson:"coefficient"`
	Calculation string  `json:"calculation,omitempty" bson:"calculation,omitempty"`
	Amount      float64 `json:"contribution" bson:"contribution"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

// Trace is the ordered audit trail of one outcome calculation.
type Trace []Contribution

// AddBaseline appends the baseline-intercept row that starts every trace.
func (t Trace) AddBaseline(baseline float64) Trace {
	return append(t, Contribution{
		Kind:        KindBaseline,
		Factor:      "Baseline",
		Value:       "-",
		Coefficient: formatCoeff(baseline),
		Amount:      baseline,
		Description: "Baseline intercept (patient with no modeled risk factors)",
	})
}

// AddFactor appends a fired risk-factor row.
func (t Trace) AddFactor(name string, term Term, description string) Trace {
	coeff := term.CoefficientDisplay
	if coeff == "" {
		coeff = formatCoeff(term.Coefficient)
	}
	return append(t, Contribution{
		Kind:        KindFactor,
		Factor:      name,
		Value:       term.Value,
		Coefficient: coeff,
		Calculation: term.Calculation,
		Amount:      term.Contribution,
		Description: description,
	})
}

// AddTotal appends the TOTAL LOGIT row.  Its amount must equal the sum of
// all preceding baseline and factor rows.
func (t Trace) AddTotal(logit float64) Trace {
	return append(t, Contribution{
		Kind:        KindSummary,
		Factor:      "TOTAL LOGIT",
		Value:       "-",
		Coefficient: "-",
		Amount:      logit,
		Description: "Sum of baseline and all applied risk factors",
	})
}

// AddTransform appends the logistic-transformation row showing how the
// logit becomes a probability.
func (t Trace) AddTransform(logit, probability float64) Trace {
	return append(t, Contribution{
		Kind:        KindSummary,
		Factor:      "LOGISTIC TRANSFORMATION",
		Value:       strconv.FormatFloat(probability, 'f', 6, 64),
		Coefficient: "-",
		Calculation: fmt.Sprintf("1 / (1 + e^(%s))", strconv.FormatFloat(-logit, 'f', 6, 64)),
		Amount:      probability,
		Description: "Probability from logistic function",
	})
}

// AddFinal appends the FINAL <OUTCOME> RISK row with the percentage at the
// outcome's display precision.
func (t Trace) AddFinal(outcome string, percent float64, precision int) Trace {
	display := FormatPercent(percent, precision)
	return append(t, Contribution{
		Kind:        KindSummary,
		Factor:      fmt.Sprintf("FINAL %s RISK", outcome),
		Value:       display,
		Coefficient: "-",
		Amount:      percent,
		Description: fmt.Sprintf("Predicted probability of %s", outcome),
	})
}

// AddNote appends an explanatory row, used for not-applicable outcomes and
// derived results.
func (t Trace) AddNote(factor, value, description string) Trace {
	return append(t, Contribution{
		Kind:        KindNote,
		Factor:      factor,
		Value:       value,
		Coefficient: "-",
		Description: description,
	})
}

// FactorSum adds up the baseline and factor rows.  The reconciliation
// property requires this to equal the TOTAL LOGIT row's amount.
func (t Trace) FactorSum() float64 {
	var sum float64
	for _, row := range t {
		if row.Kind == KindBaseline || row.Kind == KindFactor {
			sum += row.Amount
		}
	}
	return sum
}

// FormatPercent renders a probability percentage at the given precision,
// e.g. FormatPercent(16.114, 2) == "16.11%".
func FormatPercent(percent float64, precision int) string {
	return strconv.FormatFloat(percent, 'f', precision, 64) + "%"
}

func formatCoeff(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
