package sts

import (
	"fmt"

	"github.com/intervention-engine/stsrisk/patient"
)

// The heuristic fallback is a coarse point count used when the record is
// too incomplete for a regression model, or when the procedure type is
// unrecognized.  It is UNPROVEN and deliberately conservative; the result
// always carries reduced confidence.

// heuristicFactor is one countable risk factor in the fallback table.
type heuristicFactor struct {
	name   string
	points int
	fires  func(r *patient.Record) bool
	value  func(r *patient.Record) string
}

var heuristicFactors = []heuristicFactor{
	{
		name: "Age > 75", points: 2,
		fires: func(r *patient.Record) bool { age, ok := r.AgeYears(); return ok && age > 75 },
		value: func(r *patient.Record) string { age, _ := r.AgeYears(); return fmt.Sprintf("%.0f years", age) },
	},
	{
		name: "Age 65-75", points: 1,
		fires: func(r *patient.Record) bool { age, ok := r.AgeYears(); return ok && age >= 65 && age <= 75 },
		value: func(r *patient.Record) string { age, _ := r.AgeYears(); return fmt.Sprintf("%.0f years", age) },
	},
	{
		name: "Ejection Fraction < 30%", points: 3,
		fires: func(r *patient.Record) bool { ef, ok := r.EF(); return ok && ef < 30 },
		value: func(r *patient.Record) string { ef, _ := r.EF(); return FormatPercent(ef, 0) },
	},
	{
		name: "Dialysis", points: 3,
		fires: (*patient.Record).OnDialysis,
		value: func(r *patient.Record) string { return r.Dialysis.String() },
	},
	{
		name: "Emergency", points: 3,
		fires: (*patient.Record).IsEmergency,
		value: func(r *patient.Record) string { return r.Priority.String() },
	},
	{
		name: "Cardiogenic Shock", points: 4,
		fires: (*patient.Record).InCardiogenicShock,
		value: func(r *patient.Record) string { return r.CardiogenicShock.String() },
	},
	{
		name: "Reoperation", points: 2,
		fires: (*patient.Record).IsReoperation,
		value: func(r *patient.Record) string { return "Yes" },
	},
}

// heuristicMortality maps the accumulated point total to a mortality
// estimate via fixed breakpoints.
func heuristicMortality(points int) float64 {
	switch {
	case points <= 2:
		return 1.5
	case points <= 4:
		return 3.0
	case points <= 6:
		return 5.5
	case points <= 8:
		return 8.0
	default:
		return 12.0
	}
}

const heuristicMorbidityMultiplier = 3.5

// heuristicAssessment builds the fallback assessment.  The caller sets the
// confidence level and missing-field list according to why the fallback
// was taken.
func heuristicAssessment(r *patient.Record) *Assessment {
	points := 0
	trace := Trace{}
	for _, f := range heuristicFactors {
		if !f.fires(r) {
			continue
		}
		points += f.points
		trace = trace.AddFactor(f.name, Term{
			Value:              f.value(r),
			Coefficient:        float64(f.points),
			CoefficientDisplay: fmt.Sprintf("+%d", f.points),
			Contribution:       float64(f.points),
		}, "Heuristic risk factor")
	}

	mortality := heuristicMortality(points)
	morbidity := roundTo(mortality*heuristicMorbidityMultiplier, 2)

	mortalityTrace := append(trace, Contribution{
		Kind:        KindSummary,
		Factor:      "TOTAL RISK POINTS",
		Value:       fmt.Sprintf("%d points", points),
		Coefficient: "-",
		Amount:      float64(points),
		Description: "Point total mapped to a mortality estimate via fixed breakpoints",
	})
	mortalityTrace = mortalityTrace.AddFinal("MORTALITY", mortality, 2)

	morbidityTrace := Trace{}.AddFactor("Derived Morbidity", Term{
		Value:              FormatPercent(mortality, 2),
		CoefficientDisplay: fmt.Sprintf("×%s", formatCoeff(heuristicMorbidityMultiplier)),
		Calculation:        fmt.Sprintf("%s × %s", formatCoeff(mortality), formatCoeff(heuristicMorbidityMultiplier)),
		Contribution:       morbidity,
	}, "Morbidity estimated as a fixed multiple of estimated mortality")
	morbidityTrace = morbidityTrace.AddFinal("MORBIDITY OR MORTALITY", morbidity, 2)

	outcomes := map[string]OutcomeResult{
		"mortality": {
			Outcome: "MORTALITY",
			Status:  StatusComputed,
			Percent: mortality,
			Display: FormatPercent(mortality, 2),
			Trace:   mortalityTrace,
		},
		"morbidityMortality": {
			Outcome: "MORBIDITY OR MORTALITY",
			Status:  StatusComputed,
			Percent: morbidity,
			Display: FormatPercent(morbidity, 2),
			Trace:   morbidityTrace,
		},
	}

	return &Assessment{
		Method:       "mathematical",
		Procedure:    "unknown",
		Fidelity:     FidelityHeuristic,
		Outcomes:     outcomes,
		RiskCategory: Categorize(mortality),
	}
}
