package sts

import (
	"fmt"

	"github.com/intervention-engine/stsrisk/patient"
)

// Simplified valve-procedure models.  Unlike CABG, the valve procedures
// carry only a mortality model; morbidity is derived as a fixed multiple of
// mortality.  This mirrors the source calculator, which never grew full
// per-outcome valve models, and is reported as fidelity "simplified" so
// downstream consumers can see the gap.

var avrMortality = Model{
	Outcome:   "MORTALITY",
	Key:       "mortality",
	Baseline:  -6.1,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(65, 0.05),
		ageStepRule(80, 0.3),
		flagRule("Female", "Female gender", 0.2, (*patient.Record).IsFemale, gender),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.6, "%"),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 1.0, (*patient.Record).OnDialysis, nil),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.5, " mg/dL"),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.9, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Urgent Status", "Urgent priority", 0.35, (*patient.Record).IsUrgent, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Reoperation", "Prior cardiac surgery", 0.6, (*patient.Record).IsReoperation, nil),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", 0.4, (*patient.Record).HasChronicLungDisease, nil),
		flagRule("Endocarditis", "Active endocarditis", 0.8, (*patient.Record).HasEndocarditis, nil),
	},
}

var mvrMortality = Model{
	Outcome:   "MORTALITY",
	Key:       "mortality",
	Baseline:  -5.8,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(65, 0.05),
		flagRule("Female", "Female gender", 0.15, (*patient.Record).IsFemale, gender),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.7, "%"),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 1.1, (*patient.Record).OnDialysis, nil),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.5, " mg/dL"),
		flagRule("Emergent Status", "Emergent or salvage priority", 1.0, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Urgent Status", "Urgent priority", 0.4, (*patient.Record).IsUrgent, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Reoperation", "Prior cardiac surgery", 0.7, (*patient.Record).IsReoperation, nil),
		flagRule("Endocarditis", "Active endocarditis", 0.9, (*patient.Record).HasEndocarditis, nil),
	},
}

var mvRepairMortality = Model{
	Outcome:   "MORTALITY",
	Key:       "mortality",
	Baseline:  -6.4,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(65, 0.04),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.6, "%"),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 0.9, (*patient.Record).OnDialysis, nil),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.4, " mg/dL"),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.9, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Reoperation", "Prior cardiac surgery", 0.6, (*patient.Record).IsReoperation, nil),
		flagRule("Endocarditis", "Active endocarditis", 0.7, (*patient.Record).HasEndocarditis, nil),
	},
}

// derivedMorbidity computes the multiplier-derived morbidity result for the
// simplified valve models.  The full trace pipeline does not apply; the
// trace documents the derivation instead.
func derivedMorbidity(mortality OutcomeResult, multiplier float64) OutcomeResult {
	percent := roundTo(mortality.Percent*multiplier, 2)
	if percent > 100 {
		percent = 100
	}
	trace := Trace{}.AddFactor("Derived Morbidity", Term{
		Value:              mortality.Display,
		CoefficientDisplay: fmt.Sprintf("×%s", formatCoeff(multiplier)),
		Calculation:        fmt.Sprintf("%s × %s", formatCoeff(mortality.Percent), formatCoeff(multiplier)),
		Contribution:       percent,
	}, "Morbidity estimated as a fixed multiple of predicted mortality")
	trace = trace.AddFinal("MORBIDITY OR MORTALITY", percent, 2)
	return OutcomeResult{
		Outcome: "MORBIDITY OR MORTALITY",
		Status:  StatusComputed,
		Percent: percent,
		Display: FormatPercent(percent, 2),
		Trace:   trace,
	}
}
