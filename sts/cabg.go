package sts

import "github.com/intervention-engine/stsrisk/patient"

// Approximate isolated-CABG models, one per outcome.  These are NOT the
// proprietary STS coefficients; they are simplified values of similar
// magnitude, suitable for demonstrating the calculation, and every value
// lives in these tables rather than inline in scoring code.
//
// Each outcome owns its age thresholds: 60/75 for mortality, 70 for
// stroke, 65 for renal failure and ventilation, 75 for reoperation and
// long stay, and a bidirectional rule for short stay.

func gender(r *patient.Record) string { return r.Gender.String() }

var cabgMortality = Model{
	Outcome:   "MORTALITY",
	Key:       "mortality",
	Baseline:  -6.0,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(60, 0.05),
		ageStepRule(75, 0.3),
		flagRule("Female", "Female gender", 0.3, (*patient.Record).IsFemale, gender),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.8, "%"),
		efBandRule("Ejection Fraction 30-40%", "Moderately reduced LV function", 30, 40, 0.4),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 1.2, (*patient.Record).OnDialysis, func(r *patient.Record) string { return r.Dialysis.String() }),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.6, " mg/dL"),
		recentMIRule(0.7, 0.5),
		flagRule("Emergent Status", "Emergent or salvage priority", 1.0, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Urgent Status", "Urgent priority", 0.4, (*patient.Record).IsUrgent, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", 1.1, (*patient.Record).InCardiogenicShock, nil),
		flagRule("Diabetes", "Diabetes mellitus", 0.3, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", 0.4, (*patient.Record).HasChronicLungDisease, nil),
		flagRule("Reoperation", "Prior cardiac surgery", 0.7, (*patient.Record).IsReoperation, nil),
		flagRule("Peripheral Arterial Disease", "Peripheral arterial disease", 0.35, (*patient.Record).HasPeripheralArterialDisease, nil),
		flagRule("Cerebrovascular Disease", "Cerebrovascular disease", 0.3, (*patient.Record).HasCerebrovascularDisease, nil),
		flagRule("Immunocompromised", "Immunocompromised state", 0.3, (*patient.Record).IsImmunocompromised, nil),
	},
}

var cabgMorbidity = Model{
	Outcome:   "MORBIDITY OR MORTALITY",
	Key:       "morbidityMortality",
	Baseline:  -2.2,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(65, 0.03),
		flagRule("Female", "Female gender", 0.2, (*patient.Record).IsFemale, gender),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.6, "%"),
		efBandRule("Ejection Fraction 30-40%", "Moderately reduced LV function", 30, 40, 0.3),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 0.8, (*patient.Record).OnDialysis, nil),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.5, " mg/dL"),
		recentMIRule(0.4, 0.3),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.8, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Urgent Status", "Urgent priority", 0.3, (*patient.Record).IsUrgent, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", 0.9, (*patient.Record).InCardiogenicShock, nil),
		flagRule("Diabetes", "Diabetes mellitus", 0.35, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", 0.5, (*patient.Record).HasChronicLungDisease, nil),
		flagRule("Reoperation", "Prior cardiac surgery", 0.5, (*patient.Record).IsReoperation, nil),
		flagRule("Peripheral Arterial Disease", "Peripheral arterial disease", 0.3, (*patient.Record).HasPeripheralArterialDisease, nil),
		flagRule("Cerebrovascular Disease", "Cerebrovascular disease", 0.25, (*patient.Record).HasCerebrovascularDisease, nil),
	},
}

var cabgStroke = Model{
	Outcome:   "STROKE",
	Key:       "stroke",
	Baseline:  -5.5,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(70, 0.06),
		flagRule("Female", "Female gender", 0.2, (*patient.Record).IsFemale, gender),
		flagRule("Cerebrovascular Disease", "Prior stroke or carotid disease", 0.9, (*patient.Record).HasCerebrovascularDisease, nil),
		flagRule("Hypertension", "Hypertension", 0.4, (*patient.Record).HasHypertension, nil),
		flagRule("Diabetes", "Diabetes mellitus", 0.35, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.3, "%"),
		flagRule("Arrhythmia", "Pre-operative arrhythmia", 0.4, func(r *patient.Record) bool { return r.Arrhythmia.Bool() }, func(r *patient.Record) string { return r.Arrhythmia.String() }),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.5, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Reoperation", "Prior cardiac surgery", 0.3, (*patient.Record).IsReoperation, nil),
	},
}

var cabgRenalFailure = Model{
	Outcome:   "RENAL FAILURE",
	Key:       "renalFailure",
	Baseline:  -5.0,
	Precision: 2,
	NotApplicable: func(r *patient.Record) (string, bool) {
		if r.OnDialysis() {
			return "Patient is already dialysis-dependent; post-operative renal failure risk is not applicable", true
		}
		return "", false
	},
	Rules: []Rule{
		ageSlopeRule(65, 0.05),
		thresholdRule("Creatinine > 1.5", "Pre-operative renal dysfunction", (*patient.Record).CreatinineLevel, ">", 1.5, 0.9, " mg/dL"),
		flagRule("Diabetes", "Diabetes mellitus", 0.5, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		flagRule("Hypertension", "Hypertension", 0.3, (*patient.Record).HasHypertension, nil),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.4, "%"),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.6, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", 0.7, (*patient.Record).InCardiogenicShock, nil),
		flagRule("Reoperation", "Prior cardiac surgery", 0.4, (*patient.Record).IsReoperation, nil),
	},
}

var cabgReoperation = Model{
	Outcome:   "REOPERATION",
	Key:       "reoperation",
	Baseline:  -4.0,
	Precision: 2,
	Rules: []Rule{
		ageStepRule(75, 0.3),
		flagRule("Reoperation", "Prior cardiac surgery", 0.5, (*patient.Record).IsReoperation, nil),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.6, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", 0.5, (*patient.Record).InCardiogenicShock, nil),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.4, " mg/dL"),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.3, "%"),
		thresholdRule("Platelets < 100", "Thrombocytopenia", (*patient.Record).PlateletCount, "<", 100, 0.6, " x10³/µL"),
	},
}

var cabgProlongedVentilation = Model{
	Outcome:   "PROLONGED VENTILATION",
	Key:       "prolongedVentilation",
	Baseline:  -3.2,
	Precision: 2,
	Rules: []Rule{
		ageSlopeRule(65, 0.04),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", 0.7, (*patient.Record).HasChronicLungDisease, nil),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.5, "%"),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", 1.0, (*patient.Record).InCardiogenicShock, nil),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.8, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Urgent Status", "Urgent priority", 0.3, (*patient.Record).IsUrgent, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 0.6, (*patient.Record).OnDialysis, nil),
		flagRule("Reoperation", "Prior cardiac surgery", 0.4, (*patient.Record).IsReoperation, nil),
		recentMIRule(0.3, 0.3),
		thresholdRule("WBC > 12", "Leukocytosis", (*patient.Record).WBCCount, ">", 12, 0.3, " x10³/µL"),
	},
}

var cabgDeepSternalWoundInfection = Model{
	Outcome:   "DEEP STERNAL WOUND INFECTION",
	Key:       "deepSternalWoundInfection",
	Baseline:  -6.5,
	Precision: 3,
	Rules: []Rule{
		flagRule("Diabetes", "Diabetes mellitus", 0.8, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		thresholdRule("BMI > 35", "Severe obesity", (*patient.Record).BodyMassIndex, ">", 35, 0.7, ""),
		flagRule("Immunocompromised", "Immunocompromised state", 0.6, (*patient.Record).IsImmunocompromised, nil),
		flagRule("Reoperation", "Prior cardiac surgery", 0.4, (*patient.Record).IsReoperation, nil),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", 0.3, (*patient.Record).HasChronicLungDisease, nil),
		flagRule("Female", "Female gender", 0.2, (*patient.Record).IsFemale, gender),
	},
}

var cabgLongStay = Model{
	Outcome:   "LONG HOSPITAL STAY",
	Key:       "longStay",
	Baseline:  -3.5,
	Precision: 2,
	Rules: []Rule{
		ageStepRule(75, 0.4),
		flagRule("Dialysis", "Dialysis-dependent renal failure", 0.8, (*patient.Record).OnDialysis, nil),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", 0.9, (*patient.Record).InCardiogenicShock, nil),
		flagRule("Emergent Status", "Emergent or salvage priority", 0.7, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, 0.5, "%"),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", 0.4, (*patient.Record).HasChronicLungDisease, nil),
		flagRule("Diabetes", "Diabetes mellitus", 0.3, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, 0.5, " mg/dL"),
		thresholdRule("Hematocrit < 30%", "Pre-operative anemia", (*patient.Record).HematocritLevel, "<", 30, 0.4, "%"),
	},
}

// cabgShortStay is the one positive outcome: a higher probability is
// better.  Risk factors therefore carry negative coefficients here, and
// young age is the single additive factor.
var cabgShortStay = Model{
	Outcome:   "SHORT HOSPITAL STAY",
	Key:       "shortStay",
	Baseline:  0.4,
	Precision: 1,
	Rules: []Rule{
		youngAgeRule(60, 0.4),
		ageStepRule(75, -0.5),
		flagRule("Emergent Status", "Emergent or salvage priority", -0.8, (*patient.Record).IsEmergency, func(r *patient.Record) string { return r.Priority.String() }),
		flagRule("Urgent Status", "Urgent priority", -0.3, (*patient.Record).IsUrgent, func(r *patient.Record) string { return r.Priority.String() }),
		thresholdRule("Ejection Fraction < 30%", "Severely reduced LV function", (*patient.Record).EF, "<", 30, -0.6, "%"),
		flagRule("Dialysis", "Dialysis-dependent renal failure", -0.9, (*patient.Record).OnDialysis, nil),
		flagRule("Cardiogenic Shock", "Cardiogenic shock at presentation", -1.2, (*patient.Record).InCardiogenicShock, nil),
		flagRule("Chronic Lung Disease", "COPD or chronic lung disease", -0.4, (*patient.Record).HasChronicLungDisease, nil),
		flagRule("Reoperation", "Prior cardiac surgery", -0.3, (*patient.Record).IsReoperation, nil),
		flagRule("Diabetes", "Diabetes mellitus", -0.2, (*patient.Record).HasDiabetes, func(r *patient.Record) string { return r.Diabetes.String() }),
		thresholdRule("Creatinine > 2.0", "Renal dysfunction", (*patient.Record).CreatinineLevel, ">", 2.0, -0.4, " mg/dL"),
	},
}

// CABGModels lists the nine isolated-CABG outcome models in reporting
// order.
var CABGModels = []Model{
	cabgMortality,
	cabgMorbidity,
	cabgStroke,
	cabgRenalFailure,
	cabgReoperation,
	cabgProlongedVentilation,
	cabgDeepSternalWoundInfection,
	cabgLongStay,
	cabgShortStay,
}

// efBandRule fires when the ejection fraction lies in [low, high).
func efBandRule(name, description string, low, high, coefficient float64) Rule {
	return Rule{
		Name:        name,
		Description: description,
		Evaluate: func(r *patient.Record) (Term, bool) {
			ef, ok := r.EF()
			if !ok || ef < low || ef >= high {
				return Term{}, false
			}
			return Term{
				Value:        FormatPercent(ef, 0),
				Coefficient:  coefficient,
				Contribution: coefficient,
			}, true
		},
	}
}
