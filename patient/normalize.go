package patient

import "strings"

// This file centralizes the normalized predicates the scoring rules are
// written against.  Each clinical fact has exactly one predicate, so every
// outcome model sees the same interpretation of the record.

// AgeYears returns the patient's age.  Ages outside a plausible range are
// dropped as if missing rather than clamped.
func (r *Record) AgeYears() (float64, bool) {
	if !r.Age.Valid || r.Age.Value < 0 || r.Age.Value > 120 {
		return 0, false
	}
	return r.Age.Value, true
}

// IsFemale reports whether the record identifies the patient as female.
func (r *Record) IsFemale() bool {
	return strings.EqualFold(strings.TrimSpace(string(r.Gender)), "female")
}

// HasDiabetes is true for any diabetes answer other than the "No" sentinel,
// regardless of treatment ("Yes, Insulin", "Yes, Oral", ...).
func (r *Record) HasDiabetes() bool {
	return r.Diabetes.Bool()
}

// OnDialysis reports dialysis dependence.
func (r *Record) OnDialysis() bool {
	return r.Dialysis.Bool()
}

// IsReoperation is the union of every way a prior cardiac operation shows up
// in the record: the explicit flag, the prior-surgery flag, either specific
// prior procedure, or a surgeryIncidence value mentioning "reop".  All
// branches are checked so a record that contradicts itself still counts.
func (r *Record) IsReoperation() bool {
	reop := r.Reoperation.Bool() ||
		r.PriorCardiacSurgery.Bool() ||
		r.PreviousCABG.Bool() ||
		r.PreviousValve.Bool()
	if strings.Contains(strings.ToLower(string(r.SurgeryIncidence)), "reop") {
		reop = true
	}
	return reop
}

// IsEmergency matches "Emergent", "Emergency", and compounds such as
// "Emergent Salvage".
func (r *Record) IsEmergency() bool {
	p := strings.ToLower(string(r.Priority))
	return strings.Contains(p, "emergent") || strings.Contains(p, "emergency")
}

// IsUrgent is the lower-weight priority tier.  It is mutually exclusive
// with emergency: an emergent case never also scores as urgent.
func (r *Record) IsUrgent() bool {
	if r.IsEmergency() {
		return false
	}
	return strings.Contains(strings.ToLower(string(r.Priority)), "urgent")
}

// miTimings maps the recognized MI timing values (lowercased, with spaces
// removed) to whether the infarct counts as immediate (within six hours).
// "> 21 Days" is deliberately absent: an MI older than three weeks carries
// no recent-MI penalty.
var miTimings = map[string]bool{
	"≤6hrs":          true,
	"<=6hrs":         true,
	"6hrsorless":     true,
	"6hrsto24hrs":    false,
	">6hrsbut<24hrs": false,
	"1to7days":       false,
	"8to21days":      false,
	"within21days":   false,
}

// RecentMI reports whether the record indicates an MI within 21 days, and
// whether it was immediate (within 6 hours).  Unrecognized timing values do
// not fire the rule.
func (r *Record) RecentMI() (recent, immediate bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(r.MITiming))), " ", "")
	if key == "" || strings.Contains(key, ">21") {
		return false, false
	}
	immediate, recent = miTimings[key]
	return recent, immediate
}

// HasChronicLungDisease is true if either the COPD flag is set or the
// severity enum carries any value other than the "No" sentinel.
func (r *Record) HasChronicLungDisease() bool {
	return r.COPD.Bool() || r.ChronicLungDisease.Bool()
}

// HasHypertension reports a hypertension diagnosis.
func (r *Record) HasHypertension() bool {
	return r.Hypertension.Bool()
}

// HasCerebrovascularDisease reports cerebrovascular disease.
func (r *Record) HasCerebrovascularDisease() bool {
	return r.CerebrovascularDisease.Bool()
}

// HasPeripheralArterialDisease reports peripheral arterial disease.
func (r *Record) HasPeripheralArterialDisease() bool {
	return r.PeripheralArterialDisease.Bool()
}

// IsImmunocompromised reports immunocompromise.
func (r *Record) IsImmunocompromised() bool {
	return r.Immunocompromised.Bool()
}

// InCardiogenicShock reports cardiogenic shock.
func (r *Record) InCardiogenicShock() bool {
	return r.CardiogenicShock.Bool()
}

// HasEndocarditis reports endocarditis.
func (r *Record) HasEndocarditis() bool {
	return r.Endocarditis.Bool()
}

// EF returns the ejection fraction if present.
func (r *Record) EF() (float64, bool) {
	if !r.EjectionFraction.Valid || r.EjectionFraction.Value <= 0 {
		return 0, false
	}
	return r.EjectionFraction.Value, true
}

// CreatinineLevel returns the serum creatinine if present.
func (r *Record) CreatinineLevel() (float64, bool) {
	if !r.Creatinine.Valid || r.Creatinine.Value <= 0 {
		return 0, false
	}
	return r.Creatinine.Value, true
}

// HematocritLevel returns the hematocrit if present.
func (r *Record) HematocritLevel() (float64, bool) {
	if !r.Hematocrit.Valid || r.Hematocrit.Value <= 0 {
		return 0, false
	}
	return r.Hematocrit.Value, true
}

// WBCCount returns the white blood cell count if present.
func (r *Record) WBCCount() (float64, bool) {
	if !r.WBC.Valid || r.WBC.Value <= 0 {
		return 0, false
	}
	return r.WBC.Value, true
}

// PlateletCount returns the platelet count if present.
func (r *Record) PlateletCount() (float64, bool) {
	if !r.Platelets.Valid || r.Platelets.Value <= 0 {
		return 0, false
	}
	return r.Platelets.Value, true
}

// BodyMassIndex returns the BMI, deriving it from height and weight when the
// bmi field itself is absent.
func (r *Record) BodyMassIndex() (float64, bool) {
	if r.BMI.Valid && r.BMI.Value > 0 {
		return r.BMI.Value, true
	}
	if r.Height.Valid && r.Weight.Valid && r.Height.Value > 0 && r.Weight.Value > 0 {
		m := r.Height.Value / 100.0
		return r.Weight.Value / (m * m), true
	}
	return 0, false
}

// ProcedureKey returns the lowercased, trimmed procedure type used for
// alias matching.
func (r *Record) ProcedureKey() string {
	return strings.ToLower(strings.TrimSpace(string(r.ProcedureType)))
}
