package patient

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Answer holds the raw response for a clinical yes/no or enum field.  The
// extraction layer is not consistent about types -- the same fact may arrive
// as a JSON boolean, a string ("Yes", "Yes, Insulin", "Severe"), or even a
// number -- so Answer accepts all of them and normalizes on access.  The
// important wrinkle is that "No" and "None" are non-empty strings that must
// read as false.
type Answer string

// UnmarshalJSON accepts booleans, strings, and numbers.  Anything else
// (including null) is treated as an absent answer rather than an error.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		*a = ""
		return nil
	}
	switch v := v.(type) {
	case string:
		*a = Answer(v)
	case bool:
		if v {
			*a = "Yes"
		} else {
			*a = "No"
		}
	case float64:
		*a = Answer(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		*a = ""
	}
	return nil
}

// Present reports whether any answer was given at all.
func (a Answer) Present() bool {
	return strings.TrimSpace(string(a)) != ""
}

// Bool normalizes the answer to a boolean.  Sentinel strings meaning "no"
// are false even though they are truthy as raw strings.
func (a Answer) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(string(a))) {
	case "", "no", "none", "false", "n", "0":
		return false
	}
	return true
}

// String returns the raw answer text, or "-" if none was given.  Used for
// the patient-value column of calculation traces.
func (a Answer) String() string {
	if !a.Present() {
		return "-"
	}
	return strings.TrimSpace(string(a))
}

// Number holds an optional numeric field.  Values may arrive as JSON numbers
// or as numeric strings; malformed values are absorbed as missing so that a
// bad lab value never aborts an assessment -- rules that compare against it
// simply do not fire.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts numbers and numeric strings.  Malformed input leaves
// the Number unset and returns no error.
func (n *Number) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch v := v.(type) {
	case float64:
		n.Value, n.Valid = v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			n.Value, n.Valid = f, true
		}
	}
	return nil
}

// MarshalJSON renders the value, or null when unset.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Num is a convenience constructor for tests and callers building records
// in code.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Record is the structured patient record handed over by the extraction
// layer.  Every field is optional; missing or malformed fields must degrade
// the assessment (see the heuristic fallback) rather than fail it.
type Record struct {
	// Demographics
	Age    Number `json:"age"`
	Gender Answer `json:"gender"`
	Height Number `json:"height"` // cm
	Weight Number `json:"weight"` // kg
	BMI    Number `json:"bmi"`
	Race   Answer `json:"race"`
	Payor  Answer `json:"payor"`

	// Procedure
	ProcedureType    Answer `json:"procedureType"`
	SurgeryIncidence Answer `json:"surgeryIncidence"`
	Priority         Answer `json:"priority"`

	// Labs
	Creatinine Number `json:"creatinine"`
	Hematocrit Number `json:"hematocrit"`
	WBC        Number `json:"wbc"`
	Platelets  Number `json:"platelets"`

	// Comorbidities
	Diabetes          Answer `json:"diabetes"`
	Hypertension      Answer `json:"hypertension"`
	LiverDisease      Answer `json:"liverDisease"`
	Dialysis          Answer `json:"dialysis"`
	Cancer            Answer `json:"cancer"`
	Immunocompromised Answer `json:"immunocompromised"`

	// Pulmonary / vascular
	ChronicLungDisease        Answer `json:"chronicLungDisease"`
	COPD                      Answer `json:"copd"`
	PeripheralArterialDisease Answer `json:"peripheralArterialDisease"`
	CerebrovascularDisease    Answer `json:"cerebrovascularDisease"`

	// Cardiac
	EjectionFraction Number `json:"ejectionFraction"`
	MITiming         Answer `json:"miTiming"`
	CardiogenicShock Answer `json:"cardiogenicShock"`
	Arrhythmia       Answer `json:"arrhythmia"`
	Endocarditis     Answer `json:"endocarditis"`

	// Prior interventions
	Reoperation         Answer `json:"reoperation"`
	PriorCardiacSurgery Answer `json:"priorCardiacSurgery"`
	PreviousCABG        Answer `json:"previousCABG"`
	PreviousValve       Answer `json:"previousValve"`
	PreviousPCI         Answer `json:"previousPCI"`
}

// MissingRequired returns the required fields (age, gender, procedureType)
// that are absent from the record, in a fixed order.
func (r *Record) MissingRequired() []string {
	var missing []string
	if _, ok := r.AgeYears(); !ok {
		missing = append(missing, "age")
	}
	if !r.Gender.Present() {
		missing = append(missing, "gender")
	}
	if !r.ProcedureType.Present() {
		missing = append(missing, "procedureType")
	}
	return missing
}
