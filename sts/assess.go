package sts

import (
	"sort"

	"github.com/intervention-engine/stsrisk/patient"
)

// Confidence levels for an assessment.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Risk categories derived from predicted mortality.
const (
	CategoryLow      = "Low"
	CategoryModerate = "Moderate"
	CategoryHigh     = "High"
)

// Model fidelity markers.  CABG carries full per-outcome models; the valve
// procedures carry a mortality model plus multiplier-derived morbidity; the
// heuristic path has no regression model at all.
const (
	FidelityDetailed   = "detailed"
	FidelitySimplified = "simplified"
	FidelityHeuristic  = "heuristic"
)

// Assessment is the aggregate result for one patient record.  It is built
// fresh per request, holds no references back into the record, and is fully
// JSON-serializable so downstream renderers can address individual trace
// entries by outcome key.
type Assessment struct {
	Method        string                   `json:"method" bson:"method"`
	Procedure     string                   `json:"procedure" bson:"procedure"`
	Fidelity      string                   `json:"fidelity" bson:"fidelity"`
	Outcomes      map[string]OutcomeResult `json:"outcomes" bson:"outcomes"`
	RiskCategory  string                   `json:"riskCategory" bson:"riskCategory"`
	Confidence    string                   `json:"confidence" bson:"confidence"`
	MissingFields []string                 `json:"missingFields,omitempty" bson:"missingFields,omitempty"`
}

// procedure describes one supported procedure type: its canonical name,
// the models to run, and (for the simplified valve models) the morbidity
// multiplier.
type procedure struct {
	name                string
	models              []Model
	morbidityMultiplier float64
	fidelity            string
}

var procedures = []procedure{
	{name: "Isolated CABG", models: CABGModels, fidelity: FidelityDetailed},
	{name: "AVR", models: []Model{avrMortality}, morbidityMultiplier: 3.2, fidelity: FidelitySimplified},
	{name: "MVR", models: []Model{mvrMortality}, morbidityMultiplier: 3.8, fidelity: FidelitySimplified},
	{name: "MV Repair", models: []Model{mvRepairMortality}, morbidityMultiplier: 3.5, fidelity: FidelitySimplified},
}

// procedureAliases maps normalized procedure strings to an index into
// procedures.  Matching is exact on the lowercased, trimmed input.
var procedureAliases = map[string]int{
	"cabg":                            0,
	"isolated cabg":                   0,
	"cabg only":                       0,
	"coronary artery bypass":          0,
	"coronary artery bypass graft":    0,
	"coronary artery bypass grafting": 0,
	"avr":                             1,
	"isolated avr":                    1,
	"aortic valve replacement":        1,
	"mvr":                             2,
	"isolated mvr":                    2,
	"mitral valve replacement":        2,
	"mv repair":                       3,
	"mitral valve repair":             3,
	"mitral repair":                   3,
}

// matchProcedure resolves a raw procedure type string against the known
// aliases.
func matchProcedure(procedureType string) (procedure, bool) {
	if i, ok := procedureAliases[procedureType]; ok {
		return procedures[i], true
	}
	return procedure{}, false
}

// Assess runs the full risk assessment for a patient record.  It never
// fails: missing required fields or an unrecognized procedure route to the
// heuristic fallback with reduced confidence instead of an error.
func Assess(r *patient.Record) *Assessment {
	if missing := r.MissingRequired(); len(missing) > 0 {
		sort.Strings(missing)
		a := heuristicAssessment(r)
		a.Confidence = ConfidenceLow
		a.MissingFields = missing
		return a
	}

	proc, ok := matchProcedure(r.ProcedureKey())
	if !ok {
		a := heuristicAssessment(r)
		a.Procedure = r.ProcedureType.String()
		a.Confidence = ConfidenceMedium
		return a
	}

	outcomes := make(map[string]OutcomeResult, len(proc.models)+1)
	for _, m := range proc.models {
		outcomes[m.Key] = m.Score(r)
	}
	if proc.morbidityMultiplier > 0 {
		outcomes["morbidityMortality"] = derivedMorbidity(outcomes["mortality"], proc.morbidityMultiplier)
	}

	return &Assessment{
		Method:       "mathematical",
		Procedure:    proc.name,
		Fidelity:     proc.fidelity,
		Outcomes:     outcomes,
		RiskCategory: Categorize(outcomes["mortality"].Percent),
		Confidence:   ConfidenceHigh,
	}
}

// Categorize maps a predicted mortality percentage to a qualitative band.
func Categorize(mortalityPercent float64) string {
	switch {
	case mortalityPercent < 1:
		return CategoryLow
	case mortalityPercent < 5:
		return CategoryModerate
	default:
		return CategoryHigh
	}
}
