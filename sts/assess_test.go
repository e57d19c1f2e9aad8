package sts

import (
	"github.com/intervention-engine/stsrisk/patient"
	. "gopkg.in/check.v1"
)

type AssessSuite struct{}

var _ = Suite(&AssessSuite{})

func (s *AssessSuite) TestMissingRequiredFieldsUseHeuristic(c *C) {
	record := &patient.Record{
		Age:              patient.Num(80),
		EjectionFraction: patient.Num(25),
		Dialysis:         "Yes",
		Priority:         "Emergent",
		CardiogenicShock: "Yes",
		PreviousCABG:     "Yes",
	}
	assessment := Assess(record)
	c.Assert(assessment.Confidence, Equals, ConfidenceLow)
	c.Assert(assessment.Fidelity, Equals, FidelityHeuristic)
	c.Assert(assessment.MissingFields, DeepEquals, []string{"gender", "procedureType"})

	// 2 (age) + 3 (EF) + 3 (dialysis) + 3 (emergency) + 4 (shock) + 2 (reop) = 17 points
	c.Assert(assessment.Outcomes["mortality"].Percent, Equals, 12.0)
	c.Assert(assessment.Outcomes["morbidityMortality"].Percent, Equals, 42.0)
	c.Assert(assessment.RiskCategory, Equals, CategoryHigh)
}

func (s *AssessSuite) TestHeuristicBreakpoints(c *C) {
	// Age 70 alone scores one point
	record := &patient.Record{Age: patient.Num(70)}
	a := Assess(record)
	c.Assert(a.Outcomes["mortality"].Percent, Equals, 1.5)

	// Age 80 + dialysis: 2 + 3 = 5 points
	record = &patient.Record{Age: patient.Num(80), Dialysis: "Yes"}
	a = Assess(record)
	c.Assert(a.Outcomes["mortality"].Percent, Equals, 5.5)

	// Age 80 + dialysis + emergency: 8 points
	record = &patient.Record{Age: patient.Num(80), Dialysis: "Yes", Priority: "Emergency"}
	a = Assess(record)
	c.Assert(a.Outcomes["mortality"].Percent, Equals, 8.0)
}

func (s *AssessSuite) TestUnrecognizedProcedureIsMediumConfidence(c *C) {
	record := &patient.Record{
		Age:           patient.Num(70),
		Gender:        "Male",
		ProcedureType: "Norwood Procedure",
	}
	assessment := Assess(record)
	c.Assert(assessment.Confidence, Equals, ConfidenceMedium)
	c.Assert(assessment.Fidelity, Equals, FidelityHeuristic)
	c.Assert(assessment.Procedure, Equals, "Norwood Procedure")
	c.Assert(assessment.MissingFields, HasLen, 0)
}

func (s *AssessSuite) TestProcedureAliases(c *C) {
	for _, alias := range []string{"CABG", "Isolated CABG", "coronary artery bypass grafting"} {
		record := &patient.Record{Age: patient.Num(65), Gender: "Male", ProcedureType: patient.Answer(alias)}
		assessment := Assess(record)
		c.Assert(assessment.Procedure, Equals, "Isolated CABG", Commentf("alias %q", alias))
		c.Assert(assessment.Confidence, Equals, ConfidenceHigh)
	}
}

func (s *AssessSuite) TestValveProceduresAreSimplified(c *C) {
	record := &patient.Record{
		Age:           patient.Num(70),
		Gender:        "Male",
		ProcedureType: "Aortic Valve Replacement",
	}
	assessment := Assess(record)
	c.Assert(assessment.Procedure, Equals, "AVR")
	c.Assert(assessment.Fidelity, Equals, FidelitySimplified)
	c.Assert(assessment.Confidence, Equals, ConfidenceHigh)

	// Mortality model plus the multiplier-derived morbidity, nothing else
	c.Assert(assessment.Outcomes, HasLen, 2)

	mortality := assessment.Outcomes["mortality"]
	assertNear(c, totalLogitRow(c, mortality.Trace).Amount, -6.1+(70-65)*0.05)
	c.Assert(mortality.Percent, Equals, 0.29)

	morbidity := assessment.Outcomes["morbidityMortality"]
	c.Assert(morbidity.Percent, Equals, roundTo(mortality.Percent*3.2, 2))
	c.Assert(morbidity.Trace[0].Calculation, Equals, "0.29 × 3.2")
}

func (s *AssessSuite) TestValveMultipliers(c *C) {
	base := patient.Record{Age: patient.Num(70), Gender: "Male"}

	mvr := base
	mvr.ProcedureType = "Mitral Valve Replacement"
	a := Assess(&mvr)
	c.Assert(a.Procedure, Equals, "MVR")
	c.Assert(a.Outcomes["morbidityMortality"].Percent, Equals, roundTo(a.Outcomes["mortality"].Percent*3.8, 2))

	repair := base
	repair.ProcedureType = "Mitral Valve Repair"
	a = Assess(&repair)
	c.Assert(a.Procedure, Equals, "MV Repair")
	c.Assert(a.Outcomes["morbidityMortality"].Percent, Equals, roundTo(a.Outcomes["mortality"].Percent*3.5, 2))
}

func (s *AssessSuite) TestCategorize(c *C) {
	c.Assert(Categorize(0.25), Equals, CategoryLow)
	c.Assert(Categorize(0.99), Equals, CategoryLow)
	c.Assert(Categorize(1.0), Equals, CategoryModerate)
	c.Assert(Categorize(4.99), Equals, CategoryModerate)
	c.Assert(Categorize(5.0), Equals, CategoryHigh)
	c.Assert(Categorize(16.11), Equals, CategoryHigh)
}

func (s *AssessSuite) TestAssessmentIsSerializable(c *C) {
	assessment := Assess(lowRiskCABG())
	c.Assert(assessment.Method, Equals, "mathematical")
	c.Assert(assessment.RiskCategory, Equals, CategoryLow)

	// Every outcome carries its trace; computed ones carry a display value
	for key, outcome := range assessment.Outcomes {
		c.Assert(len(outcome.Trace) > 0, Equals, true, Commentf("outcome %s", key))
		if outcome.Status == StatusComputed {
			c.Assert(outcome.Display, Not(Equals), "")
		}
	}
}
