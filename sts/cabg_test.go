package sts

import (
	"github.com/intervention-engine/stsrisk/patient"
	. "gopkg.in/check.v1"
)

type CABGSuite struct{}

var _ = Suite(&CABGSuite{})

func (s *CABGSuite) TestWorkedMortalityExample(c *C) {
	record := &patient.Record{
		Age:              patient.Num(75),
		Gender:           "Female",
		ProcedureType:    "Isolated CABG",
		EjectionFraction: patient.Num(25),
		Dialysis:         "Yes",
		Priority:         "Emergent",
	}
	assessment := Assess(record)
	c.Assert(assessment.Confidence, Equals, ConfidenceHigh)
	c.Assert(assessment.Procedure, Equals, "Isolated CABG")
	c.Assert(assessment.Fidelity, Equals, FidelityDetailed)

	mortality := assessment.Outcomes["mortality"]
	// -6.0 + 0.75 (age slope) + 0.3 (age step) + 0.3 (female)
	//      + 0.8 (EF < 30) + 1.2 (dialysis) + 1.0 (emergent) = -1.65
	assertNear(c, totalLogitRow(c, mortality.Trace).Amount, -6.0+0.75+0.3+0.3+0.8+1.2+1.0)
	c.Assert(mortality.Percent, Equals, 16.11)
	c.Assert(mortality.Display, Equals, "16.11%")
	c.Assert(assessment.RiskCategory, Equals, CategoryHigh)
}

func (s *CABGSuite) TestAllNineOutcomesReported(c *C) {
	assessment := Assess(lowRiskCABG())
	c.Assert(assessment.Outcomes, HasLen, 9)
	for _, key := range []string{
		"mortality", "morbidityMortality", "stroke", "renalFailure",
		"reoperation", "prolongedVentilation", "deepSternalWoundInfection",
		"longStay", "shortStay",
	} {
		_, ok := assessment.Outcomes[key]
		c.Assert(ok, Equals, true, Commentf("missing outcome %s", key))
	}
}

func (s *CABGSuite) TestDiabetesSentinel(c *C) {
	record := lowRiskCABG()
	record.Diabetes = "No"
	result := cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0)

	record.Diabetes = "Yes, Insulin"
	result = cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0+0.3)

	// The trace shows the raw patient value
	c.Assert(result.Trace[1].Factor, Equals, "Diabetes")
	c.Assert(result.Trace[1].Value, Equals, "Yes, Insulin")
}

func (s *CABGSuite) TestMITimingTiers(c *C) {
	record := lowRiskCABG()

	record.MITiming = "≤ 6 Hrs"
	result := cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0+0.7)

	record.MITiming = "1 to 7 Days"
	result = cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0+0.5)

	record.MITiming = "> 21 Days"
	result = cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0)

	record.MITiming = ">21 Days"
	result = cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0)
}

func (s *CABGSuite) TestUrgentIsLowerTierThanEmergent(c *C) {
	record := lowRiskCABG()

	record.Priority = "Urgent"
	urgent := cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, urgent.Trace).Amount, -6.0+0.4)

	record.Priority = "Emergent Salvage"
	emergent := cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, emergent.Trace).Amount, -6.0+1.0)

	// At most one of the two tiers ever applies
	for _, row := range emergent.Trace {
		c.Assert(row.Factor == "Urgent Status", Equals, false)
	}
}

func (s *CABGSuite) TestRenalFailureNotApplicableOnDialysis(c *C) {
	record := lowRiskCABG()
	record.Dialysis = "Yes"
	assessment := Assess(record)

	renal := assessment.Outcomes["renalFailure"]
	c.Assert(renal.Status, Equals, StatusNotApplicable)
	c.Assert(renal.Percent, Equals, 0.0)
	c.Assert(renal.Display, Equals, "")
	c.Assert(renal.Trace, HasLen, 1)
	c.Assert(renal.Trace[0].Kind, Equals, KindNote)

	// Other outcomes are still computed
	c.Assert(assessment.Outcomes["mortality"].Status, Equals, StatusComputed)
}

func (s *CABGSuite) TestShortStaySignConvention(c *C) {
	young := lowRiskCABG()
	young.Age = patient.Num(55)

	old := &patient.Record{
		Age:              patient.Num(80),
		Gender:           "Male",
		ProcedureType:    "Isolated CABG",
		CardiogenicShock: "Yes",
	}

	youngResult := cabgShortStay.Score(young)
	oldResult := cabgShortStay.Score(old)

	// Short stay is a positive outcome: the low-risk patient must have the
	// strictly higher probability.
	c.Assert(youngResult.Percent > oldResult.Percent, Equals, true,
		Commentf("young %v vs old %v", youngResult.Percent, oldResult.Percent))

	// Young age is additive, risk factors subtract
	c.Assert(youngResult.Trace[1].Factor, Equals, "Age < 60")
	c.Assert(youngResult.Trace[1].Amount > 0, Equals, true)
	found := false
	for _, row := range oldResult.Trace {
		if row.Factor == "Cardiogenic Shock" {
			found = true
			c.Assert(row.Amount < 0, Equals, true)
		}
	}
	c.Assert(found, Equals, true)
}

func (s *CABGSuite) TestMalformedLabNeverFires(c *C) {
	record := lowRiskCABG()
	record.Creatinine = patient.Number{} // e.g. decoded from "high"
	result := cabgMortality.Score(record)
	assertNear(c, totalLogitRow(c, result.Trace).Amount, -6.0)
}
