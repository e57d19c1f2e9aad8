package patient

import (
	. "gopkg.in/check.v1"
)

type NormalizeSuite struct{}

var _ = Suite(&NormalizeSuite{})

func (s *NormalizeSuite) TestReoperationUnion(c *C) {
	c.Assert((&Record{}).IsReoperation(), Equals, false)
	c.Assert((&Record{Reoperation: "Yes"}).IsReoperation(), Equals, true)
	c.Assert((&Record{PriorCardiacSurgery: "Yes"}).IsReoperation(), Equals, true)
	c.Assert((&Record{PreviousCABG: "Yes"}).IsReoperation(), Equals, true)
	c.Assert((&Record{PreviousValve: "Yes"}).IsReoperation(), Equals, true)
	c.Assert((&Record{SurgeryIncidence: "First Re-op Cardiovascular"}).IsReoperation(), Equals, true)
	c.Assert((&Record{SurgeryIncidence: "First cardiovascular surgery"}).IsReoperation(), Equals, false)

	// Sentinels on the flags must not count
	c.Assert((&Record{Reoperation: "No", PreviousCABG: "None"}).IsReoperation(), Equals, false)

	// PCI alone is not a reoperation
	c.Assert((&Record{PreviousPCI: "Yes"}).IsReoperation(), Equals, false)
}

func (s *NormalizeSuite) TestEmergencyAndUrgentTiers(c *C) {
	c.Assert((&Record{Priority: "Emergent"}).IsEmergency(), Equals, true)
	c.Assert((&Record{Priority: "Emergency"}).IsEmergency(), Equals, true)
	c.Assert((&Record{Priority: "Emergent Salvage"}).IsEmergency(), Equals, true)
	c.Assert((&Record{Priority: "Elective"}).IsEmergency(), Equals, false)
	c.Assert((&Record{Priority: "Urgent"}).IsEmergency(), Equals, false)

	c.Assert((&Record{Priority: "Urgent"}).IsUrgent(), Equals, true)
	c.Assert((&Record{Priority: "Elective"}).IsUrgent(), Equals, false)

	// Mutually exclusive: emergent never also scores urgent
	c.Assert((&Record{Priority: "Emergent"}).IsUrgent(), Equals, false)
}

func (s *NormalizeSuite) TestRecentMIWindow(c *C) {
	recent, immediate := (&Record{MITiming: "≤ 6 Hrs"}).RecentMI()
	c.Assert(recent, Equals, true)
	c.Assert(immediate, Equals, true)

	recent, immediate = (&Record{MITiming: "<= 6 Hrs"}).RecentMI()
	c.Assert(recent, Equals, true)
	c.Assert(immediate, Equals, true)

	recent, immediate = (&Record{MITiming: "1 to 7 Days"}).RecentMI()
	c.Assert(recent, Equals, true)
	c.Assert(immediate, Equals, false)

	recent, immediate = (&Record{MITiming: "8 to 21 Days"}).RecentMI()
	c.Assert(recent, Equals, true)
	c.Assert(immediate, Equals, false)

	// The 21-day boundary, with and without spaces
	recent, _ = (&Record{MITiming: "> 21 Days"}).RecentMI()
	c.Assert(recent, Equals, false)
	recent, _ = (&Record{MITiming: ">21 Days"}).RecentMI()
	c.Assert(recent, Equals, false)

	// Absent or unrecognized values never fire
	recent, _ = (&Record{}).RecentMI()
	c.Assert(recent, Equals, false)
	recent, _ = (&Record{MITiming: "a while ago"}).RecentMI()
	c.Assert(recent, Equals, false)
}

func (s *NormalizeSuite) TestChronicLungDisease(c *C) {
	c.Assert((&Record{}).HasChronicLungDisease(), Equals, false)
	c.Assert((&Record{COPD: "Yes"}).HasChronicLungDisease(), Equals, true)
	c.Assert((&Record{ChronicLungDisease: "Mild"}).HasChronicLungDisease(), Equals, true)
	c.Assert((&Record{ChronicLungDisease: "Severe"}).HasChronicLungDisease(), Equals, true)
	c.Assert((&Record{ChronicLungDisease: "No"}).HasChronicLungDisease(), Equals, false)
}

func (s *NormalizeSuite) TestBodyMassIndexFallback(c *C) {
	bmi, ok := (&Record{BMI: Num(36.2)}).BodyMassIndex()
	c.Assert(ok, Equals, true)
	c.Assert(bmi, Equals, 36.2)

	// Derived from height/weight when the bmi field is absent
	bmi, ok = (&Record{Height: Num(170), Weight: Num(110)}).BodyMassIndex()
	c.Assert(ok, Equals, true)
	c.Assert(bmi > 38.0 && bmi < 38.1, Equals, true)

	_, ok = (&Record{Height: Num(170)}).BodyMassIndex()
	c.Assert(ok, Equals, false)
}

func (s *NormalizeSuite) TestGender(c *C) {
	c.Assert((&Record{Gender: "Female"}).IsFemale(), Equals, true)
	c.Assert((&Record{Gender: " female "}).IsFemale(), Equals, true)
	c.Assert((&Record{Gender: "Male"}).IsFemale(), Equals, false)
	c.Assert((&Record{}).IsFemale(), Equals, false)
}

func (s *NormalizeSuite) TestProcedureKey(c *C) {
	c.Assert((&Record{ProcedureType: " Isolated CABG "}).ProcedureKey(), Equals, "isolated cabg")
}
