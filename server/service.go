package server

import (
	"time"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/intervention-engine/stsrisk/patient"
	"github.com/intervention-engine/stsrisk/sts"
)

// AssessmentDocument is the stored envelope around a computed assessment.
// Only the computed result is persisted -- never the patient record -- so
// the downstream renderer can re-fetch traces by id.
type AssessmentDocument struct {
	Id         bson.ObjectId  `bson:"_id" json:"id"`
	Created    time.Time      `bson:"created" json:"created"`
	Assessment sts.Assessment `bson:"assessment" json:"assessment"`
}

// RiskService is the interface the HTTP routes are written against.
type RiskService interface {
	Assess(r *patient.Record) (*AssessmentDocument, error)
	Get(id string) (*AssessmentDocument, error)
}

// ReferenceRiskService runs the core engine and stores the resulting
// documents in MongoDB.
type ReferenceRiskService struct {
	db *mgo.Database
}

// NewReferenceRiskService creates a risk service backed by the passed in
// MongoDB database.
func NewReferenceRiskService(db *mgo.Database) *ReferenceRiskService {
	return &ReferenceRiskService{db: db}
}

// Assess computes the assessment for a record and persists the result
// document.  The computation itself cannot fail; only storage can.
func (rs *ReferenceRiskService) Assess(r *patient.Record) (*AssessmentDocument, error) {
	doc := &AssessmentDocument{
		Id:         bson.NewObjectId(),
		Created:    time.Now().UTC(),
		Assessment: *sts.Assess(r),
	}
	if err := rs.db.C("assessments").Insert(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get fetches a previously stored assessment document.  A missing document
// surfaces as mgo.ErrNotFound.
func (rs *ReferenceRiskService) Get(id string) (*AssessmentDocument, error) {
	doc := &AssessmentDocument{}
	if err := rs.db.C("assessments").FindId(bson.ObjectIdHex(id)).One(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
