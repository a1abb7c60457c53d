// Package mongo implements the repository contracts on MongoDB.
package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
)

// Collection names.
const (
	CoursesCollection  = "courses"
	BatchesCollection  = "batches"
	StudentsCollection = "students"
)

type courseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Duration    string             `bson:"duration"`
	Fees        float64            `bson:"fees"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *courseDoc) toModel() *models.Course {
	return &models.Course{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Duration:    d.Duration,
		Fees:        d.Fees,
		Description: d.Description,
		Timestamps:  models.Timestamps{CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()},
	}
}

type batchDoc struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	BatchName  string               `bson:"batchName"`
	Courses    []string             `bson:"courses"`
	StartDate  time.Time            `bson:"startDate"`
	EndDate    time.Time            `bson:"endDate"`
	Instructor string               `bson:"instructor"`
	Students   []primitive.ObjectID `bson:"students"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
}

func (d *batchDoc) toModel() *models.Batch {
	students := make([]string, len(d.Students))
	for i, id := range d.Students {
		students[i] = id.Hex()
	}
	courses := d.Courses
	if courses == nil {
		courses = []string{}
	}
	return &models.Batch{
		ID:         d.ID.Hex(),
		BatchName:  d.BatchName,
		Courses:    courses,
		StartDate:  d.StartDate.UTC(),
		EndDate:    d.EndDate.UTC(),
		Instructor: d.Instructor,
		Students:   students,
		Timestamps: models.Timestamps{CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()},
	}
}

type studentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	EnrollmentNo string             `bson:"enrollmentNo,omitempty"`
	RollNo       string             `bson:"rollNo"`
	Mobile       string             `bson:"mobile"`
	Batch        primitive.ObjectID `bson:"batch"`
	ProfileImage *models.FileRef    `bson:"profileImage,omitempty"`
	Certificates []models.FileRef   `bson:"certificates"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *studentDoc) toModel() *models.Student {
	certs := d.Certificates
	if certs == nil {
		certs = []models.FileRef{}
	}
	return &models.Student{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		EnrollmentNo: d.EnrollmentNo,
		RollNo:       d.RollNo,
		Mobile:       d.Mobile,
		BatchID:      d.Batch.Hex(),
		ProfileImage: d.ProfileImage,
		Certificates: certs,
		Timestamps:   models.Timestamps{CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()},
	}
}

func newStudentDoc(s *models.Student, batchID primitive.ObjectID) *studentDoc {
	certs := s.Certificates
	if certs == nil {
		certs = []models.FileRef{}
	}
	return &studentDoc{
		Name:         s.Name,
		Email:        s.Email,
		EnrollmentNo: s.EnrollmentNo,
		RollNo:       s.RollNo,
		Mobile:       s.Mobile,
		Batch:        batchID,
		ProfileImage: s.ProfileImage,
		Certificates: certs,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// objectID parses a hex id. Malformed ids cannot name any document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}
