package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// fakeWrites keeps students and batch member lists in maps and fails the
// configured operations.
type fakeWrites struct {
	students map[primitive.ObjectID]*studentDoc
	batches  map[primitive.ObjectID][]primitive.ObjectID
	calls    []string

	pushErr   error
	pullErr   error
	deleteErr error
}

func newFakeWrites(batchIDs ...primitive.ObjectID) *fakeWrites {
	w := &fakeWrites{
		students: map[primitive.ObjectID]*studentDoc{},
		batches:  map[primitive.ObjectID][]primitive.ObjectID{},
	}
	for _, id := range batchIDs {
		w.batches[id] = nil
	}
	return w
}

func (w *fakeWrites) batchExists(_ context.Context, batchID primitive.ObjectID) (bool, error) {
	w.calls = append(w.calls, "batchExists")
	_, ok := w.batches[batchID]
	return ok, nil
}

func (w *fakeWrites) insert(_ context.Context, doc *studentDoc) error {
	w.calls = append(w.calls, "insert")
	w.students[doc.ID] = doc
	return nil
}

func (w *fakeWrites) find(_ context.Context, id primitive.ObjectID) (*studentDoc, error) {
	w.calls = append(w.calls, "find")
	doc, ok := w.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return doc, nil
}

func (w *fakeWrites) delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	w.calls = append(w.calls, "delete")
	if w.deleteErr != nil {
		return false, w.deleteErr
	}
	_, ok := w.students[id]
	delete(w.students, id)
	return ok, nil
}

func (w *fakeWrites) findAndDelete(ctx context.Context, id primitive.ObjectID) (*studentDoc, error) {
	doc, err := w.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := w.delete(ctx, id); err != nil {
		return nil, err
	}
	return doc, nil
}

func (w *fakeWrites) push(_ context.Context, batchID, studentID primitive.ObjectID, _ time.Time) error {
	w.calls = append(w.calls, "push")
	if w.pushErr != nil {
		return w.pushErr
	}
	members, ok := w.batches[batchID]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	w.batches[batchID] = append(members, studentID)
	return nil
}

func (w *fakeWrites) pull(_ context.Context, batchID, studentID primitive.ObjectID, _ time.Time) error {
	w.calls = append(w.calls, "pull")
	if w.pullErr != nil {
		return w.pullErr
	}
	members := w.batches[batchID]
	for i, id := range members {
		if id == studentID {
			w.batches[batchID] = append(members[:i:i], members[i+1:]...)
			break
		}
	}
	return nil
}

func (w *fakeWrites) has(batchID, studentID primitive.ObjectID) bool {
	for _, id := range w.batches[batchID] {
		if id == studentID {
			return true
		}
	}
	return false
}

func newCompensatingRepo(w *fakeWrites) *StudentRepository {
	return &StudentRepository{db: &db.MongoDB{}, writes: w, now: utcNow}
}

func newStudent(batchID primitive.ObjectID) *models.Student {
	return &models.Student{Name: "Ann", Email: "ann@example.com", RollNo: "R1", BatchID: batchID.Hex()}
}

func TestEnrollRemovesStudentWhenBatchAppendFails(t *testing.T) {
	batchID := primitive.NewObjectID()
	w := newFakeWrites(batchID)
	pushErr := errors.New("write concern timeout")
	w.pushErr = pushErr

	err := newCompensatingRepo(w).Enroll(context.Background(), newStudent(batchID))
	if !errors.Is(err, pushErr) {
		t.Fatalf("expected push error, got %v", err)
	}
	if len(w.students) != 0 {
		t.Fatalf("expected inserted student to be deleted, %d left", len(w.students))
	}
	if len(w.batches[batchID]) != 0 {
		t.Fatalf("expected batch to stay empty, got %v", w.batches[batchID])
	}
}

func TestEnrollReportsPartialEnrollmentWhenRollbackFails(t *testing.T) {
	batchID := primitive.NewObjectID()
	w := newFakeWrites(batchID)
	w.pushErr = errors.New("write concern timeout")
	w.deleteErr = errors.New("connection reset")

	err := newCompensatingRepo(w).Enroll(context.Background(), newStudent(batchID))
	if !errors.Is(err, apperrors.ErrPartialEnrollment) {
		t.Fatalf("expected ErrPartialEnrollment, got %v", err)
	}
	if len(w.students) != 1 {
		t.Fatalf("expected the orphaned student to remain, got %d", len(w.students))
	}
}

func TestEnrollUnknownBatchWritesNothing(t *testing.T) {
	w := newFakeWrites()
	err := newCompensatingRepo(w).Enroll(context.Background(), newStudent(primitive.NewObjectID()))
	if !errors.Is(err, apperrors.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	if len(w.students) != 0 {
		t.Fatalf("expected no student to be inserted")
	}
}

func TestUnenrollPullsBeforeDeleting(t *testing.T) {
	batchID := primitive.NewObjectID()
	w := newFakeWrites(batchID)
	repo := newCompensatingRepo(w)
	s := newStudent(batchID)
	if err := repo.Enroll(context.Background(), s); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	w.calls = nil

	removed, err := repo.Unenroll(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Unenroll: %v", err)
	}
	if removed.ID != s.ID || removed.RollNo != "R1" {
		t.Fatalf("unexpected removed student %+v", removed)
	}
	want := []string{"find", "pull", "delete"}
	if len(w.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, w.calls)
	}
	for i := range want {
		if w.calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, w.calls)
		}
	}
	if len(w.students) != 0 || len(w.batches[batchID]) != 0 {
		t.Fatalf("expected student and reference gone, got %d students, batch %v", len(w.students), w.batches[batchID])
	}
}

func TestUnenrollFailedPullLeavesStudentEnrolled(t *testing.T) {
	batchID := primitive.NewObjectID()
	w := newFakeWrites(batchID)
	repo := newCompensatingRepo(w)
	s := newStudent(batchID)
	if err := repo.Enroll(context.Background(), s); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	pullErr := errors.New("not primary")
	w.pullErr = pullErr

	if _, err := repo.Unenroll(context.Background(), s.ID); !errors.Is(err, pullErr) {
		t.Fatalf("expected pull error, got %v", err)
	}
	oid, _ := objectID(s.ID)
	if len(w.students) != 1 || !w.has(batchID, oid) {
		t.Fatalf("expected student to stay enrolled")
	}
}

func TestUnenrollRestoresBatchReferenceWhenDeleteFails(t *testing.T) {
	batchID := primitive.NewObjectID()
	w := newFakeWrites(batchID)
	repo := newCompensatingRepo(w)
	s := newStudent(batchID)
	if err := repo.Enroll(context.Background(), s); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	deleteErr := errors.New("connection reset")
	w.deleteErr = deleteErr

	if _, err := repo.Unenroll(context.Background(), s.ID); !errors.Is(err, deleteErr) {
		t.Fatalf("expected delete error, got %v", err)
	}
	oid, _ := objectID(s.ID)
	if len(w.students) != 1 {
		t.Fatalf("expected student to remain after failed delete")
	}
	if !w.has(batchID, oid) {
		t.Fatalf("expected batch reference to be restored, got %v", w.batches[batchID])
	}
}

func TestUnenrollReportsPartialWhenRestoreFails(t *testing.T) {
	batchID := primitive.NewObjectID()
	w := newFakeWrites(batchID)
	repo := newCompensatingRepo(w)
	s := newStudent(batchID)
	if err := repo.Enroll(context.Background(), s); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	w.deleteErr = errors.New("connection reset")
	w.pushErr = errors.New("connection reset")

	_, err := repo.Unenroll(context.Background(), s.ID)
	if !errors.Is(err, apperrors.ErrPartialUnenrollment) {
		t.Fatalf("expected ErrPartialUnenrollment, got %v", err)
	}
}

func TestUnenrollMissingStudent(t *testing.T) {
	w := newFakeWrites()
	_, err := newCompensatingRepo(w).Unenroll(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if len(w.calls) != 1 {
		t.Fatalf("expected only a lookup, got %v", w.calls)
	}
}
