// Package repotest holds the behaviour every repositories backend must show.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// Factory returns repositories over an empty store.
type Factory func(t *testing.T) *repositories.Repositories

// Run exercises the repository contract against the backend built by newRepos.
func Run(t *testing.T, newRepos Factory) {
	t.Run("Courses", func(t *testing.T) { testCourses(t, newRepos(t)) })
	t.Run("BatchLifecycle", func(t *testing.T) { testBatchLifecycle(t, newRepos(t)) })
	t.Run("EnrollAndUnenroll", func(t *testing.T) { testEnrollment(t, newRepos(t)) })
	t.Run("EnrollUnknownBatch", func(t *testing.T) { testEnrollUnknownBatch(t, newRepos(t)) })
	t.Run("ConcurrentEnroll", func(t *testing.T) { testConcurrentEnroll(t, newRepos(t)) })
	t.Run("Search", func(t *testing.T) { testSearch(t, newRepos(t)) })
}

// Unique suffixes keep contract runs independent on shared databases.
func unique(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func newBatch(courses ...string) *models.Batch {
	return &models.Batch{
		BatchName:  "B1",
		Courses:    courses,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Instructor: "Jane",
	}
}

func newStudent(batchID, name string) *models.Student {
	return &models.Student{
		Name:    name,
		Email:   "s@x.com",
		RollNo:  unique("R"),
		Mobile:  "9999999999",
		BatchID: batchID,
	}
}

func testCourses(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	name := unique("Web Development")
	c := &models.Course{Name: name, Duration: "6 months", Fees: 25000, Description: "Full stack"}
	if err := repos.Courses.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", c)
	}
	dup := &models.Course{Name: name, Description: "again"}
	if err := repos.Courses.Create(ctx, dup); !errors.Is(err, apperrors.ErrCourseNameExists) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}

	got, err := repos.Courses.GetByID(ctx, c.ID)
	if err != nil || got.Name != name || got.Fees != 25000 {
		t.Fatalf("GetByID: %+v %v", got, err)
	}

	b := newBatch(name)
	if err := repos.Batches.Create(ctx, b); err != nil {
		t.Fatalf("Create batch: %v", err)
	}
	if err := repos.Courses.Delete(ctx, c.ID); !errors.Is(err, apperrors.ErrCourseInUse) {
		t.Fatalf("expected course in use, got %v", err)
	}
	if err := repos.Batches.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete batch: %v", err)
	}
	if err := repos.Courses.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete course: %v", err)
	}
	if _, err := repos.Courses.GetByID(ctx, c.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repos.Courses.Delete(ctx, c.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func testBatchLifecycle(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	b1, b2 := newBatch("Go"), newBatch("Go")
	if err := repos.Batches.Create(ctx, b1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repos.Batches.Create(ctx, b2); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b1.ID == "" || b1.ID == b2.ID {
		t.Fatalf("expected distinct ids, got %q and %q", b1.ID, b2.ID)
	}
	if b1.Students == nil || len(b1.Students) != 0 {
		t.Fatalf("expected empty students, got %v", b1.Students)
	}

	b1.BatchName = "B1-renamed"
	b1.Courses = []string{"Go", "SQL"}
	if err := repos.Batches.Update(ctx, b1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repos.Batches.GetByID(ctx, b1.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BatchName != "B1-renamed" || len(got.Courses) != 2 || !got.StartDate.Equal(b1.StartDate) {
		t.Fatalf("unexpected batch after update: %+v", got)
	}

	missing := newBatch("Go")
	missing.ID = unknownID(repos)
	if err := repos.Batches.Update(ctx, missing); !errors.Is(err, apperrors.ErrBatchNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	st := newStudent(b1.ID, "Ann Lee")
	if err := repos.Students.Enroll(ctx, st); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := repos.Batches.Delete(ctx, b1.ID); !errors.Is(err, apperrors.ErrBatchHasStudents) {
		t.Fatalf("expected batch has students, got %v", err)
	}
	if _, err := repos.Students.Unenroll(ctx, st.ID); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}
	if err := repos.Batches.Delete(ctx, b1.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repos.Batches.GetByID(ctx, b1.ID); !errors.Is(err, apperrors.ErrBatchNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	list, err := repos.Batches.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, b := range list {
		if b.ID == b1.ID {
			t.Fatalf("deleted batch still listed")
		}
		if b.ID == b2.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected b2 in list")
	}
}

func testEnrollment(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	b := newBatch("Go")
	if err := repos.Batches.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ann := newStudent(b.ID, "Ann Lee")
	ann.ProfileImage = &models.FileRef{FileName: "ann.webp", FileURL: "http://x/ann.webp", DeleteToken: "photos/ann.webp"}
	ann.Certificates = []models.FileRef{{FileName: "c.pdf", FileURL: "http://x/c.pdf", DeleteToken: "certificates/c.pdf"}}
	if err := repos.Students.Enroll(ctx, ann); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	bo := newStudent(b.ID, "Bo Chen")
	if err := repos.Students.Enroll(ctx, bo); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	got, err := repos.Batches.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fmt.Sprint(got.Students) != fmt.Sprint([]string{ann.ID, bo.ID}) {
		t.Fatalf("expected students in enrollment order, got %v", got.Students)
	}

	stored, err := repos.Students.GetByID(ctx, ann.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.BatchID != b.ID || stored.ProfileImage == nil || stored.ProfileImage.DeleteToken != "photos/ann.webp" || len(stored.Certificates) != 1 {
		t.Fatalf("unexpected stored student %+v", stored)
	}

	dup := newStudent(b.ID, "Dup")
	dup.RollNo = ann.RollNo
	if err := repos.Students.Enroll(ctx, dup); !errors.Is(err, apperrors.ErrRollNoExists) {
		t.Fatalf("expected roll number conflict, got %v", err)
	}
	got, _ = repos.Batches.GetByID(ctx, b.ID)
	if len(got.Students) != 2 {
		t.Fatalf("failed enrollment must not touch the batch, got %v", got.Students)
	}

	listed, err := repos.Students.ListByIDs(ctx, []string{bo.ID, unknownID(repos), ann.ID})
	if err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != bo.ID || listed[1].ID != ann.ID {
		t.Fatalf("ListByIDs must follow id order, got %d items", len(listed))
	}

	removed, err := repos.Students.Unenroll(ctx, ann.ID)
	if err != nil {
		t.Fatalf("Unenroll: %v", err)
	}
	if removed.ID != ann.ID || len(removed.FileTokens()) != 2 {
		t.Fatalf("expected the removed student with its files, got %+v", removed)
	}
	got, _ = repos.Batches.GetByID(ctx, b.ID)
	if got.HasStudent(ann.ID) || !got.HasStudent(bo.ID) {
		t.Fatalf("unexpected batch students after unenroll: %v", got.Students)
	}
	if _, err := repos.Students.GetByID(ctx, ann.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repos.Students.Unenroll(ctx, ann.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected not found on second unenroll, got %v", err)
	}
}

func testEnrollUnknownBatch(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	name := unique("Ghost")
	st := newStudent(unknownID(repos), name)
	if err := repos.Students.Enroll(ctx, st); !errors.Is(err, apperrors.ErrBatchNotFound) {
		t.Fatalf("expected batch not found, got %v", err)
	}
	page, total, err := repos.Students.Search(ctx, models.StudentFilter{Search: name, Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 0 || len(page) != 0 {
		t.Fatalf("no student may be stored for an unknown batch, found %d", total)
	}
}

func testConcurrentEnroll(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	b := newBatch("Go")
	if err := repos.Batches.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repos.Students.Enroll(ctx, newStudent(b.ID, fmt.Sprintf("Student %d", i)))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("enroll %d: %v", i, err)
		}
	}
	got, err := repos.Batches.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Students) != n {
		t.Fatalf("expected %d students after concurrent enrollment, got %d", n, len(got.Students))
	}
}

func testSearch(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	b := newBatch("Go")
	if err := repos.Batches.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	tag := uuid.NewString()[:8]
	names := []string{"Ananya " + tag, "Banana " + tag, "Carl " + tag, "50% Off_" + tag, "a.b* " + tag}
	for _, n := range names {
		if err := repos.Students.Enroll(ctx, newStudent(b.ID, n)); err != nil {
			t.Fatalf("Enroll %s: %v", n, err)
		}
	}

	search := func(term string, offset, limit int64) ([]*models.Student, int64) {
		t.Helper()
		page, total, err := repos.Students.Search(ctx, models.StudentFilter{Search: term, Offset: offset, Limit: limit})
		if err != nil {
			t.Fatalf("Search(%q): %v", term, err)
		}
		return page, total
	}

	if page, total := search("ANA", 0, 10); total < 2 || !containsName(page, "Ananya "+tag) {
		t.Fatalf("expected case-insensitive match for ANA, got total=%d", total)
	}
	if _, total := search("% Off_"+tag, 0, 10); total != 1 {
		t.Fatalf("expected literal wildcard match, got %d", total)
	}
	if _, total := search("%"+tag, 0, 10); total != 0 {
		t.Fatalf("%% must not act as a wildcard, got %d", total)
	}
	if _, total := search("a.b* "+tag, 0, 10); total != 1 {
		t.Fatalf("expected literal regex metacharacters, got %d", total)
	}
	if _, total := search("a.. "+tag, 0, 10); total != 0 {
		t.Fatalf(". must not act as a wildcard, got %d", total)
	}

	page, total := search(tag, 0, 2)
	if total != int64(len(names)) || len(page) != 2 || page[0].Name != names[0] || page[1].Name != names[1] {
		t.Fatalf("unexpected first page: total=%d len=%d", total, len(page))
	}
	page, _ = search(tag, 4, 2)
	if len(page) != 1 || page[0].Name != names[4] {
		t.Fatalf("unexpected last page: %d items", len(page))
	}
	page, total = search(tag, 10, 2)
	if len(page) != 0 || total != int64(len(names)) {
		t.Fatalf("page beyond range must be empty, got %d items total %d", len(page), total)
	}
}

func containsName(list []*models.Student, name string) bool {
	for _, s := range list {
		if s.Name == name {
			return true
		}
	}
	return false
}

// IDFormatter is implemented by backends whose identifiers are not UUIDs.
type IDFormatter interface {
	NewID() string
}

// unknownID returns a well-formed identifier that names nothing.
func unknownID(repos *repositories.Repositories) string {
	if f, ok := repos.Students.(IDFormatter); ok {
		return f.NewID()
	}
	return uuid.NewString()
}
