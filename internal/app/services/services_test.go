package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories/memory"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/email"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/filestorage"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/validation"
)

type fixture struct {
	repos    *repositories.Repositories
	storage  *filestorage.LocalStorage
	root     string
	batches  BatchService
	students StudentService
	courses  CourseService
	files    FileService
}

func newFixture(t *testing.T, mailer email.EmailService) *fixture {
	t.Helper()
	validation.Register()

	root := t.TempDir()
	storage, err := filestorage.NewLocalStorage(root, "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	repos := memory.New()
	files := NewFileService(storage, 1<<20, nil, zerolog.Nop())
	return &fixture{
		repos:    repos,
		storage:  storage,
		root:     root,
		batches:  NewBatchService(repos.Batches, repos.Students),
		students: NewStudentService(repos.Students, repos.Batches, files, mailer, nil, zerolog.Nop()),
		courses:  NewCourseService(repos.Courses),
		files:    files,
	}
}

func batchRequest(name string) dto.BatchRequest {
	return dto.BatchRequest{
		BatchName:  name,
		Courses:    []string{"Web Development"},
		StartDate:  "2024-01-01",
		EndDate:    "2024-06-01",
		Instructor: "Jane",
	}
}

func studentRequest(batchID, first, last, rollNo string) dto.AddStudentRequest {
	return dto.AddStudentRequest{Data: dto.StudentData{
		FirstName: first,
		LastName:  last,
		Email:     "a@x.com",
		Mobile:    "9999999999",
		RollNo:    rollNo,
		Batch:     batchID,
	}}
}

func (f *fixture) createBatch(t *testing.T, name string) *models.Batch {
	t.Helper()
	b, err := f.batches.CreateBatch(context.Background(), batchRequest(name))
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	return b
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	ce, ok := apperrors.AsCustom(err)
	if !ok {
		t.Fatalf("expected CustomError, got %v", err)
	}
	if ce.Field != field {
		t.Fatalf("expected field %q, got %q (%s)", field, ce.Field, ce.Message)
	}
}

type countingLimiter struct {
	blocked bool
	fails   int
	resets  int
}

func (l *countingLimiter) Allow(context.Context, string) error {
	if l.blocked {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}
func (l *countingLimiter) Fail(context.Context, string)  { l.fails++ }
func (l *countingLimiter) Reset(context.Context, string) { l.resets++ }

func TestLogin(t *testing.T) {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "registrar"})
	limiter := &countingLimiter{}
	svc := NewAuthService(auth.StaticCredentials{Username: "admin", Password: "secret"}, jwtSvc, limiter, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "root", "wrong", "1.2.3.4")
	assertField(t, err, "username")
	_, err = svc.Login(ctx, "admin", "wrong", "1.2.3.4")
	assertField(t, err, "password")
	if limiter.fails != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", limiter.fails)
	}

	res, err := svc.Login(ctx, "admin", "secret", "1.2.3.4")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := jwtSvc.ValidateToken(res.Token)
	if err != nil || claims.Username != "admin" {
		t.Fatalf("issued token invalid: %v", err)
	}
	if limiter.resets != 1 || res.ExpiresIn != 3600 {
		t.Fatalf("unexpected resets=%d expiresIn=%d", limiter.resets, res.ExpiresIn)
	}

	limiter.blocked = true
	if _, err := svc.Login(ctx, "admin", "secret", "1.2.3.4"); !errors.Is(err, apperrors.ErrTooManyAttempts) {
		t.Fatalf("expected throttling, got %v", err)
	}
}

func TestCreateBatchStartsEmpty(t *testing.T) {
	f := newFixture(t, nil)
	b1 := f.createBatch(t, " B1 ")
	b2 := f.createBatch(t, "B2")

	if b1.BatchName != "B1" || len(b1.Students) != 0 || b1.Students == nil {
		t.Fatalf("unexpected batch %+v", b1)
	}
	if b1.ID == "" || b1.ID == b2.ID {
		t.Fatalf("expected distinct ids, got %q and %q", b1.ID, b2.ID)
	}
	all, err := f.batches.GetAllBatches(context.Background())
	if err != nil || len(all) != 2 || all[0].ID != b1.ID {
		t.Fatalf("unexpected batch list %v (%v)", all, err)
	}
}

func TestBatchDateValidation(t *testing.T) {
	f := newFixture(t, nil)
	req := batchRequest("B1")
	req.EndDate = "2023-12-31"
	_, err := f.batches.CreateBatch(context.Background(), req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	assertField(t, err, "endDate")

	req = batchRequest("B1")
	req.StartDate = "January"
	_, err = f.batches.CreateBatch(context.Background(), req)
	assertField(t, err, "startDate")
}

func TestUpdateBatchKeepsStudents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.createBatch(t, "B1")
	s, err := f.students.AddStudent(ctx, studentRequest(b.ID, "Ann", "Lee", "R1"))
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}

	req := batchRequest("B1 evening")
	req.Instructor = "Raj"
	updated, err := f.batches.UpdateBatch(ctx, b.ID, req)
	if err != nil {
		t.Fatalf("UpdateBatch: %v", err)
	}
	if updated.BatchName != "B1 evening" || updated.Instructor != "Raj" || !updated.HasStudent(s.ID) {
		t.Fatalf("unexpected updated batch %+v", updated)
	}
	if _, err := f.batches.UpdateBatch(ctx, "missing", req); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddStudentLinksBatch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.createBatch(t, "B1")

	s, err := f.students.AddStudent(ctx, studentRequest(b.ID, " Ann ", "Lee ", "R1"))
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if s.Name != "Ann Lee" || s.BatchID != b.ID || s.Certificates == nil {
		t.Fatalf("unexpected student %+v", s)
	}

	inBatch, err := f.batches.GetStudentsInBatch(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetStudentsInBatch: %v", err)
	}
	if len(inBatch) != 1 || inBatch[0].ID != s.ID {
		t.Fatalf("expected the new student in its batch, got %v", inBatch)
	}

	detail, err := f.students.GetStudentDetails(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetStudentDetails: %v", err)
	}
	if detail.Batch == nil || detail.Batch.ID != b.ID {
		t.Fatalf("expected expanded batch, got %+v", detail.Batch)
	}

	_, err = f.students.AddStudent(ctx, studentRequest(b.ID, "Bo", "Chen", "R1"))
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("expected duplicate roll number conflict, got %v", err)
	}
}

func TestAddStudentUnknownBatch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.students.AddStudent(ctx, studentRequest("missing", "Ann", "Lee", "R1"))
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	page, err := f.students.SearchStudents(ctx, 1, 10, "")
	if err != nil {
		t.Fatalf("SearchStudents: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("no student must be stored, found %d", page.Total)
	}
}

func TestSearchStudents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.createBatch(t, "B1")
	for i := 0; i < 24; i++ {
		if _, err := f.students.AddStudent(ctx, studentRequest(b.ID, "Student", fmt.Sprint(i), fmt.Sprintf("R%d", i))); err != nil {
			t.Fatalf("AddStudent: %v", err)
		}
	}
	if _, err := f.students.AddStudent(ctx, studentRequest(b.ID, "Ananya", "Rao", "R-ananya")); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}

	page, err := f.students.SearchStudents(ctx, 1, 10, "")
	if err != nil {
		t.Fatalf("SearchStudents: %v", err)
	}
	if len(page.Students) != 10 || page.Total != 25 || page.TotalPages != 3 {
		t.Fatalf("unexpected first page: n=%d total=%d pages=%d", len(page.Students), page.Total, page.TotalPages)
	}
	if page.Students[0].Name != "Student 0" {
		t.Fatalf("expected creation order, got %s first", page.Students[0].Name)
	}

	last, _ := f.students.SearchStudents(ctx, 3, 10, "")
	if len(last.Students) != 5 {
		t.Fatalf("expected 5 on the last page, got %d", len(last.Students))
	}
	beyond, err := f.students.SearchStudents(ctx, 9, 10, "")
	if err != nil || len(beyond.Students) != 0 || beyond.Students == nil {
		t.Fatalf("expected empty page beyond range, got %v (%v)", beyond.Students, err)
	}

	for _, term := range []string{"ana", "ANA"} {
		res, err := f.students.SearchStudents(ctx, 1, 10, term)
		if err != nil {
			t.Fatalf("SearchStudents(%q): %v", term, err)
		}
		if res.Total != 1 || res.Students[0].Name != "Ananya Rao" {
			t.Fatalf("search %q: unexpected result %+v", term, res.Students)
		}
	}

	none, _ := f.students.SearchStudents(ctx, 1, 10, "%")
	if none.Total != 0 || none.TotalPages != 0 {
		t.Fatalf("wildcards must match literally, got total=%d pages=%d", none.Total, none.TotalPages)
	}

	defaults, _ := f.students.SearchStudents(ctx, 0, -3, "")
	if defaults.Page != 1 || defaults.Limit != 10 {
		t.Fatalf("expected defaults, got page=%d limit=%d", defaults.Page, defaults.Limit)
	}
}

func TestDeleteBatchWithStudents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.createBatch(t, "B1")
	s, _ := f.students.AddStudent(ctx, studentRequest(b.ID, "Ann", "Lee", "R1"))

	if err := f.batches.DeleteBatch(ctx, b.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := f.students.DeleteStudent(ctx, s.ID); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if err := f.batches.DeleteBatch(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBatch after emptying: %v", err)
	}
	if _, err := f.batches.GetBatch(ctx, b.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected deleted batch to be gone, got %v", err)
	}
	if err := f.batches.DeleteBatch(ctx, ""); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
}

func TestDeleteStudentRemovesBatchLinkAndFiles(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.createBatch(t, "B1")

	photo, err := f.files.UploadFile(ctx, "cert.pdf", "application/pdf", 4, strings.NewReader("%PDF"), filestorage.FolderCertificates)
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	req := studentRequest(b.ID, "Ann", "Lee", "R1")
	req.Certificates = []dto.FileRefRequest{{FileName: photo.FileName, FileURL: photo.FileURL, DeleteToken: photo.DeleteToken}}
	s, err := f.students.AddStudent(ctx, req)
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}

	if err := f.students.DeleteStudent(ctx, s.ID); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	batch, _ := f.batches.GetBatch(ctx, b.ID)
	if batch.HasStudent(s.ID) {
		t.Fatalf("student id still listed in batch")
	}
	if _, err := os.Stat(filepath.Join(f.root, photo.DeleteToken)); !os.IsNotExist(err) {
		t.Fatalf("expected certificate file to be removed, stat err=%v", err)
	}
	if err := f.students.DeleteStudent(ctx, s.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUploadFileChecks(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.files.UploadFile(ctx, "a.pdf", "application/pdf", 3, strings.NewReader("abc"), "secrets")
	assertField(t, err, "folder")

	_, err = f.files.UploadFile(ctx, "a.pdf", "application/pdf", 2<<20, strings.NewReader("abc"), filestorage.FolderCertificates)
	if !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestDeleteFilesReportsEachToken(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ref, err := f.files.UploadFile(ctx, "a.pdf", "application/pdf", 3, strings.NewReader("abc"), filestorage.FolderCertificates)
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	tokens := []string{"certificates/missing.pdf", ref.DeleteToken, "../etc/passwd"}
	results := f.files.DeleteFiles(ctx, tokens)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Token != tokens[i] {
			t.Fatalf("result %d out of order: %s", i, r.Token)
		}
	}
	if results[0].Deleted || results[0].Message != "File not found" {
		t.Fatalf("unexpected result for missing file: %+v", results[0])
	}
	if !results[1].Deleted {
		t.Fatalf("expected existing file to be deleted: %+v", results[1])
	}
	if results[2].Deleted || results[2].Message != "Invalid delete token" {
		t.Fatalf("unexpected result for traversal token: %+v", results[2])
	}
}

func TestCourseLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	c, err := f.courses.CreateCourse(ctx, dto.CreateCourseRequest{Name: " Web Development ", Duration: "6 months", Fees: 25000, Description: "Full stack"})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if c.Name != "Web Development" {
		t.Fatalf("expected trimmed name, got %q", c.Name)
	}
	if _, err := f.courses.CreateCourse(ctx, dto.CreateCourseRequest{Name: "Web Development", Description: "again"}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("expected duplicate name conflict, got %v", err)
	}

	b := f.createBatch(t, "B1")
	if err := f.courses.DeleteCourse(ctx, c.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected in-use conflict, got %v", err)
	}
	if err := f.batches.DeleteBatch(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBatch: %v", err)
	}
	if err := f.courses.DeleteCourse(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	courses, _ := f.courses.GetAllCourses(ctx)
	if len(courses) != 0 {
		t.Fatalf("expected no courses, got %d", len(courses))
	}
}

func importWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := wb.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestImportAndExportStudents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.createBatch(t, "B1")

	buf := importWorkbook(t, [][]interface{}{
		{"firstName", "lastName", "email", "mobile", "rollNo", "enrollmentNo"},
		{"Ann", "Lee", "a@x.com", "9999999999", "R1", "EN1"},
		{"Bo", "Chen", "not-an-email", "8888888888", "R2"},
		{"Cy", "Park", "c@x.com", "7777777777", "R1"},
		{"Di", "Roy", "d@x.com", "6666666666", "R4"},
	})
	res, err := f.students.ImportStudents(ctx, b.ID, buf)
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if res.Imported != 2 || len(res.Failed) != 2 {
		t.Fatalf("unexpected import result %+v", res)
	}
	if res.Failed[0].Row != 3 || res.Failed[0].Message != "email must be a valid email address" {
		t.Fatalf("unexpected first failure %+v", res.Failed[0])
	}
	if res.Failed[1].Row != 4 || !strings.Contains(res.Failed[1].Message, "roll number") {
		t.Fatalf("unexpected second failure %+v", res.Failed[1])
	}

	name, data, err := f.students.ExportStudents(ctx, b.ID)
	if err != nil {
		t.Fatalf("ExportStudents: %v", err)
	}
	if name != "B1-students.xlsx" {
		t.Fatalf("unexpected file name %q", name)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer wb.Close()
	rows, _ := wb.GetRows(wb.GetSheetName(0))
	if len(rows) != 3 || rows[1][0] != "Ann Lee" || rows[2][0] != "Di Roy" {
		t.Fatalf("unexpected export rows %v", rows)
	}

	if _, err := f.students.ImportStudents(ctx, b.ID, strings.NewReader("not a workbook")); !errors.Is(err, ErrInvalidSpreadsheet) {
		t.Fatalf("expected spreadsheet error, got %v", err)
	}
	if _, err := f.students.ImportStudents(ctx, "missing", importWorkbook(t, nil)); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected batch not found, got %v", err)
	}
}

type chanMailer struct{ sent chan email.EnrollmentNotice }

func (m *chanMailer) SendEnrollmentNotice(n email.EnrollmentNotice) error {
	m.sent <- n
	return nil
}

func TestAddStudentSendsEnrollmentNotice(t *testing.T) {
	mailer := &chanMailer{sent: make(chan email.EnrollmentNotice, 1)}
	f := newFixture(t, mailer)
	b := f.createBatch(t, "B1")
	if _, err := f.students.AddStudent(context.Background(), studentRequest(b.ID, "Ann", "Lee", "R1")); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}

	select {
	case n := <-mailer.sent:
		if n.ToName != "Ann Lee" || n.BatchName != "B1" || n.StartDate != "2024-01-01" {
			t.Fatalf("unexpected notice %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("enrollment notice was not sent")
	}
}
