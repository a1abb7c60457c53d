package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/controllers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories/memory"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/services"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/filestorage"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/validation"
)

func newTestRouter(t *testing.T, requireToken bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	repos := memory.New()
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "registrar"})
	lgr := zerolog.Nop()

	fileSvc := services.NewFileService(storage, 1<<20, nil, lgr)
	ctrl := Controllers{
		Auth: controllers.NewAuthController(
			services.NewAuthService(auth.StaticCredentials{Username: "admin", Password: "secret"}, jwtSvc, nil, nil, lgr), lgr),
		Batch:   controllers.NewBatchController(services.NewBatchService(repos.Batches, repos.Students)),
		Student: controllers.NewStudentController(services.NewStudentService(repos.Students, repos.Batches, fileSvc, nil, nil, lgr), 0),
		Course:  controllers.NewCourseController(services.NewCourseService(repos.Courses)),
		File:    controllers.NewFileController(fileSvc),
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	SetupRouter(router, ctrl, middleware.NewAuthMiddleware(jwtSvc, requireToken))
	return router
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func TestAdminLogin(t *testing.T) {
	r := newTestRouter(t, false)

	w, body := doJSON(t, r, http.MethodPost, "/api/adminLogin", dto.LoginRequest{Username: "root", Password: "nope"})
	expectStatus(t, w, http.StatusBadRequest)
	if body["error"] != true || body["field"] != "username" {
		t.Fatalf("expected username mismatch, got %v", body)
	}

	_, body = doJSON(t, r, http.MethodPost, "/api/adminLogin", dto.LoginRequest{Username: "admin", Password: "nope"})
	if body["field"] != "password" {
		t.Fatalf("expected password mismatch, got %v", body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/api/adminLogin", dto.LoginRequest{Username: "admin", Password: "secret"})
	expectStatus(t, w, http.StatusOK)
	if body["error"] != false || body["token"] == "" {
		t.Fatalf("unexpected login body %v", body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/api/adminLogin", map[string]string{"username": "admin"})
	expectStatus(t, w, http.StatusBadRequest)
	if body["field"] != "password" {
		t.Fatalf("expected missing password field, got %v", body)
	}
}

func TestTokenEnforcement(t *testing.T) {
	r := newTestRouter(t, true)

	w, _ := doJSON(t, r, http.MethodGet, "/api/getAllBatches", nil)
	expectStatus(t, w, http.StatusUnauthorized)

	_, body := doJSON(t, r, http.MethodPost, "/api/adminLogin", dto.LoginRequest{Username: "admin", Password: "secret"})
	token, _ := body["token"].(string)
	w, _ = doJSON(t, r, http.MethodGet, "/api/getAllBatches", nil, "Authorization", "Bearer "+token)
	expectStatus(t, w, http.StatusOK)

	w, _ = doJSON(t, r, http.MethodGet, "/api/health", nil)
	expectStatus(t, w, http.StatusOK)
}

func TestBatchAndStudentScenario(t *testing.T) {
	r := newTestRouter(t, false)

	w, body := doJSON(t, r, http.MethodPost, "/api/createBatch", dto.BatchRequest{
		BatchName: "B1", Courses: []string{"Web Development"}, StartDate: "2024-01-01", EndDate: "2024-06-01", Instructor: "Jane",
	})
	expectStatus(t, w, http.StatusCreated)
	batch := body["batch"].(map[string]any)
	batchID := batch["_id"].(string)
	if batch["batchName"] != "B1" || len(batch["students"].([]any)) != 0 {
		t.Fatalf("unexpected batch %v", batch)
	}

	w, body = doJSON(t, r, http.MethodPost, "/api/addStudentToBatch", dto.AddStudentRequest{Data: dto.StudentData{
		FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Mobile: "9999999999", RollNo: "R1", Batch: batchID,
	}})
	expectStatus(t, w, http.StatusCreated)
	student := body["student"].(map[string]any)
	studentID := student["_id"].(string)
	if student["name"] != "Ann Lee" || student["batch"] != batchID {
		t.Fatalf("unexpected student %v", student)
	}

	w, body = doJSON(t, r, http.MethodGet, "/api/getStudentsInBatch?batchId="+batchID, nil)
	expectStatus(t, w, http.StatusOK)
	students := body["students"].([]any)
	if len(students) != 1 || students[0].(map[string]any)["_id"] != studentID {
		t.Fatalf("expected Ann Lee in B1, got %v", students)
	}

	w, body = doJSON(t, r, http.MethodGet, "/api/getStudentDetails?id="+studentID, nil)
	expectStatus(t, w, http.StatusOK)
	detailBatch, ok := body["student"].(map[string]any)["batch"].(map[string]any)
	if !ok || detailBatch["_id"] != batchID {
		t.Fatalf("expected expanded batch, got %v", body["student"])
	}

	w, body = doJSON(t, r, http.MethodGet, "/api/fetchStudents?page=1&limit=10&search=ANN", nil)
	expectStatus(t, w, http.StatusOK)
	if body["total"] != float64(1) || body["totalPages"] != float64(1) || body["page"] != float64(1) || body["limit"] != float64(10) {
		t.Fatalf("unexpected page %v", body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/api/addStudentToBatch", dto.AddStudentRequest{Data: dto.StudentData{
		FirstName: "Bo", LastName: "Chen", Email: "b@x.com", Mobile: "9999999999", RollNo: "R1", Batch: batchID,
	}})
	expectStatus(t, w, http.StatusConflict)
	if body["field"] != "rollNo" {
		t.Fatalf("expected rollNo conflict, got %v", body)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/api/deleteBatch?id="+batchID, nil)
	expectStatus(t, w, http.StatusConflict)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/deleteStudent?id="+studentID, nil)
	expectStatus(t, w, http.StatusOK)
	w, _ = doJSON(t, r, http.MethodGet, "/api/getStudentDetails?id="+studentID, nil)
	expectStatus(t, w, http.StatusNotFound)

	w, body = doJSON(t, r, http.MethodPut, "/api/editBatch?id="+batchID, dto.BatchRequest{
		BatchName: "B1 evening", Courses: []string{"Web Development"}, StartDate: "2024-01-01", EndDate: "2024-07-01", Instructor: "Raj",
	})
	expectStatus(t, w, http.StatusOK)
	if body["batch"].(map[string]any)["instructor"] != "Raj" {
		t.Fatalf("unexpected edited batch %v", body)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/api/deleteBatch?id="+batchID, nil)
	expectStatus(t, w, http.StatusOK)
	w, _ = doJSON(t, r, http.MethodGet, "/api/getBatch?id="+batchID, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestAddStudentValidation(t *testing.T) {
	r := newTestRouter(t, false)

	w, body := doJSON(t, r, http.MethodPost, "/api/addStudentToBatch", dto.AddStudentRequest{Data: dto.StudentData{
		FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Mobile: "9999999999", RollNo: "R1", Batch: "missing",
	}})
	expectStatus(t, w, http.StatusNotFound)
	if body["message"] != "Batch not found" {
		t.Fatalf("unexpected body %v", body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/api/addStudentToBatch", dto.AddStudentRequest{Data: dto.StudentData{
		FirstName: "Ann", LastName: "Lee", Email: "nope", Mobile: "9999999999", RollNo: "R1", Batch: "b",
	}})
	expectStatus(t, w, http.StatusBadRequest)
	if body["field"] != "email" {
		t.Fatalf("expected email field, got %v", body)
	}

	data := map[string]any{
		"firstName": "Ann", "lastName": "Lee", "email": "a@x.com", "mobile": "9999999999", "rollNo": "R1", "batch": "missing",
	}
	w, body = doJSON(t, r, http.MethodPost, "/api/addStudentToBatch", map[string]any{"data": data, "photo": map[string]any{}})
	expectStatus(t, w, http.StatusBadRequest)
	if body["field"] != "fileUrl" {
		t.Fatalf("expected empty photo to be rejected on fileUrl, got %v", body)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/addStudentToBatch", map[string]any{"data": data, "photo": nil})
	expectStatus(t, w, http.StatusNotFound)

	w, body = doJSON(t, r, http.MethodPost, "/api/createBatch", dto.BatchRequest{
		BatchName: "B1", Courses: []string{"Go"}, StartDate: "2024-06-01", EndDate: "2024-01-01", Instructor: "Jane",
	})
	expectStatus(t, w, http.StatusBadRequest)
	if body["field"] != "endDate" {
		t.Fatalf("expected endDate field, got %v", body)
	}
}

func TestCourseEndpoints(t *testing.T) {
	r := newTestRouter(t, false)

	w, body := doJSON(t, r, http.MethodPost, "/api/addCourse", dto.CreateCourseRequest{Name: "Go", Duration: "3 months", Fees: 100, Description: "Backend"})
	expectStatus(t, w, http.StatusCreated)
	courseID := body["course"].(map[string]any)["_id"].(string)

	w, _ = doJSON(t, r, http.MethodPost, "/api/addCourse", dto.CreateCourseRequest{Name: "Go", Description: "dup"})
	expectStatus(t, w, http.StatusConflict)

	w, _ = doJSON(t, r, http.MethodPost, "/api/addCourse", map[string]any{"name": "Rust", "fees": -1, "description": "x"})
	expectStatus(t, w, http.StatusBadRequest)

	w, body = doJSON(t, r, http.MethodGet, "/api/getAllCourses", nil)
	expectStatus(t, w, http.StatusOK)
	if len(body["courses"].([]any)) != 1 {
		t.Fatalf("unexpected courses %v", body)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/api/deleteCourse?id="+courseID, nil)
	expectStatus(t, w, http.StatusOK)
	w, _ = doJSON(t, r, http.MethodDelete, "/api/deleteCourse?id="+courseID, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestUploadAndDeleteFiles(t *testing.T) {
	r := newTestRouter(t, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("folder", "certificates")
	part, _ := mw.CreateFormFile("file", "cert.pdf")
	_, _ = part.Write([]byte("%PDF-1.4"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/uploadFile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	expectStatus(t, w, http.StatusCreated)

	var uploaded dto.UploadFileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if uploaded.File.DeleteToken == "" || !strings.HasPrefix(uploaded.File.FileURL, "http://localhost:8080/uploads/certificates/") {
		t.Fatalf("unexpected file ref %+v", uploaded.File)
	}

	w, body := doJSON(t, r, http.MethodPost, "/api/deleteFiles", dto.DeleteFilesRequest{Tokens: []string{uploaded.File.DeleteToken, "certificates/none.pdf"}})
	expectStatus(t, w, http.StatusOK)
	results := body["results"].([]any)
	if body["error"] != true || len(results) != 2 {
		t.Fatalf("unexpected delete body %v", body)
	}
	if results[0].(map[string]any)["deleted"] != true || results[1].(map[string]any)["deleted"] != false {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestExportUnknownBatch(t *testing.T) {
	r := newTestRouter(t, false)
	w, _ := doJSON(t, r, http.MethodGet, "/api/exportStudents?batchId=missing", nil)
	expectStatus(t, w, http.StatusNotFound)

	w, _ = doJSON(t, r, http.MethodGet, "/api/importTemplate", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Header().Get("Content-Disposition"), "students-import-template.xlsx") {
		t.Fatalf("unexpected headers %v", w.Header())
	}
}
