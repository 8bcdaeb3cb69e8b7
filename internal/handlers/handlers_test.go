package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/config"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// SetupTestDB initializes a fresh in-memory SQLite DB for one test.
func SetupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.CloudinaryCloudName = "test-cloud"
	config.AppConfig.CloudinaryAPIKey = "test-key"
	config.AppConfig.CloudinaryAPISecret = "test-api-secret"

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Problem{},
		&models.VisibleTestCase{},
		&models.HiddenTestCase{},
		&models.StartCode{},
		&models.ReferenceSolution{},
		&models.Submission{},
		&models.SolutionVideo{},
	)
}

// newTestContext builds a gin test context with an optional JSON body.
func newTestContext(t *testing.T, method, uri string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, uri, reqBody)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// fakeExecutor stands in for the remote execution API. Submitted code
// containing "COMPILE_FAIL" gets a compile error, "CRASH" a runtime
// error; everything else echoes the per-stdin canned output.
func fakeExecutor(t *testing.T, outputs map[string]string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req services.ExecuteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var resp services.ExecuteResponse
		resp.Language = req.Language

		code := ""
		if len(req.Files) > 0 {
			code = req.Files[0].Content
		}
		switch {
		case strings.Contains(code, "COMPILE_FAIL"):
			resp.Compile.Code = 1
			resp.Compile.Stderr = "error: expected ';'"
		case strings.Contains(code, "CRASH"):
			resp.Run.Code = 1
			resp.Run.Stderr = "segmentation fault"
		default:
			resp.Run.Stdout = outputs[req.Stdin]
			resp.Run.CPUTime = 12.0
			resp.Run.Memory = 1024
		}

		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	config.AppConfig.ExecutorURL = server.URL
}

func createTestUser(t *testing.T, id, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{ID: id, FirstName: "Test", EmailID: email, Role: role}
	if err := database.DB.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestProblem(t *testing.T, id string) *models.Problem {
	t.Helper()
	problem := &models.Problem{
		ID:          id,
		Title:       "Sum of Two Numbers",
		Description: "Read two integers and print their sum.",
		Difficulty:  models.DifficultyEasy,
		Tags:        models.TagArray,
		VisibleTestCases: []models.VisibleTestCase{
			{ID: id + "-v1", Input: "1 2", Output: "3", Explanation: "1+2=3"},
		},
		HiddenTestCases: []models.HiddenTestCase{
			{ID: id + "-h1", Input: "10 20", Output: "30"},
		},
		StartCode: []models.StartCode{
			{ID: id + "-s1", Language: "C++", InitialCode: "// cpp"},
			{ID: id + "-s2", Language: "Java", InitialCode: "// java"},
			{ID: id + "-s3", Language: "JavaScript", InitialCode: "// js"},
		},
		ReferenceSolution: []models.ReferenceSolution{
			{ID: id + "-r1", Language: "C++", CompleteCode: "ref cpp " + id},
			{ID: id + "-r2", Language: "Java", CompleteCode: "ref java " + id},
			{ID: id + "-r3", Language: "JavaScript", CompleteCode: "ref js " + id},
		},
	}
	if err := database.DB.Create(problem).Error; err != nil {
		t.Fatalf("create test problem: %v", err)
	}
	return problem
}
