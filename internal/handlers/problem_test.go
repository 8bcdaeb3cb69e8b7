package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
)

func problemPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Sum of Two Numbers",
		"description": "Read two integers and print their sum.",
		"difficulty":  "easy",
		"tags":        "array",
		"visibleTestCases": []map[string]string{
			{"input": "1 2", "output": "3", "explanation": "1+2=3"},
		},
		"hiddenTestCases": []map[string]string{
			{"input": "10 20", "output": "30"},
		},
		"startCode": []map[string]string{
			{"language": "C++", "initialCode": "// cpp"},
			{"language": "Java", "initialCode": "// java"},
			{"language": "JavaScript", "initialCode": "// js"},
		},
		"referenceSolution": []map[string]string{
			{"language": "C++", "completeCode": "ref-cpp-create"},
			{"language": "Java", "completeCode": "ref-java-create"},
			{"language": "JavaScript", "completeCode": "ref-js-create"},
		},
	}
}

func TestCreateProblem_Success(t *testing.T) {
	SetupTestDB(t)
	fakeExecutor(t, map[string]string{"1 2": "3", "10 20": "30"})
	createTestUser(t, "admin1", "admin@example.com", models.RoleAdmin)

	c, w := newTestContext(t, "POST", "/problem/create", problemPayload())
	c.Set("userId", "admin1")
	CreateProblem(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.NotEmpty(t, resp["_id"])
	assert.Equal(t, "admin1", resp["problemCreator"])

	var count int64
	database.DB.Model(&models.Problem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateProblem_RejectsFailingReferenceSolution(t *testing.T) {
	SetupTestDB(t)
	// Executor answers "wrong" for every case: no reference solution passes.
	fakeExecutor(t, map[string]string{"1 2": "999", "10 20": "999"})
	createTestUser(t, "admin1", "admin@example.com", models.RoleAdmin)

	payload := problemPayload()
	payload["referenceSolution"] = []map[string]string{
		{"language": "C++", "completeCode": "ref-cpp-bad"},
		{"language": "Java", "completeCode": "ref-java-bad"},
		{"language": "JavaScript", "completeCode": "ref-js-bad"},
	}

	c, w := newTestContext(t, "POST", "/problem/create", payload)
	c.Set("userId", "admin1")
	CreateProblem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Problem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateProblem_RequiresAllThreeLanguages(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "admin1", "admin@example.com", models.RoleAdmin)

	payload := problemPayload()
	payload["startCode"] = []map[string]string{
		{"language": "C++", "initialCode": "// cpp"},
	}

	c, w := newTestContext(t, "POST", "/problem/create", payload)
	c.Set("userId", "admin1")
	CreateProblem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateLanguageSet(t *testing.T) {
	full := []codeEntryInput{
		{Language: "C++"}, {Language: "Java"}, {Language: "JavaScript"},
	}
	assert.NoError(t, validateLanguageSet(full, "startCode"))

	short := full[:2]
	assert.Error(t, validateLanguageSet(short, "startCode"))

	duplicated := []codeEntryInput{
		{Language: "C++"}, {Language: "cpp"}, {Language: "Java"},
	}
	assert.Error(t, validateLanguageSet(duplicated, "startCode"))

	unknown := []codeEntryInput{
		{Language: "C++"}, {Language: "Java"}, {Language: "Rust"},
	}
	assert.Error(t, validateLanguageSet(unknown, "startCode"))
}

func TestGetAllProblem_ReturnsSummaries(t *testing.T) {
	SetupTestDB(t)
	createTestProblem(t, "p1")

	c, w := newTestContext(t, "GET", "/problem/getAllProblem", nil)
	GetAllProblem(c)

	assert.Equal(t, http.StatusOK, w.Code)
	// Summaries carry no statements or test cases.
	assert.Contains(t, w.Body.String(), "Sum of Two Numbers")
	assert.NotContains(t, w.Body.String(), "Read two integers")
	assert.NotContains(t, w.Body.String(), "visibleTestCases")
}

func TestProblemByID_WithholdsHiddenCases(t *testing.T) {
	SetupTestDB(t)
	createTestProblem(t, "p1")

	c, w := newTestContext(t, "GET", "/problem/problemById/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	ProblemByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 2")
	// The hidden case input must never reach the client.
	assert.NotContains(t, w.Body.String(), "10 20")
	assert.NotContains(t, w.Body.String(), "hiddenTestCases")
}

func TestProblemByID_MergesVideoFields(t *testing.T) {
	SetupTestDB(t)
	createTestProblem(t, "p1")
	database.DB.Create(&models.SolutionVideo{
		ID: "v1", ProblemID: "p1", UserID: "admin1",
		CloudinaryPublicID: "codecrack-solutions/p1_1",
		SecureURL:          "https://res.cloudinary.com/test-cloud/video/upload/p1.mp4",
		ThumbnailURL:       "https://res.cloudinary.com/test-cloud/video/upload/so_0/p1.jpg",
		Duration:           93.5,
	})

	c, w := newTestContext(t, "GET", "/problem/problemById/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	ProblemByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "https://res.cloudinary.com/test-cloud/video/upload/p1.mp4", resp["secureUrl"])
	assert.Equal(t, 93.5, resp["duration"])
}

func TestProblemByID_NotFound(t *testing.T) {
	SetupTestDB(t)

	c, w := newTestContext(t, "GET", "/problem/problemById/absent", nil)
	c.Params = gin.Params{{Key: "id", Value: "absent"}}
	ProblemByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProblem_RemovesChildren(t *testing.T) {
	SetupTestDB(t)
	createTestProblem(t, "p1")

	c, w := newTestContext(t, "DELETE", "/problem/delete/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	DeleteProblem(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var problems, hidden int64
	database.DB.Model(&models.Problem{}).Where("id = ?", "p1").Count(&problems)
	database.DB.Model(&models.HiddenTestCase{}).Where("\"problemId\" = ?", "p1").Count(&hidden)
	assert.Equal(t, int64(0), problems)
	assert.Equal(t, int64(0), hidden)
}

func TestProblemSolvedByUser_EmptyForNewUser(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "u1", "asha@example.com", models.RoleUser)

	c, w := newTestContext(t, "GET", "/problem/problemSolvedByUser", nil)
	c.Set("userId", "u1")
	ProblemSolvedByUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestSubmittedProblem_ListsOwnHistoryOnly(t *testing.T) {
	SetupTestDB(t)
	createTestUser(t, "u1", "asha@example.com", models.RoleUser)
	createTestUser(t, "u2", "ravi@example.com", models.RoleUser)
	database.DB.Create(&models.Submission{ID: "s1", UserID: "u1", ProblemID: "p1", Code: "mine", Language: "C++"})
	database.DB.Create(&models.Submission{ID: "s2", UserID: "u2", ProblemID: "p1", Code: "theirs", Language: "C++"})

	c, w := newTestContext(t, "GET", "/problem/submittedProblem/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	c.Set("userId", "u1")
	SubmittedProblem(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mine")
	assert.NotContains(t, w.Body.String(), "theirs")
}
