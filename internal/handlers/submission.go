package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/internal/services"
	apperrors "github.com/yasyhadav121/codecrack/pkg/errors"
	"github.com/yasyhadav121/codecrack/pkg/logger"
	"github.com/yasyhadav121/codecrack/pkg/utils"
)

type SubmissionInput struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
}

func loadProblemForJudging(c *gin.Context) (*models.Problem, *SubmissionInput, bool) {
	var input SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return nil, nil, false
	}

	if models.NormalizeLanguage(input.Language) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported language: " + input.Language})
		return nil, nil, false
	}

	var problem models.Problem
	err := database.DB.
		Preload("VisibleTestCases").
		Preload("HiddenTestCases").
		First(&problem, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Problem not found"})
		return nil, nil, false
	}

	return &problem, &input, true
}

func respondJudgeError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.Status, gin.H{"message": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Code execution failed"})
}

// RunCode handles POST /submission/run/:id. Judged against visible test
// cases only; nothing is persisted.
func RunCode(c *gin.Context) {
	problem, input, ok := loadProblemForJudging(c)
	if !ok {
		return
	}

	cases := make([]services.TestCase, 0, len(problem.VisibleTestCases))
	for _, tc := range problem.VisibleTestCases {
		cases = append(cases, services.TestCase{Input: tc.Input, Output: tc.Output})
	}

	result, err := services.Judge(input.Language, input.Code, cases)
	if err != nil {
		logger.Error().Err(err).Str("problem_id", problem.ID).Msg("Run failed: executor error")
		respondJudgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   result.AllPassed,
		"runtime":   result.Runtime,
		"memory":    result.Memory,
		"testCases": result.Cases,
	})
}

// SubmitCode handles POST /submission/submit/:id. Judged against visible
// and hidden test cases; the attempt is recorded and, when accepted, the
// problem is added to the user's solved set.
func SubmitCode(c *gin.Context) {
	userID := c.GetString("userId")

	problem, input, ok := loadProblemForJudging(c)
	if !ok {
		return
	}

	cases := make([]services.TestCase, 0, len(problem.VisibleTestCases)+len(problem.HiddenTestCases))
	for _, tc := range problem.VisibleTestCases {
		cases = append(cases, services.TestCase{Input: tc.Input, Output: tc.Output})
	}
	for _, tc := range problem.HiddenTestCases {
		cases = append(cases, services.TestCase{Input: tc.Input, Output: tc.Output})
	}

	submission := models.Submission{
		ID:             utils.GenerateID(),
		UserID:         userID,
		ProblemID:      problem.ID,
		Code:           input.Code,
		Language:       input.Language,
		Status:         models.SubmissionPending,
		TestCasesTotal: len(cases),
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record submission"})
		return
	}

	result, err := services.Judge(input.Language, input.Code, cases)
	if err != nil {
		submission.Status = models.SubmissionError
		submission.ErrorMessage = "Executor unavailable"
		database.DB.Save(&submission)

		logger.Error().Err(err).Str("problem_id", problem.ID).Msg("Submit failed: executor error")
		respondJudgeError(c, err)
		return
	}

	passed := 0
	errorDetail := ""
	for _, cr := range result.Cases {
		switch cr.StatusID {
		case services.StatusAccepted:
			passed++
		case services.StatusCompileError:
			errorDetail = "Compilation Error"
		case services.StatusRuntimeError:
			if errorDetail == "" {
				errorDetail = "Runtime Error"
			}
		default:
			if errorDetail == "" {
				errorDetail = "Wrong Answer"
			}
		}
	}

	submission.Runtime = result.Runtime
	submission.Memory = result.Memory
	submission.TestCasesPassed = passed
	if result.AllPassed {
		submission.Status = models.SubmissionAccepted
	} else if errorDetail == "Compilation Error" || errorDetail == "Runtime Error" {
		submission.Status = models.SubmissionError
		submission.ErrorMessage = errorDetail
	} else {
		submission.Status = models.SubmissionWrong
		submission.ErrorMessage = errorDetail
	}
	database.DB.Save(&submission)

	if result.AllPassed {
		// Idempotent: Append on a many2many upserts by primary key.
		user := models.User{ID: userID}
		if err := database.DB.Model(&user).Association("ProblemSolved").Append(&models.Problem{ID: problem.ID}); err != nil {
			logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to record solved problem")
		}
		if err := database.CacheInvalidate("solved_problems:" + userID); err != nil {
			logger.Debug().Err(err).Msg("Failed to invalidate solved cache")
		}
	}

	logger.Info().
		Str("user_id", userID).
		Str("problem_id", problem.ID).
		Str("status", string(submission.Status)).
		Int("passed", passed).
		Int("total", len(cases)).
		Msg("Submission judged")

	response := gin.H{
		"accepted":        result.AllPassed,
		"passedTestCases": passed,
		"totalTestCases":  len(cases),
		"runtime":         result.Runtime,
		"memory":          result.Memory,
	}
	if !result.AllPassed {
		response["error"] = errorDetail
	}
	c.JSON(http.StatusOK, response)
}
