package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/internal/services"
	apperrors "github.com/yasyhadav121/codecrack/pkg/errors"
	"github.com/yasyhadav121/codecrack/pkg/logger"
	"github.com/yasyhadav121/codecrack/pkg/utils"
	"gorm.io/gorm"
)

// Solved lists change only on an accepted submission; a short TTL keeps
// the cache honest across instances.
const cacheTTLSolved = 5 * time.Minute

type testCaseInput struct {
	Input       string `json:"input" binding:"required"`
	Output      string `json:"output" binding:"required"`
	Explanation string `json:"explanation"`
}

type codeEntryInput struct {
	Language     string `json:"language" binding:"required"`
	InitialCode  string `json:"initialCode"`
	CompleteCode string `json:"completeCode"`
}

type ProblemInput struct {
	Title             string            `json:"title" binding:"required"`
	Description       string            `json:"description" binding:"required"`
	Difficulty        models.Difficulty `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Tags              models.Tag        `json:"tags" binding:"required,oneof=array linkedList graph dp"`
	VisibleTestCases  []testCaseInput   `json:"visibleTestCases" binding:"required,min=1"`
	HiddenTestCases   []testCaseInput   `json:"hiddenTestCases" binding:"required,min=1"`
	StartCode         []codeEntryInput  `json:"startCode" binding:"required"`
	ReferenceSolution []codeEntryInput  `json:"referenceSolution" binding:"required"`
}

// validateLanguageSet enforces the fixed-length invariant: exactly one
// entry per supported language, no more, no fewer.
func validateLanguageSet(entries []codeEntryInput, field string) error {
	if len(entries) != len(models.SupportedLanguages) {
		return fmt.Errorf("%s must contain exactly %d entries, one per language", field, len(models.SupportedLanguages))
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		lang := models.NormalizeLanguage(e.Language)
		if lang == "" {
			return fmt.Errorf("%s contains unsupported language %q", field, e.Language)
		}
		if seen[lang] {
			return fmt.Errorf("%s contains duplicate entry for %s", field, lang)
		}
		seen[lang] = true
	}
	return nil
}

// verifyReferenceSolutions runs every reference solution against the full
// test case set. A problem whose own solutions fail is rejected.
func verifyReferenceSolutions(input *ProblemInput) error {
	cases := make([]services.TestCase, 0, len(input.VisibleTestCases)+len(input.HiddenTestCases))
	for _, tc := range input.VisibleTestCases {
		cases = append(cases, services.TestCase{Input: tc.Input, Output: tc.Output})
	}
	for _, tc := range input.HiddenTestCases {
		cases = append(cases, services.TestCase{Input: tc.Input, Output: tc.Output})
	}

	for _, sol := range input.ReferenceSolution {
		result, err := services.Judge(sol.Language, sol.CompleteCode, cases)
		if err != nil {
			return fmt.Errorf("executor unavailable while validating %s solution: %w", sol.Language, err)
		}
		if !result.AllPassed {
			return fmt.Errorf("reference solution for %s does not pass all test cases", sol.Language)
		}
	}
	return nil
}

func buildProblem(input *ProblemInput, creatorID string) models.Problem {
	problem := models.Problem{
		ID:             utils.GenerateID(),
		Title:          input.Title,
		Description:    input.Description,
		Difficulty:     input.Difficulty,
		Tags:           input.Tags,
		ProblemCreator: creatorID,
	}
	for _, tc := range input.VisibleTestCases {
		problem.VisibleTestCases = append(problem.VisibleTestCases, models.VisibleTestCase{
			ID: utils.GenerateID(), Input: tc.Input, Output: tc.Output, Explanation: tc.Explanation,
		})
	}
	for _, tc := range input.HiddenTestCases {
		problem.HiddenTestCases = append(problem.HiddenTestCases, models.HiddenTestCase{
			ID: utils.GenerateID(), Input: tc.Input, Output: tc.Output,
		})
	}
	for _, sc := range input.StartCode {
		problem.StartCode = append(problem.StartCode, models.StartCode{
			ID: utils.GenerateID(), Language: models.NormalizeLanguage(sc.Language), InitialCode: sc.InitialCode,
		})
	}
	for _, rs := range input.ReferenceSolution {
		problem.ReferenceSolution = append(problem.ReferenceSolution, models.ReferenceSolution{
			ID: utils.GenerateID(), Language: models.NormalizeLanguage(rs.Language), CompleteCode: rs.CompleteCode,
		})
	}
	return problem
}

// CreateProblem handles POST /problem/create (admin).
func CreateProblem(c *gin.Context) {
	var input ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := validateLanguageSet(input.StartCode, "startCode"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validateLanguageSet(input.ReferenceSolution, "referenceSolution"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := verifyReferenceSolutions(&input); err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			c.JSON(appErr.Status, gin.H{"message": appErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	problem := buildProblem(&input, c.GetString("userId"))
	if err := database.DB.Create(&problem).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create problem")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create problem"})
		return
	}

	logger.Info().Str("problem_id", problem.ID).Str("title", problem.Title).Msg("Problem created")
	c.JSON(http.StatusCreated, problem)
}

// UpdateProblem handles PUT /problem/update/:id (admin). The payload is a
// full problem: child collections are replaced wholesale.
func UpdateProblem(c *gin.Context) {
	id := c.Param("id")

	var existing models.Problem
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Problem not found"})
		return
	}

	var input ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validateLanguageSet(input.StartCode, "startCode"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validateLanguageSet(input.ReferenceSolution, "referenceSolution"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := verifyReferenceSolutions(&input); err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			c.JSON(appErr.Status, gin.H{"message": appErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated := buildProblem(&input, existing.ProblemCreator)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	for i := range updated.VisibleTestCases {
		updated.VisibleTestCases[i].ProblemID = existing.ID
	}
	for i := range updated.HiddenTestCases {
		updated.HiddenTestCases[i].ProblemID = existing.ID
	}
	for i := range updated.StartCode {
		updated.StartCode[i].ProblemID = existing.ID
	}
	for i := range updated.ReferenceSolution {
		updated.ReferenceSolution[i].ProblemID = existing.ID
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.VisibleTestCase{}, &models.HiddenTestCase{},
			&models.StartCode{}, &models.ReferenceSolution{},
		} {
			if err := tx.Where("\"problemId\" = ?", existing.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&updated).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("problem_id", id).Msg("Failed to update problem")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update problem"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProblem handles DELETE /problem/delete/:id (admin).
func DeleteProblem(c *gin.Context) {
	id := c.Param("id")

	var problem models.Problem
	if err := database.DB.First(&problem, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Problem not found"})
		return
	}

	if err := database.DB.Select("VisibleTestCases", "HiddenTestCases", "StartCode", "ReferenceSolution").
		Delete(&problem).Error; err != nil {
		logger.Error().Err(err).Str("problem_id", id).Msg("Failed to delete problem")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete problem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Problem deleted successfully"})
}

// GetAllProblem handles GET /problem/getAllProblem.
func GetAllProblem(c *gin.Context) {
	var summaries []models.ProblemSummary
	err := database.DB.Model(&models.Problem{}).
		Select("id", "title", "difficulty", "tags").
		Order("\"createdAt\" ASC").
		Find(&summaries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch problems"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// ProblemByID handles GET /problem/problemById/:id. Hidden test cases are
// excluded by serialization; editorial video fields are merged in when a
// video exists.
func ProblemByID(c *gin.Context) {
	id := c.Param("id")

	var problem models.Problem
	err := database.DB.
		Preload("VisibleTestCases").
		Preload("StartCode").
		Preload("ReferenceSolution").
		First(&problem, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Problem not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		}
		return
	}

	var video models.SolutionVideo
	if err := database.DB.First(&video, "\"problemId\" = ?", id).Error; err == nil {
		problem.SecureURL = video.SecureURL
		problem.ThumbnailURL = video.ThumbnailURL
		problem.Duration = video.Duration
	}

	c.JSON(http.StatusOK, problem)
}

// ProblemSolvedByUser handles GET /problem/problemSolvedByUser.
func ProblemSolvedByUser(c *gin.Context) {
	userID := c.GetString("userId")
	cacheKey := "solved_problems:" + userID

	var summaries []models.ProblemSummary
	if err := database.CacheGet(cacheKey, &summaries); err == nil {
		c.JSON(http.StatusOK, summaries)
		return
	}

	user := models.User{ID: userID}
	var solved []models.Problem
	if err := database.DB.Model(&user).Association("ProblemSolved").Find(&solved); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch solved problems"})
		return
	}

	summaries = make([]models.ProblemSummary, 0, len(solved))
	for _, p := range solved {
		summaries = append(summaries, models.ProblemSummary{
			ID: p.ID, Title: p.Title, Difficulty: p.Difficulty, Tags: p.Tags,
		})
	}

	if err := database.CacheSet(cacheKey, summaries, cacheTTLSolved); err != nil {
		logger.Debug().Err(err).Msg("Failed to cache solved problems")
	}

	c.JSON(http.StatusOK, summaries)
}

// SubmittedProblem handles GET /problem/submittedProblem/:id — the calling
// user's submission history for one problem.
func SubmittedProblem(c *gin.Context) {
	userID := c.GetString("userId")
	problemID := c.Param("id")

	var submissions []models.Submission
	err := database.DB.
		Where("\"userId\" = ? AND \"problemId\" = ?", userID, problemID).
		Order("\"createdAt\" DESC").
		Find(&submissions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, submissions)
}
