package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/internal/services"
	"github.com/yasyhadav121/codecrack/pkg/logger"
	"github.com/yasyhadav121/codecrack/pkg/utils"
)

// GenerateUploadSignature handles GET /video/create/:id (admin). Issues a
// Cloudinary signature bundle for a direct browser upload.
func GenerateUploadSignature(c *gin.Context) {
	problemID := c.Param("id")

	var problem models.Problem
	if err := database.DB.First(&problem, "id = ?", problemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Problem not found"})
		return
	}

	c.JSON(http.StatusOK, services.NewUploadSignature(problemID))
}

type SaveVideoInput struct {
	ProblemID          string  `json:"problemId" binding:"required"`
	CloudinaryPublicID string  `json:"cloudinaryPublicId" binding:"required"`
	SecureURL          string  `json:"secureUrl" binding:"required,url"`
	Duration           float64 `json:"duration"`
}

// SaveVideoMetadata handles POST /video/save (admin). Upserts the editorial
// video for a problem; one video per problem.
func SaveVideoMetadata(c *gin.Context) {
	var input SaveVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var problem models.Problem
	if err := database.DB.First(&problem, "id = ?", input.ProblemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Problem not found"})
		return
	}

	video := models.SolutionVideo{
		ProblemID:          input.ProblemID,
		UserID:             c.GetString("userId"),
		CloudinaryPublicID: input.CloudinaryPublicID,
		SecureURL:          input.SecureURL,
		ThumbnailURL:       services.ThumbnailURL(input.CloudinaryPublicID),
		Duration:           input.Duration,
	}

	var existing models.SolutionVideo
	if err := database.DB.First(&existing, "\"problemId\" = ?", input.ProblemID).Error; err == nil {
		video.ID = existing.ID
		video.CreatedAt = existing.CreatedAt
	} else {
		video.ID = utils.GenerateID()
	}

	if err := database.DB.Save(&video).Error; err != nil {
		logger.Error().Err(err).Str("problem_id", input.ProblemID).Msg("Failed to save video metadata")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save video metadata"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"videoSolution": video})
}

// DeleteVideo handles DELETE /video/delete/:id (admin), keyed by problem id.
func DeleteVideo(c *gin.Context) {
	problemID := c.Param("id")

	result := database.DB.Where("\"problemId\" = ?", problemID).Delete(&models.SolutionVideo{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete video"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No video found for this problem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
