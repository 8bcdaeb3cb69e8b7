package models

import "time"

// SolutionVideo stores Cloudinary metadata for a problem's editorial video.
// The video bytes live on Cloudinary; the browser uploads directly using a
// signature issued by this service.
type SolutionVideo struct {
	ID        string    `gorm:"primaryKey;type:text" json:"_id"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`

	ProblemID string `gorm:"column:problemId;uniqueIndex" json:"problemId"`
	UserID    string `gorm:"column:userId" json:"userId"`

	CloudinaryPublicID string  `gorm:"column:cloudinaryPublicId" json:"cloudinaryPublicId"`
	SecureURL          string  `gorm:"column:secureUrl" json:"secureUrl"`
	ThumbnailURL       string  `gorm:"column:thumbnailUrl" json:"thumbnailUrl"`
	Duration           float64 `json:"duration"`
}

func (SolutionVideo) TableName() string {
	return "solution_videos"
}
