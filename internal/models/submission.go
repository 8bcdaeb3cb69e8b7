package models

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionWrong    SubmissionStatus = "wrong"
	SubmissionError    SubmissionStatus = "error"
)

type Submission struct {
	ID        string    `gorm:"primaryKey;type:text" json:"_id"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`

	UserID    string `gorm:"column:userId;index" json:"userId"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	ProblemID string `gorm:"column:problemId;index" json:"problemId"`

	Code     string `gorm:"type:text" json:"code"`
	Language string `json:"language"`

	Status       SubmissionStatus `gorm:"type:text;default:'pending'" json:"status"`
	Runtime      float64          `json:"runtime"` // seconds
	Memory       int              `json:"memory"`  // KB
	ErrorMessage string           `gorm:"column:errorMessage;type:text" json:"errorMessage,omitempty"`

	TestCasesPassed int `gorm:"column:testCasesPassed" json:"testCasesPassed"`
	TestCasesTotal  int `gorm:"column:testCasesTotal" json:"testCasesTotal"`
}

func (Submission) TableName() string {
	return "submissions"
}
