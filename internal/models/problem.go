package models

import (
	"time"

	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Tag string

const (
	TagArray      Tag = "array"
	TagLinkedList Tag = "linkedList"
	TagGraph      Tag = "graph"
	TagDP         Tag = "dp"
)

// SupportedLanguages is the closed set of editor languages. Start code and
// reference solutions must carry exactly one entry per language.
var SupportedLanguages = []string{"C++", "Java", "JavaScript"}

// NormalizeLanguage maps editor language keys to their display form used in
// startCode/referenceSolution entries. Unknown keys come back empty.
func NormalizeLanguage(lang string) string {
	switch lang {
	case "cpp", "c++", "C++":
		return "C++"
	case "java", "Java":
		return "Java"
	case "javascript", "js", "JavaScript":
		return "JavaScript"
	}
	return ""
}

type Problem struct {
	ID        string         `gorm:"primaryKey;type:text" json:"_id"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deletedAt" json:"-"`

	Title       string     `json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  Difficulty `gorm:"type:text" json:"difficulty"`
	Tags        Tag        `gorm:"type:text" json:"tags"`

	VisibleTestCases []VisibleTestCase `gorm:"foreignKey:ProblemID;constraint:OnDelete:CASCADE" json:"visibleTestCases"`

	// Hidden cases are used for scoring only and are never serialized to
	// the client, regardless of role.
	HiddenTestCases []HiddenTestCase `gorm:"foreignKey:ProblemID;constraint:OnDelete:CASCADE" json:"-"`

	StartCode         []StartCode         `gorm:"foreignKey:ProblemID;constraint:OnDelete:CASCADE" json:"startCode"`
	ReferenceSolution []ReferenceSolution `gorm:"foreignKey:ProblemID;constraint:OnDelete:CASCADE" json:"referenceSolution,omitempty"`

	ProblemCreator string `gorm:"column:problemCreator" json:"problemCreator"`

	// Editorial video fields merged into problemById responses; stored in
	// SolutionVideo, never persisted on the problem row.
	SecureURL    string  `gorm:"-" json:"secureUrl,omitempty"`
	ThumbnailURL string  `gorm:"-" json:"thumbnailUrl,omitempty"`
	Duration     float64 `gorm:"-" json:"duration,omitempty"`
}

func (Problem) TableName() string {
	return "problems"
}

type VisibleTestCase struct {
	ID          string `gorm:"primaryKey;type:text" json:"-"`
	ProblemID   string `gorm:"column:problemId;index" json:"-"`
	Input       string `gorm:"type:text" json:"input"`
	Output      string `gorm:"type:text" json:"output"`
	Explanation string `gorm:"type:text" json:"explanation"`
}

func (VisibleTestCase) TableName() string {
	return "visible_test_cases"
}

type HiddenTestCase struct {
	ID        string `gorm:"primaryKey;type:text" json:"-"`
	ProblemID string `gorm:"column:problemId;index" json:"-"`
	Input     string `gorm:"type:text" json:"input"`
	Output    string `gorm:"type:text" json:"output"`
}

func (HiddenTestCase) TableName() string {
	return "hidden_test_cases"
}

type StartCode struct {
	ID          string `gorm:"primaryKey;type:text" json:"-"`
	ProblemID   string `gorm:"column:problemId;index" json:"-"`
	Language    string `json:"language"`
	InitialCode string `gorm:"column:initialCode;type:text" json:"initialCode"`
}

func (StartCode) TableName() string {
	return "start_codes"
}

type ReferenceSolution struct {
	ID           string `gorm:"primaryKey;type:text" json:"-"`
	ProblemID    string `gorm:"column:problemId;index" json:"-"`
	Language     string `json:"language"`
	CompleteCode string `gorm:"column:completeCode;type:text" json:"completeCode"`
}

func (ReferenceSolution) TableName() string {
	return "reference_solutions"
}

// ProblemSummary is the list shape for getAllProblem / problemSolvedByUser.
type ProblemSummary struct {
	ID         string     `json:"_id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       Tag        `json:"tags"`
}
