package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deletedAt" json:"-"`

	FirstName string `gorm:"column:firstName" json:"firstName"`
	LastName  string `gorm:"column:lastName" json:"lastName"`
	EmailID   string `gorm:"column:emailId;uniqueIndex" json:"emailId"`
	Age       *int   `json:"age,omitempty"`

	Role Role `gorm:"type:text;default:'user'" json:"role"`

	Password string `json:"-"`

	// Problems this user has fully solved at least once
	ProblemSolved []Problem `gorm:"many2many:solved_problems" json:"problemSolved,omitempty"`
}

func (User) TableName() string {
	return "users"
}
