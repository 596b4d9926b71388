package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Exam struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description,omitempty"`
	CourseID     string         `json:"course_id" gorm:"not null;index"`
	Duration     int            `json:"duration" gorm:"not null"` // minutes
	TotalMarks   float64        `json:"total_marks" gorm:"not null"`
	PassingMarks float64        `json:"passing_marks" gorm:"not null"`
	StartTime    time.Time      `json:"start_time" gorm:"not null"`
	EndTime      time.Time      `json:"end_time" gorm:"not null"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	Sessions     []ExamSession  `json:"sessions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
