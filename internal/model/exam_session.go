package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStatus is the exam session state machine. COMPLETED and EXPIRED are
// terminal; no transition ever leaves them.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
	SessionExpired    SessionStatus = "EXPIRED"
)

// ExamSession is one student's attempt at one exam, uniquely keyed by
// (exam, student, attempt number). ScheduledEndTime is computed at creation as
// actual start + exam duration, independent of the exam's own open window.
// TotalScore/Percentage/IsPassed stay nil until the session has been graded.
type ExamSession struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	ExamID             uuid.UUID      `json:"exam_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_exam_student_attempt"`
	Exam               Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	StudentID          string         `json:"student_id" gorm:"not null;index;uniqueIndex:idx_exam_student_attempt"`
	AttemptNumber      int            `json:"attempt_number" gorm:"not null;default:1;uniqueIndex:idx_exam_student_attempt"`
	Status             SessionStatus  `json:"status" gorm:"not null;default:'IN_PROGRESS'"`
	ScheduledStartTime time.Time      `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time      `json:"scheduled_end_time"`
	ActualStartTime    time.Time      `json:"actual_start_time"`
	ActualEndTime      *time.Time     `json:"actual_end_time,omitempty"`
	LastActivityAt     time.Time      `json:"last_activity_at"`
	TotalScore         *float64       `json:"total_score,omitempty"`
	Percentage         *float64       `json:"percentage,omitempty"`
	IsPassed           *bool          `json:"is_passed,omitempty"`
	IsGraded           bool           `json:"is_graded" gorm:"default:false"`
	IPAddress          string         `json:"ip_address,omitempty"`
	UserAgent          string         `json:"user_agent,omitempty"`
	Answers            []Answer       `json:"answers,omitempty" gorm:"foreignKey:ExamSessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Terminal reports whether the session can no longer change state.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionExpired
}
