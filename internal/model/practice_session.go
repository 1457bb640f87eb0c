package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionAbandoned SessionStatus = "ABANDONED"
)

// MaxWrongAnswers is the per-question strike limit. Reaching it abandons
// the session and redirects the student to the study material.
const MaxWrongAnswers = 4

// swagger:model PracticeSession
type PracticeSession struct {
	UUIDBase
	StudentUserID string `gorm:"type:varchar(36);index;not null" json:"studentUserId"`
	MaterialID    string `gorm:"type:varchar(36);index;not null" json:"materialId"`

	// Floor is the floor the student is currently on, not yet cleared.
	// It starts at 1 and only ever increases.
	Floor      int `gorm:"not null;default:1" json:"floor"`
	WrongCount int `gorm:"not null;default:0" json:"wrongCount"`

	// CurrentQuestionID is the question the student must answer next. Empty
	// once the material pool is exhausted. Submissions for any other
	// question are rejected.
	CurrentQuestionID string `gorm:"type:varchar(36)" json:"currentQuestionId,omitempty"`
	CurrentDifficulty int    `gorm:"not null;default:2" json:"currentDifficulty"`

	Status         SessionStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	StartedAt      time.Time     `json:"startedAt"`
	EndedAt        *time.Time    `json:"endedAt,omitempty"`
	LastActivityAt time.Time     `json:"lastActivityAt"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// Terminal reports whether the session accepts no further answers.
func (s *PracticeSession) Terminal() bool {
	return s.Status != SessionActive
}
