package repository

import (
	"menara_math_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// QuestionIDsBySession returns the distinct question ids already attempted
// in one session, used to exclude repeats when picking the next question.
func (r *AttemptRepository) QuestionIDsBySession(sessionID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Attempt{}).
		Where("session_id = ?", sessionID).
		Distinct("question_id").
		Pluck("question_id", &ids).Error
	return ids, err
}

// SessionStats holds the aggregate over one session's attempt rows.
type SessionStats struct {
	TotalAttempts  int64
	CorrectAnswers int64
}

func (r *AttemptRepository) StatsBySession(sessionID string) (*SessionStats, error) {
	var stats SessionStats
	err := r.DB.Model(&model.Attempt{}).
		Where("session_id = ?", sessionID).
		Select("COUNT(*) as total_attempts, COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) as correct_answers").
		Scan(&stats).Error
	return &stats, err
}

// StatsByStudent aggregates over every attempt of one student, across all
// of their sessions.
func (r *AttemptRepository) StatsByStudent(studentUserID string) (*SessionStats, error) {
	var stats SessionStats
	err := r.DB.Model(&model.Attempt{}).
		Joins("JOIN practice_sessions ON practice_sessions.id = attempts.session_id").
		Where("practice_sessions.student_user_id = ?", studentUserID).
		Select("COUNT(*) as total_attempts, COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) as correct_answers").
		Scan(&stats).Error
	return &stats, err
}
