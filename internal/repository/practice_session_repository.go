package repository

import (
	"time"

	"menara_math_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeSessionRepository struct {
	DB *gorm.DB
}

func NewPracticeSessionRepository(db *gorm.DB) *PracticeSessionRepository {
	return &PracticeSessionRepository{DB: db}
}

func (r *PracticeSessionRepository) Create(session *model.PracticeSession) error {
	return r.DB.Create(session).Error
}

func (r *PracticeSessionRepository) FindByID(id string) (*model.PracticeSession, error) {
	var session model.PracticeSession
	err := r.DB.First(&session, "id = ?", id).Error
	return &session, err
}

// TotalFloorsClimbed sums floors climbed (floor - 1) over every session of
// one student. Drives auto material selection.
func (r *PracticeSessionRepository) TotalFloorsClimbed(studentUserID string) (int, error) {
	var total int64
	err := r.DB.Model(&model.PracticeSession{}).
		Where("student_user_id = ?", studentUserID).
		Select("COALESCE(SUM(floor - 1), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *PracticeSessionRepository) CountByStudent(studentUserID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PracticeSession{}).
		Where("student_user_id = ?", studentUserID).
		Count(&count).Error
	return count, err
}

// AbandonStaleBefore transitions every ACTIVE session whose last activity
// predates the cutoff to ABANDONED. Returns the number of sessions swept.
func (r *PracticeSessionRepository) AbandonStaleBefore(cutoff time.Time) (int64, error) {
	now := time.Now()
	result := r.DB.Model(&model.PracticeSession{}).
		Where("status = ? AND last_activity_at < ?", model.SessionActive, cutoff).
		Updates(map[string]interface{}{
			"status":   model.SessionAbandoned,
			"ended_at": now,
		})
	return result.RowsAffected, result.Error
}
