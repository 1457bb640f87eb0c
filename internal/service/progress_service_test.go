package service

import (
	"testing"
	"time"

	"menara_math_backend/internal/model"
	"menara_math_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudentProgress(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewProgressService(
		repository.NewPracticeSessionRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewMaterialRepository(db),
		cfg,
	)

	first := createMaterial(t, db, "Materi 1", 0)
	createMaterial(t, db, "Materi 2", 1)

	now := time.Now()
	session := &model.PracticeSession{
		StudentUserID:  "student-1",
		MaterialID:     first.ID,
		Floor:          4, // 3 floors climbed
		Status:         model.SessionCompleted,
		StartedAt:      now,
		LastActivityAt: now,
	}
	require.NoError(t, db.Create(session).Error)

	for _, correct := range []bool{true, true, true, false} {
		require.NoError(t, db.Create(&model.Attempt{
			SessionID:  session.ID,
			Floor:      1,
			QuestionID: "q",
			Answer:     "A",
			IsCorrect:  correct,
		}).Error)
	}

	progress, err := svc.GetStudentProgress("student-1")
	require.NoError(t, err)

	assert.Equal(t, 3, progress.TotalFloors)
	assert.Equal(t, 4, progress.CurrentFloor) // 3 % 10 + 1
	assert.Equal(t, 1, progress.TotalSessions)
	assert.Equal(t, 75, progress.Accuracy)
	assert.Equal(t, first.ID, progress.CurrentMaterialID)
	assert.Equal(t, "Materi 1", progress.CurrentMaterial)
}

func TestGetStudentProgressFreshStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(
		repository.NewPracticeSessionRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewMaterialRepository(db),
		testConfig(),
	)

	material := createMaterial(t, db, "Materi 1", 0)

	progress, err := svc.GetStudentProgress("brand-new")
	require.NoError(t, err)

	assert.Equal(t, 0, progress.TotalFloors)
	assert.Equal(t, 1, progress.CurrentFloor)
	assert.Equal(t, 0, progress.TotalSessions)
	assert.Equal(t, 0, progress.Accuracy)
	assert.Equal(t, material.ID, progress.CurrentMaterialID)
}

func TestGetStudentProgressCrossesMaterialBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(
		repository.NewPracticeSessionRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewMaterialRepository(db),
		testConfig(),
	)

	createMaterial(t, db, "Materi 1", 0)
	second := createMaterial(t, db, "Materi 2", 1)

	now := time.Now()
	require.NoError(t, db.Create(&model.PracticeSession{
		StudentUserID:  "student-1",
		MaterialID:     second.ID,
		Floor:          13, // 12 floors climbed, inside the second block
		Status:         model.SessionCompleted,
		StartedAt:      now,
		LastActivityAt: now,
	}).Error)

	progress, err := svc.GetStudentProgress("student-1")
	require.NoError(t, err)

	assert.Equal(t, 12, progress.TotalFloors)
	assert.Equal(t, 3, progress.CurrentFloor) // 12 % 10 + 1
	assert.Equal(t, second.ID, progress.CurrentMaterialID)
}
