package service

import (
	"testing"
	"time"

	"menara_math_backend/internal/model"
	"menara_math_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSession(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyEasy)
	medium := createQuestion(t, db, material.ID, model.DifficultyMedium)
	createQuestion(t, db, material.ID, model.DifficultyHard)

	result, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	assert.Equal(t, material.ID, result.MaterialID)
	assert.Equal(t, "Pecahan", result.MaterialName)
	assert.Equal(t, 1, result.Floor)
	assert.Equal(t, 0, result.WrongCount)

	// first question is always medium when the material has one
	require.NotNil(t, result.Question)
	assert.Equal(t, medium.ID, result.Question.ID)
	assert.Equal(t, model.DifficultyMedium, result.Question.Difficulty)
	assert.Equal(t, "Sedang", result.Question.DifficultyLabel)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", result.SessionID).Error)
	assert.Equal(t, model.SessionActive, session.Status)
	assert.Equal(t, medium.ID, session.CurrentQuestionID)
	assert.Equal(t, model.DifficultyMedium, session.CurrentDifficulty)
	assert.False(t, session.LastActivityAt.IsZero())
}

func TestStartWithoutQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Materi Kosong", 0)

	_, err := svc.Start("student-1", material.ID)
	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestStartUnknownMaterial(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	_, err := svc.Start("student-1", "no-such-material")
	assert.ErrorIs(t, err, util.ErrMaterialNotFound)
}

func TestStartDerivesMaterialFromProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	first := createMaterial(t, db, "Materi 1", 0)
	second := createMaterial(t, db, "Materi 2", 1)
	createQuestion(t, db, first.ID, model.DifficultyMedium)
	createQuestion(t, db, second.ID, model.DifficultyMedium)

	// 11 floors climbed across two finished sessions: past the first
	// 10-floor block, so material 2 is up next.
	seedSession := func(floor int) {
		now := time.Now()
		require.NoError(t, db.Create(&model.PracticeSession{
			StudentUserID:  "student-1",
			MaterialID:     first.ID,
			Floor:          floor,
			Status:         model.SessionCompleted,
			StartedAt:      now,
			LastActivityAt: now,
		}).Error)
	}
	seedSession(9) // 8 climbed
	seedSession(4) // 3 climbed

	result, err := svc.Start("student-1", "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, result.MaterialID)
}

func TestStartClampsToLastMaterial(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	first := createMaterial(t, db, "Materi 1", 0)
	second := createMaterial(t, db, "Materi 2", 1)
	createQuestion(t, db, first.ID, model.DifficultyMedium)
	createQuestion(t, db, second.ID, model.DifficultyMedium)

	now := time.Now()
	require.NoError(t, db.Create(&model.PracticeSession{
		StudentUserID:  "student-1",
		MaterialID:     second.ID,
		Floor:          100,
		Status:         model.SessionCompleted,
		StartedAt:      now,
		LastActivityAt: now,
	}).Error)

	result, err := svc.Start("student-1", "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, result.MaterialID)
}

func TestCorrectAnswerAdvancesFloor(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Perkalian", 0)
	createQuestion(t, db, material.ID, model.DifficultyEasy)
	createQuestion(t, db, material.ID, model.DifficultyMedium)
	hard := createQuestion(t, db, material.ID, model.DifficultyHard)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "A",
		ResponseMs: 4200,
	})
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, 2, result.Floor)
	assert.Equal(t, 0, result.WrongCount)

	// medium answered correctly ratchets the target to hard
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, hard.ID, result.NextQuestion.ID)
	assert.Equal(t, model.DifficultyHard, result.NextQuestion.Difficulty)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, 2, session.Floor)
	assert.Equal(t, hard.ID, session.CurrentQuestionID)
	assert.Equal(t, model.DifficultyHard, session.CurrentDifficulty)

	var attempts []model.Attempt
	require.NoError(t, db.Find(&attempts, "session_id = ?", started.SessionID).Error)
	require.Len(t, attempts, 1)
	assert.Equal(t, 1, attempts[0].Floor)
	assert.True(t, attempts[0].IsCorrect)
	assert.Equal(t, 4200, attempts[0].ResponseMs)
}

func TestWrongAnswerRepeatsQuestionWithHints(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pembagian", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	wantHints := []string{"hint pertama", "hint kedua", "hint ketiga"}
	for i, want := range wantHints {
		result, err := svc.SubmitAnswer(SubmitAnswerInput{
			SessionID:  started.SessionID,
			QuestionID: started.Question.ID,
			Answer:     "B",
		})
		require.NoError(t, err)

		assert.False(t, result.IsCorrect)
		assert.True(t, result.SameQuestion)
		assert.Equal(t, 1, result.Floor)
		assert.Equal(t, i+1, result.WrongCount)
		assert.Equal(t, want, result.Hint)
	}
}

func TestFourthWrongAnswerAbandonsSession(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Bilangan Cacah", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	var last *AnswerResult
	for i := 0; i < model.MaxWrongAnswers; i++ {
		last, err = svc.SubmitAnswer(SubmitAnswerInput{
			SessionID:  started.SessionID,
			QuestionID: started.Question.ID,
			Answer:     "C",
		})
		require.NoError(t, err)
	}

	assert.True(t, last.MustStudy)
	assert.False(t, last.SameQuestion)
	assert.Equal(t, model.MaxWrongAnswers, last.WrongCount)
	assert.Equal(t, material.ID, last.MaterialID)
	assert.Equal(t, "Bilangan Cacah", last.MaterialName)
	assert.Equal(t, "penjelasan lengkap", last.Explanation)
	assert.NotEmpty(t, last.Message)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, model.SessionAbandoned, session.Status)
	require.NotNil(t, session.EndedAt)

	// an abandoned session accepts no more answers
	_, err = svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "A",
	})
	assert.ErrorIs(t, err, util.ErrSessionNotActive)

	// every submission left an attempt row
	var count int64
	require.NoError(t, db.Model(&model.Attempt{}).Where("session_id = ?", started.SessionID).Count(&count).Error)
	assert.EqualValues(t, model.MaxWrongAnswers, count)
}

func TestCorrectAnswerResetsWrongCount(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)
	createQuestion(t, db, material.ID, model.DifficultyHard)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "D",
	})
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "A",
	})
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, 2, result.Floor)
	assert.Equal(t, 0, result.WrongCount)
}

func TestSubmitForWrongQuestionRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)
	other := createQuestion(t, db, material.ID, model.DifficultyHard)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: other.ID,
		Answer:     "A",
	})
	assert.ErrorIs(t, err, util.ErrQuestionMismatch)

	// the rejected submission leaves no trace
	var count int64
	require.NoError(t, db.Model(&model.Attempt{}).Where("session_id = ?", started.SessionID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitInvalidAnswerRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	for _, answer := range []string{"", "E", "a", "AB"} {
		_, err := svc.SubmitAnswer(SubmitAnswerInput{
			SessionID:  started.SessionID,
			QuestionID: started.Question.ID,
			Answer:     answer,
		})
		assert.ErrorIs(t, err, util.ErrInvalidAnswer, "answer %q", answer)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	_, err := svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  "no-such-session",
		QuestionID: "q",
		Answer:     "A",
	})
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSingleQuestionMaterialExhausts(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Materi Mini", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "A",
	})
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, 2, result.Floor)
	assert.Nil(t, result.NextQuestion)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Empty(t, session.CurrentQuestionID)
}

func TestEndSession(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)
	createQuestion(t, db, material.ID, model.DifficultyHard)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "A",
	})
	require.NoError(t, err)

	result, err := svc.End(started.SessionID, "completed")
	require.NoError(t, err)

	assert.Equal(t, 1, result.FloorsClimbed)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 1, result.TotalAttempts)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, model.SessionCompleted, session.Status)
	require.NotNil(t, session.EndedAt)
	firstEndedAt := *session.EndedAt

	// ending again changes nothing and returns the same stats
	again, err := svc.End(started.SessionID, "quit")
	require.NoError(t, err)
	assert.Equal(t, result, again)

	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, model.SessionCompleted, session.Status)
	assert.WithinDuration(t, firstEndedAt, *session.EndedAt, time.Second)
}

func TestEndWithoutCompletedReasonAbandons(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	result, err := svc.End(started.SessionID, "quit")
	require.NoError(t, err)
	assert.Equal(t, 0, result.FloorsClimbed)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, model.SessionAbandoned, session.Status)
}

func TestEndUnknownSession(t *testing.T) {
	db := newTestDB(t)
	svc := newPracticeService(t, db, testConfig())

	_, err := svc.End("no-such-session", "completed")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestStaleSessionRejectedOnSubmit(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	cfg.Practice.IdleTimeoutMinutes = 1
	svc := newPracticeService(t, db, cfg)

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	started, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.PracticeSession{}).
		Where("id = ?", started.SessionID).
		Update("last_activity_at", time.Now().Add(-10*time.Minute)).Error)

	_, err = svc.SubmitAnswer(SubmitAnswerInput{
		SessionID:  started.SessionID,
		QuestionID: started.Question.ID,
		Answer:     "A",
	})
	assert.ErrorIs(t, err, util.ErrSessionNotActive)

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, model.SessionAbandoned, session.Status)
	require.NotNil(t, session.EndedAt)
}

func TestSweepStaleSessions(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	cfg.Practice.IdleTimeoutMinutes = 1
	svc := newPracticeService(t, db, cfg)

	material := createMaterial(t, db, "Pecahan", 0)
	createQuestion(t, db, material.ID, model.DifficultyMedium)

	stale, err := svc.Start("student-1", material.ID)
	require.NoError(t, err)
	fresh, err := svc.Start("student-2", material.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.PracticeSession{}).
		Where("id = ?", stale.SessionID).
		Update("last_activity_at", time.Now().Add(-10*time.Minute)).Error)

	require.NoError(t, svc.SweepStaleSessions())

	var session model.PracticeSession
	require.NoError(t, db.First(&session, "id = ?", stale.SessionID).Error)
	assert.Equal(t, model.SessionAbandoned, session.Status)

	var freshSession model.PracticeSession
	require.NoError(t, db.First(&freshSession, "id = ?", fresh.SessionID).Error)
	assert.Equal(t, model.SessionActive, freshSession.Status)
}
