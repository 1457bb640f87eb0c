package service

import (
	"errors"
	"strconv"
	"time"

	"menara_math_backend/internal/config"
	"menara_math_backend/internal/model"
	"menara_math_backend/internal/repository"
	"menara_math_backend/internal/util"
	"menara_math_backend/pkg/logger"
	"menara_math_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PracticeService is the practice session engine: it starts sessions,
// evaluates answers, adapts difficulty, releases hints and decides when a
// session ends.
type PracticeService struct {
	Sessions  *repository.PracticeSessionRepository
	Attempts  *repository.AttemptRepository
	Questions *repository.QuestionRepository
	Materials *repository.MaterialRepository
	Picker    *QuestionPicker
	Cfg       *config.Config
	DB        *gorm.DB
}

func NewPracticeService(
	sessionRepo *repository.PracticeSessionRepository,
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
	materialRepo *repository.MaterialRepository,
	picker *QuestionPicker,
	cfg *config.Config,
	db *gorm.DB,
) *PracticeService {
	return &PracticeService{
		Sessions:  sessionRepo,
		Attempts:  attemptRepo,
		Questions: questionRepo,
		Materials: materialRepo,
		Picker:    picker,
		Cfg:       cfg,
		DB:        db,
	}
}

// QuestionView is the client-facing question shape. Hints ride along from
// the start (the client reveals them by wrongCount); the correct option
// never leaves the server.
type QuestionView struct {
	ID              string `json:"id"`
	MaterialID      string `json:"materialId"`
	Difficulty      int    `json:"difficulty"`
	DifficultyLabel string `json:"difficultyLabel"`
	Question        string `json:"question"`
	OptA            string `json:"optA"`
	OptB            string `json:"optB"`
	OptC            string `json:"optC"`
	OptD            string `json:"optD"`
	Hint1           string `json:"hint1,omitempty"`
	Hint2           string `json:"hint2,omitempty"`
	Hint3           string `json:"hint3,omitempty"`
}

func newQuestionView(q *model.Question) *QuestionView {
	return &QuestionView{
		ID:              q.ID,
		MaterialID:      q.MaterialID,
		Difficulty:      q.Difficulty,
		DifficultyLabel: model.DifficultyLabel(q.Difficulty),
		Question:        q.Text,
		OptA:            q.OptA,
		OptB:            q.OptB,
		OptC:            q.OptC,
		OptD:            q.OptD,
		Hint1:           q.Hint1,
		Hint2:           q.Hint2,
		Hint3:           q.Hint3,
	}
}

type StartResult struct {
	SessionID    string        `json:"sessionId"`
	MaterialID   string        `json:"materialId"`
	MaterialName string        `json:"materialName"`
	Floor        int           `json:"floor"`
	WrongCount   int           `json:"wrongCount"`
	Question     *QuestionView `json:"question"`
}

type SubmitAnswerInput struct {
	SessionID  string
	QuestionID string
	Answer     string
	ResponseMs int
}

type AnswerResult struct {
	IsCorrect    bool          `json:"isCorrect"`
	Floor        int           `json:"floor"`
	WrongCount   int           `json:"wrongCount"`
	NextQuestion *QuestionView `json:"nextQuestion,omitempty"`
	SameQuestion bool          `json:"sameQuestion,omitempty"`
	Hint         string        `json:"hint,omitempty"`
	MustStudy    bool          `json:"mustStudy,omitempty"`
	MaterialID   string        `json:"materialId,omitempty"`
	MaterialName string        `json:"materialName,omitempty"`
	Explanation  string        `json:"explanation,omitempty"`
	Message      string        `json:"message,omitempty"`
}

type EndResult struct {
	FloorsClimbed  int `json:"floorsClimbed"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalAttempts  int `json:"totalAttempts"`
}

// Start opens a new practice session for the student. When no material is
// given, one is derived from the student's cumulative floors: every
// FloorsPerMaterial floors climbed unlocks the next material in order,
// clamped to the last one. The first question is medium when the material
// has any, otherwise whatever is available.
func (s *PracticeService) Start(studentUserID, materialID string) (*StartResult, error) {
	material, err := s.resolveMaterial(studentUserID, materialID)
	if err != nil {
		return nil, err
	}

	count, err := s.Questions.CountByMaterial(material.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, util.ErrNoQuestions
	}

	first, err := s.Picker.Pick(material.ID, model.DifficultyMedium, nil)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, util.ErrNoQuestions
	}

	now := time.Now()
	session := &model.PracticeSession{
		StudentUserID:     studentUserID,
		MaterialID:        material.ID,
		Floor:             1,
		WrongCount:        0,
		CurrentQuestionID: first.ID,
		CurrentDifficulty: first.Difficulty,
		Status:            model.SessionActive,
		StartedAt:         now,
		LastActivityAt:    now,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}

	monitoring.SessionsStarted.Inc()

	return &StartResult{
		SessionID:    session.ID,
		MaterialID:   material.ID,
		MaterialName: material.Title,
		Floor:        session.Floor,
		WrongCount:   session.WrongCount,
		Question:     newQuestionView(first),
	}, nil
}

// SubmitAnswer evaluates one answer against the session's current question.
// The attempt row and the session update commit as a single transaction, so
// a failed write never leaves one without the other.
func (s *PracticeService) SubmitAnswer(in SubmitAnswerInput) (*AnswerResult, error) {
	if in.Answer != "A" && in.Answer != "B" && in.Answer != "C" && in.Answer != "D" {
		return nil, util.ErrInvalidAnswer
	}

	session, err := s.Sessions.FindByID(in.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status == model.SessionActive && s.isStale(session) {
		if err := s.abandon(session); err != nil {
			return nil, err
		}
		return nil, util.ErrSessionNotActive
	}
	if session.Terminal() {
		return nil, util.ErrSessionNotActive
	}

	question, err := s.Questions.FindByID(in.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	// The served question is tracked server-side; a submission for any
	// other question is a stale or forged client.
	if session.CurrentQuestionID != question.ID {
		return nil, util.ErrQuestionMismatch
	}

	isCorrect := in.Answer == question.Correct
	now := time.Now()

	attempt := &model.Attempt{
		SessionID:  session.ID,
		Floor:      session.Floor,
		QuestionID: question.ID,
		Answer:     in.Answer,
		IsCorrect:  isCorrect,
		ResponseMs: in.ResponseMs,
	}

	var result *AnswerResult
	if isCorrect {
		result, err = s.applyCorrect(session, question, attempt, now)
	} else {
		result, err = s.applyWrong(session, question, attempt, now)
	}
	if err != nil {
		return nil, err
	}

	monitoring.AnswersSubmitted.WithLabelValues(strconv.FormatBool(isCorrect)).Inc()
	return result, nil
}

func (s *PracticeService) applyCorrect(session *model.PracticeSession, question *model.Question, attempt *model.Attempt, now time.Time) (*AnswerResult, error) {
	usedIDs, err := s.Attempts.QuestionIDsBySession(session.ID)
	if err != nil {
		return nil, err
	}
	usedIDs = appendUnique(usedIDs, question.ID)

	targetDifficulty := NextDifficulty(session.CurrentDifficulty, true)
	next, err := s.Picker.Pick(session.MaterialID, targetDifficulty, usedIDs)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"floor":            session.Floor + 1,
		"wrong_count":      0,
		"last_activity_at": now,
	}
	if next != nil {
		updates["current_question_id"] = next.ID
		updates["current_difficulty"] = next.Difficulty
	} else {
		// material exhausted, caller is expected to end the session
		updates["current_question_id"] = ""
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return tx.Model(&model.PracticeSession{}).
			Where("id = ?", session.ID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		IsCorrect:  true,
		Floor:      session.Floor + 1,
		WrongCount: 0,
	}
	if next != nil {
		result.NextQuestion = newQuestionView(next)
	}
	return result, nil
}

func (s *PracticeService) applyWrong(session *model.PracticeSession, question *model.Question, attempt *model.Attempt, now time.Time) (*AnswerResult, error) {
	newWrongCount := session.WrongCount + 1

	updates := map[string]interface{}{
		"wrong_count":      newWrongCount,
		"last_activity_at": now,
	}
	abandoned := newWrongCount >= model.MaxWrongAnswers
	if abandoned {
		updates["status"] = model.SessionAbandoned
		updates["ended_at"] = now
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return tx.Model(&model.PracticeSession{}).
			Where("id = ?", session.ID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if abandoned {
		monitoring.SessionsEnded.WithLabelValues(string(model.SessionAbandoned)).Inc()

		materialName := ""
		if material, err := s.Materials.FindByID(session.MaterialID); err == nil {
			materialName = material.Title
		}
		return &AnswerResult{
			IsCorrect:    false,
			Floor:        session.Floor,
			WrongCount:   newWrongCount,
			MustStudy:    true,
			MaterialID:   session.MaterialID,
			MaterialName: materialName,
			Explanation:  question.Explanation,
			Message:      "Kamu perlu belajar materi dulu sebelum melanjutkan",
		}, nil
	}

	return &AnswerResult{
		IsCorrect:    false,
		Floor:        session.Floor,
		WrongCount:   newWrongCount,
		SameQuestion: true,
		Hint:         RevealedHint(question, newWrongCount),
	}, nil
}

// End closes a session and returns its aggregate stats. Calling it on an
// already-terminal session is idempotent: the stats come back, nothing is
// written.
func (s *PracticeService) End(sessionID, reason string) (*EndResult, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	stats, err := s.Attempts.StatsBySession(session.ID)
	if err != nil {
		return nil, err
	}

	if !session.Terminal() {
		status := model.SessionAbandoned
		if reason == "completed" {
			status = model.SessionCompleted
		}
		now := time.Now()
		err := s.DB.Model(&model.PracticeSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"status":           status,
				"ended_at":         now,
				"last_activity_at": now,
			}).Error
		if err != nil {
			return nil, err
		}
		monitoring.SessionsEnded.WithLabelValues(string(status)).Inc()
	}

	return &EndResult{
		FloorsClimbed:  session.Floor - 1,
		CorrectAnswers: int(stats.CorrectAnswers),
		TotalAttempts:  int(stats.TotalAttempts),
	}, nil
}

// SweepStaleSessions abandons every ACTIVE session idle beyond the
// configured timeout. Run from the app's background ticker.
func (s *PracticeService) SweepStaleSessions() error {
	cutoff := time.Now().Add(-s.Cfg.Practice.IdleTimeout())
	swept, err := s.Sessions.AbandonStaleBefore(cutoff)
	if err != nil {
		return err
	}
	if swept > 0 {
		monitoring.SessionsEnded.WithLabelValues(string(model.SessionAbandoned)).Add(float64(swept))
		logger.Log.Info("Swept stale practice sessions", zap.Int64("count", swept))
	}
	return nil
}

func (s *PracticeService) resolveMaterial(studentUserID, materialID string) (*model.Material, error) {
	if materialID != "" {
		material, err := s.Materials.FindByID(materialID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrMaterialNotFound
			}
			return nil, err
		}
		return material, nil
	}

	materials, err := s.Materials.ListOrdered(true)
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return nil, util.ErrMaterialNotFound
	}

	totalFloors, err := s.Sessions.TotalFloorsClimbed(studentUserID)
	if err != nil {
		return nil, err
	}

	index := totalFloors / s.Cfg.Practice.FloorsPerMaterial
	if index >= len(materials) {
		index = len(materials) - 1
	}
	return &materials[index], nil
}

func (s *PracticeService) isStale(session *model.PracticeSession) bool {
	return time.Since(session.LastActivityAt) > s.Cfg.Practice.IdleTimeout()
}

func (s *PracticeService) abandon(session *model.PracticeSession) error {
	now := time.Now()
	err := s.DB.Model(&model.PracticeSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"status":   model.SessionAbandoned,
			"ended_at": now,
		}).Error
	if err != nil {
		return err
	}
	monitoring.SessionsEnded.WithLabelValues(string(model.SessionAbandoned)).Inc()
	return nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
