package service

import (
	"math/rand"

	"menara_math_backend/internal/model"
	"menara_math_backend/internal/repository"
)

// pickStrategy is one selection tier: it returns the eligible candidates
// for (material, target difficulty, already-used ids), or none.
type pickStrategy func(materialID string, difficulty int, excludeIDs []string) ([]model.Question, error)

// QuestionPicker selects the next question for a session. Strategies are
// tried in priority order; the first non-empty candidate set wins and one
// question is drawn uniformly at random from it, so repetition stays
// unpredictable.
type QuestionPicker struct {
	Questions *repository.QuestionRepository
}

func NewQuestionPicker(questionRepo *repository.QuestionRepository) *QuestionPicker {
	return &QuestionPicker{Questions: questionRepo}
}

func (p *QuestionPicker) strategies() []pickStrategy {
	return []pickStrategy{
		// exact difficulty, excluding already-used questions
		func(materialID string, difficulty int, excludeIDs []string) ([]model.Question, error) {
			return p.Questions.CandidatesExact(materialID, difficulty, excludeIDs)
		},
		// any difficulty, excluding already-used questions
		func(materialID string, difficulty int, excludeIDs []string) ([]model.Question, error) {
			return p.Questions.CandidatesAnyDifficulty(materialID, excludeIDs)
		},
		// last resort: exact difficulty, accepting repeats
		func(materialID string, difficulty int, excludeIDs []string) ([]model.Question, error) {
			return p.Questions.CandidatesExact(materialID, difficulty, nil)
		},
	}
}

// Pick returns a question for the material at the target difficulty, or nil
// when no tier yields a candidate.
func (p *QuestionPicker) Pick(materialID string, difficulty int, excludeIDs []string) (*model.Question, error) {
	for _, strategy := range p.strategies() {
		candidates, err := strategy(materialID, difficulty, excludeIDs)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			q := candidates[rand.Intn(len(candidates))]
			return &q, nil
		}
	}
	return nil, nil
}
