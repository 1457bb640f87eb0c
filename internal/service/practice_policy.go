package service

import "menara_math_backend/internal/model"

// NextDifficulty maps (current difficulty, correctness) to the next target
// difficulty. The ladder only climbs: after a correct answer at easy the
// target becomes medium, at medium or hard it becomes hard. A wrong answer
// keeps the student on the same question, so the difficulty is unchanged.
func NextDifficulty(current int, correct bool) int {
	if !correct {
		return current
	}
	if current >= model.DifficultyMedium {
		return model.DifficultyHard
	}
	return model.DifficultyMedium
}

// RevealedHint returns the hint newly unlocked by reaching the given wrong
// count: hint1 after the 1st wrong answer, hint2 after the 2nd, hint3 after
// the 3rd. The 4th wrong answer abandons the session instead of revealing
// anything, so hint3 is visible exactly once, before the final strike.
func RevealedHint(q *model.Question, wrongCount int) string {
	switch wrongCount {
	case 1:
		return q.Hint1
	case 2:
		return q.Hint2
	case 3:
		return q.Hint3
	}
	return ""
}
