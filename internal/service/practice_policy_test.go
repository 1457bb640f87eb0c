package service

import (
	"testing"

	"menara_math_backend/internal/model"
)

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		current int
		correct bool
		want    int
	}{
		{"correct at easy climbs to medium", model.DifficultyEasy, true, model.DifficultyMedium},
		{"correct at medium climbs to hard", model.DifficultyMedium, true, model.DifficultyHard},
		{"correct at hard stays hard", model.DifficultyHard, true, model.DifficultyHard},
		{"wrong at easy stays easy", model.DifficultyEasy, false, model.DifficultyEasy},
		{"wrong at medium stays medium", model.DifficultyMedium, false, model.DifficultyMedium},
		{"wrong at hard stays hard", model.DifficultyHard, false, model.DifficultyHard},
	}

	for _, tt := range tests {
		got := NextDifficulty(tt.current, tt.correct)
		if got != tt.want {
			t.Errorf("%s: NextDifficulty(%d, %v) = %d, want %d", tt.name, tt.current, tt.correct, got, tt.want)
		}
	}
}

func TestRevealedHint(t *testing.T) {
	q := &model.Question{
		Hint1: "hint satu",
		Hint2: "hint dua",
		Hint3: "hint tiga",
	}

	tests := []struct {
		wrongCount int
		want       string
	}{
		{0, ""},
		{1, "hint satu"},
		{2, "hint dua"},
		{3, "hint tiga"},
		{4, ""},
		{5, ""},
	}

	for _, tt := range tests {
		got := RevealedHint(q, tt.wrongCount)
		if got != tt.want {
			t.Errorf("RevealedHint(wrongCount=%d) = %q, want %q", tt.wrongCount, got, tt.want)
		}
	}
}
