package model

const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// DifficultyLabel maps a numeric difficulty to its student-facing label.
func DifficultyLabel(difficulty int) string {
	switch difficulty {
	case DifficultyEasy:
		return "Mudah"
	case DifficultyHard:
		return "Sulit"
	default:
		return "Sedang"
	}
}

// swagger:model Question
type Question struct {
	UUIDBase
	MaterialID  string `gorm:"type:varchar(36);index;not null" json:"materialId"`
	Difficulty  int    `gorm:"not null;index" json:"difficulty"`
	Text        string `gorm:"column:question;type:text;not null" json:"question"`
	OptA        string `gorm:"size:500;not null" json:"optA"`
	OptB        string `gorm:"size:500;not null" json:"optB"`
	OptC        string `gorm:"size:500;not null" json:"optC"`
	OptD        string `gorm:"size:500;not null" json:"optD"`
	Correct     string `gorm:"size:1;not null" json:"-"` // A/B/C/D, never serialized
	Hint1       string `gorm:"type:text" json:"-"`
	Hint2       string `gorm:"type:text" json:"-"`
	Hint3       string `gorm:"type:text" json:"-"`
	Explanation string `gorm:"type:text" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}