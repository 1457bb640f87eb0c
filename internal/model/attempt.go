package model

// Attempt is one recorded answer submission. Rows are append-only: one per
// submitted answer, including repeated wrong tries on the same question.
//
// swagger:model Attempt
type Attempt struct {
	UUIDBase
	SessionID  string `gorm:"type:varchar(36);index;not null" json:"sessionId"`
	Floor      int    `gorm:"not null" json:"floor"` // floor at time of submission
	QuestionID string `gorm:"type:varchar(36);not null" json:"questionId"`
	Answer     string `gorm:"size:1;not null" json:"answer"`
	IsCorrect  bool   `gorm:"not null" json:"isCorrect"`
	ResponseMs int    `gorm:"not null;default:0" json:"responseMs"`
}

func (Attempt) TableName() string {
	return "attempts"
}
