package models

import "time"

// Các giá trị answer hợp lệ cho câu hỏi đúng/sai.
const (
	AnswerTrue       = "True"
	AnswerFalse      = "False"
	AnswerPartlyTrue = "Partly True"
)

type TrueFalseQuestion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"size:20;not null" json:"answer"` // True | False | Partly True
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TrueFalseQuestion) TableName() string {
	return "true_false_questions"
}

// IsValidTrueFalseAnswer kiểm tra answer thuộc tập đóng {True, False, Partly True}.
func IsValidTrueFalseAnswer(answer string) bool {
	return answer == AnswerTrue || answer == AnswerFalse || answer == AnswerPartlyTrue
}
