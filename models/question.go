package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList lưu một mảng chuỗi dưới dạng JSON text trong một cột.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	}
	return errors.New("unsupported type for StringList")
}

// Question là câu hỏi trắc nghiệm 4 lựa chọn (MCQ).
type Question struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Category  string     `gorm:"size:100;not null" json:"category"`
	Question  string     `gorm:"type:text;not null" json:"question"`
	Options   StringList `gorm:"type:text;not null" json:"options"`
	Answer    string     `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}
