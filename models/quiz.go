// models/quiz.go - Quiz catalog models
package models

import (
	"encoding/json"
	"time"
)

// Quiz is one entry in the quiz catalog. The ID is a slug of
// "<category> <title>" so the category name is always recoverable from it.
type Quiz struct {
	ID           string     `json:"id" gorm:"primaryKey;size:120"`
	Title        string     `json:"title" gorm:"not null;size:150"`
	Description  string     `json:"description" gorm:"type:text"`
	Category     string     `json:"category" gorm:"not null;index;size:50"`
	Difficulty   string     `json:"difficulty" gorm:"default:'Medium';size:20"` // Easy, Medium, Hard
	Duration     int        `json:"duration" gorm:"default:15"`                 // in minutes
	IsLive       bool       `json:"is_live" gorm:"default:false"`
	Participants int        `json:"participants" gorm:"default:0"`
	ImageURL     string     `json:"image_url" gorm:"size:300"`
	TagsJSON     string     `json:"-" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	Questions    []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// Question belongs to a quiz. Options are stored as a JSON array column;
// CorrectAnswer is the 0-based index into that array.
type Question struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	QuizID        string `json:"quiz_id" gorm:"not null;index;size:120"`
	Text          string `json:"text" gorm:"not null;type:text"`
	OptionsJSON   string `json:"-" gorm:"not null;type:text"`
	CorrectAnswer int    `json:"correct_answer" gorm:"not null"`
	Explanation   string `json:"explanation" gorm:"type:text"`
	TimeLimit     int    `json:"time_limit" gorm:"default:30"` // seconds
	Points        int    `json:"points" gorm:"default:10"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (Question) TableName() string {
	return "questions"
}

func (q *Quiz) Tags() []string {
	var tags []string
	if q.TagsJSON == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(q.TagsJSON), &tags); err != nil {
		return nil
	}
	return tags
}

func (q *Quiz) SetTags(tags []string) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	q.TagsJSON = string(data)
	return nil
}

func (q *Question) Options() []string {
	var options []string
	if q.OptionsJSON == "" {
		return options
	}
	if err := json.Unmarshal([]byte(q.OptionsJSON), &options); err != nil {
		return nil
	}
	return options
}

func (q *Question) SetOptions(options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.OptionsJSON = string(data)
	return nil
}
