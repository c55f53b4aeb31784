// models/result.go - Completed quiz attempt records
package models

import (
	"encoding/json"
	"time"
)

// UserAnswer records one answered (or timed-out) question within an attempt.
// SelectedAnswer is nil when the question timed out with no selection.
// Created once per question, in question order, never mutated afterwards.
type UserAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer *int   `json:"selected_answer"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	TimeSpent      int    `json:"time_spent"` // seconds
	Question       string `json:"question"`   // denormalized for results display
}

// QuizResult is the immutable outcome of one completed quiz attempt.
// The session state machine is the sole producer; history is append-only.
type QuizResult struct {
	ID               string    `json:"id" gorm:"primaryKey;size:64"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	QuizID           string    `json:"quiz_id" gorm:"not null;index;size:120"`
	Score            int       `json:"score" gorm:"default:0"`
	TotalQuestions   int       `json:"total_questions" gorm:"default:0"`
	CorrectAnswers   int       `json:"correct_answers" gorm:"default:0"`
	IncorrectAnswers int       `json:"incorrect_answers" gorm:"default:0"`
	Percentage       int       `json:"percentage" gorm:"default:0"` // 0-100
	TimeSpent        int       `json:"time_spent" gorm:"default:0"` // seconds
	CompletedAt      time.Time `json:"completed_at" gorm:"index"`
	AnswersJSON      string    `json:"-" gorm:"type:text"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

func (r *QuizResult) Answers() ([]UserAnswer, error) {
	var answers []UserAnswer
	if r.AnswersJSON == "" {
		return answers, nil
	}
	err := json.Unmarshal([]byte(r.AnswersJSON), &answers)
	return answers, err
}

func (r *QuizResult) SetAnswers(answers []UserAnswer) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	r.AnswersJSON = string(data)
	return nil
}
