// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	Country     string  `gorm:"size:50" json:"country"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`

	// Progression
	Level int `gorm:"default:1" json:"level"`

	// Lifetime stats, denormalized from quiz_results for leaderboard queries
	TotalQuizzes  int `gorm:"default:0" json:"total_quizzes"`
	TotalScore    int `gorm:"default:0" json:"total_score"`
	PerfectScores int `gorm:"default:0" json:"perfect_scores"`
	CurrentStreak int `gorm:"default:0" json:"current_streak"`
	BestStreak    int `gorm:"default:0" json:"best_streak"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Relationships
	Results []QuizResult `gorm:"foreignKey:UserID" json:"results,omitempty"`
}

func (User) TableName() string {
	return "users"
}
