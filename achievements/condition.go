// achievements/condition.go - Unlock conditions and their evaluation
package achievements

import (
	"strings"

	"quizdash/models"
)

type ConditionType string

const (
	QuizzesCompleted ConditionType = "quizzes_completed"
	PerfectScores    ConditionType = "perfect_scores"
	StreakDays       ConditionType = "streak_days"
	TotalScore       ConditionType = "total_score"
	CategoryMaster   ConditionType = "category_master"
)

// Condition determines when an achievement unlocks. Category is only set for
// CategoryMaster conditions.
type Condition struct {
	Type     ConditionType `json:"type"`
	Target   int           `json:"target"`
	Category string        `json:"category,omitempty"`
}

// historyStats are the aggregates derived from the full result history that
// conditions are evaluated against.
type historyStats struct {
	totalQuizzes   int
	perfectScores  int
	totalScore     int
	categoryCounts map[string]int // lowercased quiz ID -> completion count
}

func collectStats(results []models.QuizResult) historyStats {
	stats := historyStats{categoryCounts: make(map[string]int)}
	for _, r := range results {
		stats.totalQuizzes++
		if r.Percentage == 100 {
			stats.perfectScores++
		}
		stats.totalScore += r.Score
		stats.categoryCounts[strings.ToLower(r.QuizID)]++
	}
	return stats
}

// currentValue is the single derivation shared by unlock evaluation and
// progress reporting. An unknown condition type always reports 0 and so
// never unlocks.
func currentValue(cond Condition, stats historyStats, currentStreak int) int {
	switch cond.Type {
	case QuizzesCompleted:
		return stats.totalQuizzes
	case PerfectScores:
		return stats.perfectScores
	case StreakDays:
		return currentStreak
	case TotalScore:
		return stats.totalScore
	case CategoryMaster:
		if cond.Category == "" {
			return 0
		}
		// Category is inferred by case-insensitive substring match against
		// the quiz ID; quiz IDs are slugs that embed the category name.
		needle := strings.ToLower(cond.Category)
		count := 0
		for quizID, n := range stats.categoryCounts {
			if strings.Contains(quizID, needle) {
				count += n
			}
		}
		return count
	}
	return 0
}

func (c Condition) met(stats historyStats, currentStreak int) bool {
	return currentValue(c, stats, currentStreak) >= c.Target
}
