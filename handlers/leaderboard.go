// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"quizdash/database"
	"quizdash/middleware"
	"quizdash/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type leaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Country     string `json:"country,omitempty"`
	Level       int    `json:"level"`
	Value       int    `json:"value"`
}

// leaderboard sort columns keyed by the ?category= query param.
var leaderboardColumns = map[string]string{
	"score":   "total_score",
	"streak":  "best_streak",
	"quizzes": "total_quizzes",
	"perfect": "perfect_scores",
}

// GetLeaderboard ranks users by one of the aggregate stats. Guests are
// excluded. The caller's own rank is included even when off the page.
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "score")
	column, ok := leaderboardColumns[category]
	if !ok {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown leaderboard category"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	db := database.GetDB()

	var users []models.User
	if err := db.Where("is_guest = ?", false).
		Order(column + " DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load leaderboard"})
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, leaderboardEntry{
			Rank:        i + 1,
			UserID:      user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Avatar:      user.Avatar,
			Country:     user.Country,
			Level:       user.Level,
			Value:       statValue(user, category),
		})
	}

	response := fiber.Map{
		"success":     true,
		"category":    category,
		"leaderboard": entries,
	}

	if userID, err := middleware.GetUserID(c); err == nil {
		if rank, value, ok := userRank(db, userID, column, category); ok {
			response["my_rank"] = fiber.Map{"rank": rank, "value": value}
		}
	}

	return c.JSON(response)
}

func statValue(user models.User, category string) int {
	switch category {
	case "streak":
		return user.BestStreak
	case "quizzes":
		return user.TotalQuizzes
	case "perfect":
		return user.PerfectScores
	default:
		return user.TotalScore
	}
}

// userRank counts the non-guest users strictly ahead of this one on the
// chosen column.
func userRank(db *gorm.DB, userID uint, column, category string) (int, int, bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil || user.IsGuest {
		return 0, 0, false
	}

	value := statValue(user, category)

	var ahead int64
	if err := db.Model(&models.User{}).
		Where("is_guest = ?", false).
		Where(column+" > ?", value).
		Count(&ahead).Error; err != nil {
		return 0, 0, false
	}
	return int(ahead) + 1, value, true
}
