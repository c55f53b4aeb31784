// handlers/achievements.go
package handlers

import (
	"quizdash/achievements"
	"quizdash/database"
	"quizdash/middleware"
	"quizdash/models"

	"github.com/gofiber/fiber/v2"
)

type achievementView struct {
	achievements.Achievement
	Progress achievements.Progress `json:"progress"`
}

// GetAchievements returns the user's full achievement list with unlock
// progress, plus their streak bookkeeping.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var history []models.QuizResult
	if err := db.Where("user_id = ?", userID).Order("completed_at ASC").Find(&history).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load results"})
	}

	engine := achievements.NewEngine(database.NewBlobStore(db), userID)
	engine.Load()

	state := engine.Achievements()
	views := make([]achievementView, 0, len(state.Achievements))
	for _, a := range state.Achievements {
		views = append(views, achievementView{
			Achievement: a,
			Progress:    engine.AchievementProgress(a, history),
		})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"achievements":      views,
		"total_unlocked":    state.TotalUnlocked,
		"recently_unlocked": state.RecentlyUnlocked,
		"streak":            engine.Streak(),
	})
}

// ClearRecentAchievements dismisses the recently-unlocked notifications.
func ClearRecentAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	engine := achievements.NewEngine(database.NewBlobStore(database.GetDB()), userID)
	engine.Load()
	engine.ClearRecentlyUnlocked()

	return c.JSON(fiber.Map{"success": true})
}
