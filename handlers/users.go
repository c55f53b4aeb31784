// handlers/users.go
package handlers

import (
	"time"

	"quizdash/database"
	"quizdash/middleware"
	"quizdash/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Country     *string `json:"country,omitempty"`
}

// GetMe returns the authenticated user's profile and aggregate stats.
func GetMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"stats": fiber.Map{
			"total_quizzes":  user.TotalQuizzes,
			"total_score":    user.TotalScore,
			"perfect_scores": user.PerfectScores,
			"current_streak": user.CurrentStreak,
			"best_streak":    user.BestStreak,
			"level":          user.Level,
		},
	})
}

// UpdateProfile changes display name, avatar, or country. Only fields
// present in the body are touched.
func UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}

	db := database.GetDB()
	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
	}

	var user models.User
	db.First(&user, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetUserStats returns another user's public stats.
func GetUserStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, "id = ? AND is_guest = ?", c.Params("id"), false).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"avatar":       user.Avatar,
			"country":      user.Country,
			"level":        user.Level,
		},
		"stats": fiber.Map{
			"total_quizzes":  user.TotalQuizzes,
			"total_score":    user.TotalScore,
			"perfect_scores": user.PerfectScores,
			"best_streak":    user.BestStreak,
		},
	})
}
