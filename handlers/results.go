// handlers/results.go
package handlers

import (
	"strconv"

	"quizdash/database"
	"quizdash/middleware"
	"quizdash/models"

	"github.com/gofiber/fiber/v2"
)

// GetResults lists the authenticated user's quiz history, newest first.
func GetResults(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	db := database.GetDB()

	query := db.Where("user_id = ?", userID)
	if quizID := c.Query("quiz_id"); quizID != "" {
		query = query.Where("quiz_id = ?", quizID)
	}

	var results []models.QuizResult
	if err := query.Order("completed_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load results"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
		"count":   len(results),
	})
}

// GetResult returns one result including the per-question answer breakdown.
func GetResult(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var result models.QuizResult
	if err := db.First(&result, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Result not found"})
	}
	if result.UserID != userID {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not your result"})
	}

	answers, err := result.Answers()
	if err != nil {
		answers = nil
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
		"answers": answers,
	})
}
