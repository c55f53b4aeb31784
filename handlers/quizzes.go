// handlers/quizzes.go
package handlers

import (
	"quizdash/database"
	"quizdash/models"

	"github.com/gofiber/fiber/v2"
)

type quizSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	Duration     int      `json:"duration"`
	IsLive       bool     `json:"is_live"`
	Participants int      `json:"participants"`
	ImageURL     string   `json:"image_url,omitempty"`
	Tags         []string `json:"tags"`
	Questions    int      `json:"questions"`
}

// questionView hides the correct answer and explanation; those are only
// revealed through the session endpoints after an answer is submitted.
type questionView struct {
	ID        uint     `json:"id"`
	Text      string   `json:"text"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"time_limit"`
	Points    int      `json:"points"`
}

// GetQuizzes lists the quiz catalog, optionally filtered by category
// or live status.
func GetQuizzes(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.Quiz{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("live") == "true" {
		query = query.Where("is_live = ?", true)
	}

	var quizzes []models.Quiz
	if err := query.Order("title ASC").Find(&quizzes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load quizzes",
		})
	}

	summaries := make([]quizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		var count int64
		db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
		summaries = append(summaries, quizSummary{
			ID:           quiz.ID,
			Title:        quiz.Title,
			Description:  quiz.Description,
			Category:     quiz.Category,
			Difficulty:   quiz.Difficulty,
			Duration:     quiz.Duration,
			IsLive:       quiz.IsLive,
			Participants: quiz.Participants,
			ImageURL:     quiz.ImageURL,
			Tags:         quiz.Tags(),
			Questions:    int(count),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"quizzes": summaries,
		"count":   len(summaries),
	})
}

// GetQuiz returns a single quiz with its questions, answers hidden.
func GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")

	db := database.GetDB()

	var quiz models.Quiz
	if err := db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Quiz not found",
		})
	}

	var questions []models.Question
	if err := db.Where("quiz_id = ?", quizID).Order("id ASC").Find(&questions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load questions",
		})
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{
			ID:        q.ID,
			Text:      q.Text,
			Options:   q.Options(),
			TimeLimit: q.TimeLimit,
			Points:    q.Points,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"quiz": fiber.Map{
			"id":           quiz.ID,
			"title":        quiz.Title,
			"description":  quiz.Description,
			"category":     quiz.Category,
			"difficulty":   quiz.Difficulty,
			"duration":     quiz.Duration,
			"is_live":      quiz.IsLive,
			"participants": quiz.Participants,
			"image_url":    quiz.ImageURL,
			"tags":         quiz.Tags(),
			"questions":    views,
		},
	})
}

// GetCategories lists distinct quiz categories.
func GetCategories(c *fiber.Ctx) error {
	db := database.GetDB()

	var categories []string
	if err := db.Model(&models.Quiz{}).Distinct("category").Order("category ASC").Pluck("category", &categories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load categories",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"categories": categories,
	})
}
