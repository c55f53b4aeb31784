// handlers/session.go - Quiz session REST endpoints
package handlers

import (
	"errors"
	"log"

	"quizdash/achievements"
	"quizdash/database"
	"quizdash/middleware"
	"quizdash/models"
	"quizdash/services"
	"quizdash/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StartSessionRequest struct {
	QuizID    string `json:"quiz_id"`
	TimeLimit int    `json:"time_limit,omitempty"`
}

type SelectAnswerRequest struct {
	Answer int `json:"answer"`
}

// revealView is the post-submit view of a question: the correct answer and
// explanation become visible only here.
type revealView struct {
	QuestionID    uint   `json:"question_id"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	IsCorrect     bool   `json:"is_correct"`
}

// StartSession begins a quiz attempt for the authenticated user. A user has
// at most one live session; starting while one exists returns it instead.
func StartSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil || req.QuizID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "quiz_id required"})
	}

	db := database.GetDB()

	var quiz models.Quiz
	if err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).First(&quiz, "id = ?", req.QuizID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quiz not found"})
	}
	if len(quiz.Questions) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Quiz has no questions"})
	}

	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = quiz.Questions[0].TimeLimit
	}
	if timeLimit <= 0 {
		timeLimit = 30
	}

	manager := services.GetSessionManager()
	s, err := manager.Create(userID, quiz, timeLimit)
	if err != nil {
		if errors.Is(err, services.ErrActiveSession) {
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"error":   "An active session already exists",
				"session": sessionPayload(s),
			})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to start session"})
	}

	log.Printf("🎮 Session %s started: user=%d quiz=%s", s.ID(), userID, quiz.ID)

	return c.JSON(fiber.Map{
		"success": true,
		"session": sessionPayload(s),
	})
}

// GetSession returns the current session state.
func GetSession(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}
	return c.JSON(fiber.Map{
		"success": true,
		"session": sessionPayload(s),
	})
}

// GetActiveSession returns the user's live session, if any.
func GetActiveSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	s, ok := services.GetSessionManager().GetByUser(userID)
	if !ok {
		return c.JSON(fiber.Map{"success": true, "session": nil})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"session": sessionPayload(s),
	})
}

// SelectAnswer records the user's choice for the open question.
func SelectAnswer(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}

	var req SelectAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	s.SelectAnswer(req.Answer)
	return c.JSON(fiber.Map{
		"success": true,
		"session": sessionPayload(s),
	})
}

// SubmitAnswer locks in the selected answer and reveals the outcome.
func SubmitAnswer(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}

	s.SubmitAnswer()
	return revealResponse(c, s)
}

// TimeUp handles a client-reported countdown expiry. The server countdown
// fires on its own; this only matters when the client clock runs ahead.
func TimeUp(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}

	s.HandleTimeUp()
	return revealResponse(c, s)
}

// NextQuestion advances to the next question, or completes the session on
// the last one. Completion persists the result, refreshes the user's
// aggregate stats, and runs the achievement checks.
func NextQuestion(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}

	result := s.NextQuestion()
	if result == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"session": sessionPayload(s),
		})
	}

	userID := s.UserID()
	db := database.GetDB()

	if err := db.Create(result).Error; err != nil {
		log.Printf("⚠️ Failed to persist result for session %s: %v", s.ID(), err)
	}

	var history []models.QuizResult
	if err := db.Where("user_id = ?", userID).Order("completed_at ASC").Find(&history).Error; err != nil {
		log.Printf("⚠️ Failed to load result history for user %d: %v", userID, err)
	}

	engine := achievements.NewEngine(database.NewBlobStore(db), userID)
	engine.Load()
	newlyUnlocked := engine.CheckAchievements(history)
	streak := engine.Streak()

	updateUserStats(db, userID, history, streak)

	services.GetSessionManager().Remove(s.ID())

	log.Printf("🏁 Session %s completed: user=%d score=%d (%d%%), %d new achievements",
		s.ID(), userID, result.Score, result.Percentage, len(newlyUnlocked))

	answers, _ := result.Answers()

	return c.JSON(fiber.Map{
		"success": true,
		"result": fiber.Map{
			"id":                result.ID,
			"quiz_id":           result.QuizID,
			"score":             result.Score,
			"total_questions":   result.TotalQuestions,
			"correct_answers":   result.CorrectAnswers,
			"incorrect_answers": result.IncorrectAnswers,
			"percentage":        result.Percentage,
			"time_spent":        result.TimeSpent,
			"completed_at":      result.CompletedAt,
			"answers":           answers,
		},
		"newly_unlocked": newlyUnlocked,
		"streak":         streak,
	})
}

// PauseSession freezes the countdown.
func PauseSession(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}
	s.Pause()
	return c.JSON(fiber.Map{"success": true, "session": sessionPayload(s)})
}

// ResumeSession continues a paused session.
func ResumeSession(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}
	s.Resume()
	return c.JSON(fiber.Map{"success": true, "session": sessionPayload(s)})
}

// AbandonSession discards the session without emitting a result.
func AbandonSession(c *fiber.Ctx) error {
	s, errResp := ownedSession(c)
	if s == nil {
		return errResp
	}
	services.GetSessionManager().Remove(s.ID())
	log.Printf("🚪 Session %s abandoned by user %d", s.ID(), s.UserID())
	return c.JSON(fiber.Map{"success": true})
}

// Helper functions

// ownedSession resolves the :id param to a session owned by the caller. On
// failure it returns (nil, response) with the error already written.
func ownedSession(c *fiber.Ctx) (*session.Session, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	s, ok := services.GetSessionManager().Get(c.Params("id"))
	if !ok {
		return nil, c.Status(404).JSON(fiber.Map{"success": false, "error": "Session not found"})
	}
	if s.UserID() != userID {
		return nil, c.Status(403).JSON(fiber.Map{"success": false, "error": "Not your session"})
	}
	return s, nil
}

// sessionPayload combines a snapshot with the open question's public view.
func sessionPayload(s *session.Session) fiber.Map {
	snap := s.Snapshot()

	payload := fiber.Map{
		"id":              snap.SessionID,
		"quiz_id":         snap.QuizID,
		"state":           snap.State,
		"question_index":  snap.QuestionIndex,
		"total_questions": snap.TotalQuestions,
		"time_remaining":  snap.TimeRemaining,
		"score":           snap.Score,
		"streak":          snap.Streak,
		"answer_revealed": snap.AnswerRevealed,
		"selected_answer": snap.SelectedAnswer,
	}

	if snap.State == session.StateInProgress || snap.State == session.StatePaused {
		if q, ok := s.CurrentQuestion(); ok {
			payload["question"] = questionView{
				ID:        q.ID,
				Text:      q.Text,
				Options:   q.Options(),
				TimeLimit: q.TimeLimit,
				Points:    q.Points,
			}
		}
	}
	return payload
}

// revealResponse reports the outcome of a submit or timeout, including the
// correct answer once revealed.
func revealResponse(c *fiber.Ctx, s *session.Session) error {
	snap := s.Snapshot()

	payload := fiber.Map{
		"success": true,
		"session": sessionPayload(s),
	}
	if snap.AnswerRevealed && len(snap.Answers) > snap.QuestionIndex {
		answer := snap.Answers[snap.QuestionIndex]
		reveal := revealView{
			CorrectAnswer: answer.CorrectAnswer,
			IsCorrect:     answer.IsCorrect,
		}
		if q, ok := s.CurrentQuestion(); ok {
			reveal.QuestionID = q.ID
			reveal.Explanation = q.Explanation
		}
		payload["reveal"] = reveal
	}
	return c.JSON(payload)
}

// updateUserStats refreshes the denormalized aggregates on the users row
// from the full result history.
func updateUserStats(db *gorm.DB, userID uint, history []models.QuizResult, streak achievements.StreakData) {
	totalScore := 0
	perfectScores := 0
	for _, r := range history {
		totalScore += r.Score
		if r.Percentage == 100 {
			perfectScores++
		}
	}

	updates := map[string]interface{}{
		"total_quizzes":  len(history),
		"total_score":    totalScore,
		"perfect_scores": perfectScores,
		"current_streak": streak.CurrentStreak,
		"best_streak":    streak.BestStreak,
		"level":          1 + totalScore/500,
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		log.Printf("⚠️ Failed to update stats for user %d: %v", userID, err)
	}
}
