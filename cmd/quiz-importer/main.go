// cmd/quiz-importer - Bulk quiz import from a JSON file
//
// Usage: quiz-importer <quizzes.json>
//
// The file holds an array of quizzes with embedded questions. Existing
// quizzes with the same ID are replaced along with their questions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"quizdash/database"
	"quizdash/models"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
)

type quizFile struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Difficulty  string         `json:"difficulty"`
	Duration    int            `json:"duration"`
	ImageURL    string         `json:"image_url"`
	Tags        []string       `json:"tags"`
	Questions   []questionFile `json:"questions"`
}

type questionFile struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	TimeLimit     int      `json:"time_limit"`
	Points        int      `json:"points"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <quizzes.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ No .env file found, using environment variables")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", flag.Arg(0), err)
	}

	var quizzes []quizFile
	if err := json.Unmarshal(data, &quizzes); err != nil {
		log.Fatalf("❌ Failed to parse %s: %v", flag.Arg(0), err)
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	imported := 0
	for _, qf := range quizzes {
		if err := validate(qf); err != nil {
			log.Printf("⚠️ Skipping %q: %v", qf.Title, err)
			continue
		}

		quiz := models.Quiz{
			ID:          slug.Make(qf.Category + " " + qf.Title),
			Title:       qf.Title,
			Description: qf.Description,
			Category:    qf.Category,
			Difficulty:  qf.Difficulty,
			Duration:    qf.Duration,
			ImageURL:    qf.ImageURL,
		}
		if err := quiz.SetTags(qf.Tags); err != nil {
			log.Printf("⚠️ Skipping %q: bad tags: %v", qf.Title, err)
			continue
		}

		// Replace wholesale: old questions go with the old quiz row.
		db.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{})
		db.Where("id = ?", quiz.ID).Delete(&models.Quiz{})

		if err := db.Create(&quiz).Error; err != nil {
			log.Printf("⚠️ Failed to create quiz %q: %v", qf.Title, err)
			continue
		}

		for _, q := range qf.Questions {
			question := models.Question{
				QuizID:        quiz.ID,
				Text:          q.Text,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				TimeLimit:     q.TimeLimit,
				Points:        q.Points,
			}
			if question.TimeLimit <= 0 {
				question.TimeLimit = 30
			}
			if question.Points <= 0 {
				question.Points = 10
			}
			if err := question.SetOptions(q.Options); err != nil {
				log.Printf("⚠️ Bad options in quiz %q: %v", qf.Title, err)
				continue
			}
			if err := db.Create(&question).Error; err != nil {
				log.Printf("⚠️ Failed to create question in %q: %v", qf.Title, err)
			}
		}

		log.Printf("✅ Imported %q (%s) with %d questions", quiz.Title, quiz.ID, len(qf.Questions))
		imported++
	}

	log.Printf("🎉 Done: %d/%d quizzes imported", imported, len(quizzes))
}

func validate(qf quizFile) error {
	if qf.Title == "" {
		return fmt.Errorf("missing title")
	}
	if qf.Category == "" {
		return fmt.Errorf("missing category")
	}
	if len(qf.Questions) == 0 {
		return fmt.Errorf("no questions")
	}
	for i, q := range qf.Questions {
		if q.Text == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d needs at least two options", i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d has out-of-range correct_answer", i+1)
		}
	}
	return nil
}
