// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"quizdash/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.QuizResult{},
		&models.UserBlob{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_total_score ON users(total_score DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Quiz indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quizzes_category ON quizzes(category)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quizzes_live ON quizzes(is_live)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_questions_quiz ON questions(quiz_id)")

	// Result indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_results_user ON quiz_results(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_results_quiz ON quiz_results(quiz_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_results_completed ON quiz_results(completed_at DESC)")
}
