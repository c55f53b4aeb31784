// database/seed.go - Demo catalog and leaderboard seed data
package database

import (
	"log"
	"strings"
	"time"

	"quizdash/models"

	"github.com/gosimple/slug"
)

// SeedCatalog loads the demo quiz catalog and leaderboard users on first
// start. Existing data is never touched.
func SeedCatalog() {
	db := GetDB()

	var quizCount int64
	db.Model(&models.Quiz{}).Count(&quizCount)
	if quizCount == 0 {
		seedQuizzes()
	}

	var userCount int64
	db.Model(&models.User{}).Where("is_guest = ?", false).Count(&userCount)
	if userCount == 0 {
		seedUsers()
	}
}

type seedQuestion struct {
	Text          string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

func seedQuizzes() {
	db := GetDB()
	log.Println("🌱 Seeding quiz catalog...")

	type seedQuiz struct {
		Title        string
		Description  string
		Category     string
		Difficulty   string
		Duration     int
		IsLive       bool
		Participants int
		Tags         []string
		Questions    []seedQuestion
	}

	quizzes := []seedQuiz{
		{
			Title:        "Statistics Math Quiz",
			Description:  "Test your knowledge of basic statistics concepts",
			Category:     "Math",
			Difficulty:   "Medium",
			Duration:     15,
			IsLive:       true,
			Participants: 1234,
			Tags:         []string{"Statistics", "Math", "Data"},
			Questions: []seedQuestion{
				{
					Text:          "What is the mean of the dataset: 2, 4, 6, 8, 10?",
					Options:       []string{"5", "6", "7", "8"},
					CorrectAnswer: 1,
					Explanation:   "Add all values and divide by the count: (2+4+6+8+10)/5 = 30/5 = 6.",
				},
				{
					Text:          "What is the median of: 1, 3, 5, 7, 9?",
					Options:       []string{"3", "5", "7", "9"},
					CorrectAnswer: 1,
					Explanation:   "The median is the middle value when numbers are arranged in order.",
				},
				{
					Text:          "Which measure is most affected by extreme outliers?",
					Options:       []string{"Median", "Mode", "Mean", "Range of quartiles"},
					CorrectAnswer: 2,
					Explanation:   "The mean shifts toward outliers because every value contributes to it.",
				},
				{
					Text:          "What is the mode of: 2, 2, 3, 5, 5, 5, 7?",
					Options:       []string{"2", "3", "5", "7"},
					CorrectAnswer: 2,
					Explanation:   "The mode is the most frequent value; 5 appears three times.",
				},
			},
		},
		{
			Title:        "Integers Math Quiz",
			Description:  "Master the fundamentals of integer operations",
			Category:     "Math",
			Difficulty:   "Easy",
			Duration:     10,
			IsLive:       true,
			Participants: 856,
			Tags:         []string{"Integers", "Math", "Basic"},
			Questions: []seedQuestion{
				{
					Text:          "What is (-7) + 12?",
					Options:       []string{"-19", "-5", "5", "19"},
					CorrectAnswer: 2,
					Explanation:   "Adding a positive to a negative moves right on the number line: -7 + 12 = 5.",
				},
				{
					Text:          "What is (-4) × (-6)?",
					Options:       []string{"-24", "-10", "10", "24"},
					CorrectAnswer: 3,
					Explanation:   "The product of two negatives is positive: (-4) × (-6) = 24.",
				},
				{
					Text:          "Which integer is the additive identity?",
					Options:       []string{"-1", "0", "1", "10"},
					CorrectAnswer: 1,
					Explanation:   "Adding 0 to any integer leaves it unchanged.",
				},
			},
		},
		{
			Title:        "Matrices Math Quiz",
			Description:  "Advanced matrix operations and transformations",
			Category:     "Math",
			Difficulty:   "Hard",
			Duration:     25,
			Participants: 432,
			Tags:         []string{"Matrices", "Math", "Advanced"},
			Questions: []seedQuestion{
				{
					Text:          "What is the result of multiplying any matrix by the identity matrix?",
					Options:       []string{"The zero matrix", "The identity matrix", "The original matrix", "Its transpose"},
					CorrectAnswer: 2,
					Explanation:   "The identity matrix is the multiplicative identity: AI = IA = A.",
				},
				{
					Text:          "A 2×3 matrix can be multiplied on the right by a matrix of which shape?",
					Options:       []string{"2×3", "3×2", "2×2", "3×3 only"},
					CorrectAnswer: 1,
					Explanation:   "The inner dimensions must match: (2×3)(3×2) is defined.",
				},
				{
					Text:          "What is the determinant of [[2, 0], [0, 3]]?",
					Options:       []string{"0", "5", "6", "23"},
					CorrectAnswer: 2,
					Explanation:   "For a diagonal matrix the determinant is the product of the diagonal: 2 × 3 = 6.",
				},
			},
		},
		{
			Title:        "World Geography",
			Description:  "Test your knowledge of countries, capitals, and landmarks",
			Category:     "Geography",
			Difficulty:   "Medium",
			Duration:     20,
			Participants: 2156,
			Tags:         []string{"Geography", "World", "Countries"},
			Questions: []seedQuestion{
				{
					Text:          "What is the capital of Australia?",
					Options:       []string{"Sydney", "Melbourne", "Canberra", "Perth"},
					CorrectAnswer: 2,
					Explanation:   "Canberra was purpose-built as the capital as a compromise between Sydney and Melbourne.",
				},
				{
					Text:          "Which is the longest river in the world?",
					Options:       []string{"Amazon", "Nile", "Yangtze", "Mississippi"},
					CorrectAnswer: 1,
					Explanation:   "The Nile runs about 6,650 km through northeastern Africa.",
				},
				{
					Text:          "The Andes mountain range runs along which continent?",
					Options:       []string{"Africa", "Asia", "North America", "South America"},
					CorrectAnswer: 3,
					Explanation:   "The Andes stretch along the western edge of South America.",
				},
				{
					Text:          "Which country has the most time zones?",
					Options:       []string{"Russia", "United States", "France", "China"},
					CorrectAnswer: 2,
					Explanation:   "Counting overseas territories, France spans 12 time zones.",
				},
			},
		},
		{
			Title:        "Science Fundamentals",
			Description:  "Basic concepts in physics, chemistry, and biology",
			Category:     "Science",
			Difficulty:   "Easy",
			Duration:     18,
			Participants: 1789,
			Tags:         []string{"Science", "Physics", "Chemistry", "Biology"},
			Questions: []seedQuestion{
				{
					Text:          "What is the chemical symbol for gold?",
					Options:       []string{"Go", "Gd", "Au", "Ag"},
					CorrectAnswer: 2,
					Explanation:   "Au comes from the Latin name for gold, aurum.",
				},
				{
					Text:          "Which organelle is known as the powerhouse of the cell?",
					Options:       []string{"Nucleus", "Mitochondrion", "Ribosome", "Golgi apparatus"},
					CorrectAnswer: 1,
					Explanation:   "Mitochondria produce most of the cell's ATP.",
				},
				{
					Text:          "What force keeps planets in orbit around the Sun?",
					Options:       []string{"Magnetism", "Friction", "Gravity", "Nuclear force"},
					CorrectAnswer: 2,
					Explanation:   "Gravitational attraction between the Sun and each planet curves their paths into orbits.",
				},
				{
					Text:          "Water boils at what temperature at sea level?",
					Options:       []string{"90°C", "100°C", "110°C", "120°C"},
					CorrectAnswer: 1,
					Explanation:   "At standard atmospheric pressure water boils at 100°C.",
				},
			},
		},
	}

	for _, sq := range quizzes {
		// IDs embed the category so category-based achievements can match on
		// the quiz ID alone.
		quiz := models.Quiz{
			ID:           slug.Make(sq.Category + " " + sq.Title),
			Title:        sq.Title,
			Description:  sq.Description,
			Category:     sq.Category,
			Difficulty:   sq.Difficulty,
			Duration:     sq.Duration,
			IsLive:       sq.IsLive,
			Participants: sq.Participants,
			ImageURL:     "https://via.placeholder.com/300x200",
			CreatedAt:    time.Now(),
		}
		if err := quiz.SetTags(sq.Tags); err != nil {
			log.Printf("Seed: failed to encode tags for %s: %v", quiz.ID, err)
		}

		if err := db.Create(&quiz).Error; err != nil {
			log.Printf("Seed: failed to create quiz %s: %v", quiz.ID, err)
			continue
		}

		for _, q := range sq.Questions {
			question := models.Question{
				QuizID:        quiz.ID,
				Text:          q.Text,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				TimeLimit:     30,
				Points:        10,
			}
			if err := question.SetOptions(q.Options); err != nil {
				log.Printf("Seed: failed to encode options for %s: %v", quiz.ID, err)
				continue
			}
			if err := db.Create(&question).Error; err != nil {
				log.Printf("Seed: failed to create question for %s: %v", quiz.ID, err)
			}
		}
	}

	log.Printf("✅ Seeded %d quizzes", len(quizzes))
}

func seedUsers() {
	db := GetDB()
	log.Println("🌱 Seeding demo leaderboard users...")

	demo := []struct {
		Name    string
		Country string
		Score   int
		Quizzes int
	}{
		{"John Doe", "United States", 2450, 38},
		{"Emma Wilson", "Canada", 2380, 35},
		{"Alex Chen", "Singapore", 2320, 34},
		{"Maria Garcia", "Spain", 2280, 31},
		{"David Kim", "South Korea", 2250, 30},
		{"Sophie Martin", "France", 2200, 29},
		{"James Brown", "United Kingdom", 2150, 28},
		{"Lisa Anderson", "Australia", 2100, 27},
		{"Michael Johnson", "United States", 2050, 26},
		{"Anna Müller", "Germany", 2000, 25},
	}

	for _, d := range demo {
		username := strings.ToLower(strings.ReplaceAll(d.Name, " ", "."))
		email := username + "@quizdash.demo"
		user := models.User{
			Username:     username,
			Email:        &email,
			Password:     "", // demo accounts cannot log in
			DisplayName:  d.Name,
			Country:      d.Country,
			Level:        1 + d.Score/500,
			TotalQuizzes: d.Quizzes,
			TotalScore:   d.Score,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Seed: failed to create user %s: %v", username, err)
		}
	}

	log.Printf("✅ Seeded %d demo users", len(demo))
}
