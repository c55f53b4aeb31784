// achievements/catalog.go - Static achievement catalog
package achievements

import "time"

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Definition is one immutable entry of the static catalog.
type Definition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Condition `json:"condition"`
	Rarity      Rarity    `json:"rarity"`
}

// Achievement is a catalog definition plus its per-user unlock state.
// Unlocking is monotonic: once IsUnlocked flips to true it never reverts
// and UnlockedAt is set exactly once.
type Achievement struct {
	Definition
	IsUnlocked bool       `json:"is_unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Catalog lists every achievement in display order. Unlock state is kept per
// user; this slice is never mutated.
var Catalog = []Definition{
	{
		ID:          "first_quiz",
		Title:       "Getting Started",
		Description: "Complete your first quiz",
		Icon:        "play-circle",
		Condition:   Condition{Type: QuizzesCompleted, Target: 1},
		Rarity:      RarityCommon,
	},
	{
		ID:          "quiz_enthusiast",
		Title:       "Quiz Enthusiast",
		Description: "Complete 10 quizzes",
		Icon:        "trophy",
		Condition:   Condition{Type: QuizzesCompleted, Target: 10},
		Rarity:      RarityCommon,
	},
	{
		ID:          "quiz_master",
		Title:       "Quiz Master",
		Description: "Complete 50 quizzes",
		Icon:        "star",
		Condition:   Condition{Type: QuizzesCompleted, Target: 50},
		Rarity:      RarityRare,
	},
	{
		ID:          "quiz_legend",
		Title:       "Quiz Legend",
		Description: "Complete 100 quizzes",
		Icon:        "crown",
		Condition:   Condition{Type: QuizzesCompleted, Target: 100},
		Rarity:      RarityEpic,
	},
	{
		ID:          "perfectionist",
		Title:       "Perfectionist",
		Description: "Get 5 perfect scores",
		Icon:        "checkmark-circle",
		Condition:   Condition{Type: PerfectScores, Target: 5},
		Rarity:      RarityRare,
	},
	{
		ID:          "streak_starter",
		Title:       "Streak Starter",
		Description: "Maintain a 3-day streak",
		Icon:        "flame",
		Condition:   Condition{Type: StreakDays, Target: 3},
		Rarity:      RarityCommon,
	},
	{
		ID:          "streak_master",
		Title:       "Streak Master",
		Description: "Maintain a 7-day streak",
		Icon:        "bonfire",
		Condition:   Condition{Type: StreakDays, Target: 7},
		Rarity:      RarityRare,
	},
	{
		ID:          "science_expert",
		Title:       "Science Expert",
		Description: "Complete 20 Science quizzes",
		Icon:        "flask",
		Condition:   Condition{Type: CategoryMaster, Target: 20, Category: "Science"},
		Rarity:      RarityRare,
	},
	{
		ID:          "history_buff",
		Title:       "History Buff",
		Description: "Complete 20 History quizzes",
		Icon:        "library",
		Condition:   Condition{Type: CategoryMaster, Target: 20, Category: "History"},
		Rarity:      RarityRare,
	},
	{
		ID:          "math_genius",
		Title:       "Math Genius",
		Description: "Complete 20 Math quizzes",
		Icon:        "calculator",
		Condition:   Condition{Type: CategoryMaster, Target: 20, Category: "Math"},
		Rarity:      RarityRare,
	},
	{
		ID:          "geography_explorer",
		Title:       "Geography Explorer",
		Description: "Complete 20 Geography quizzes",
		Icon:        "globe",
		Condition:   Condition{Type: CategoryMaster, Target: 20, Category: "Geography"},
		Rarity:      RarityRare,
	},
	{
		ID:          "sports_fanatic",
		Title:       "Sports Fanatic",
		Description: "Complete 20 Sports quizzes",
		Icon:        "football",
		Condition:   Condition{Type: CategoryMaster, Target: 20, Category: "Sports"},
		Rarity:      RarityRare,
	},
	{
		ID:          "tech_wizard",
		Title:       "Tech Wizard",
		Description: "Complete 20 Technology quizzes",
		Icon:        "laptop",
		Condition:   Condition{Type: CategoryMaster, Target: 20, Category: "Technology"},
		Rarity:      RarityRare,
	},
	{
		ID:          "ultimate_champion",
		Title:       "Ultimate Champion",
		Description: "Reach 10,000 total points",
		Icon:        "medal",
		Condition:   Condition{Type: TotalScore, Target: 10000},
		Rarity:      RarityLegendary,
	},
}
