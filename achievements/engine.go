// achievements/engine.go - Rule-based achievement unlocking and day-streak bookkeeping
package achievements

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"quizdash/models"
)

// BlobStore is the persistence port the engine writes through. Implementations
// map string keys to JSON-serialized values; Get reports whether the key
// existed. Store failures are always recoverable: the engine logs them and
// keeps operating on in-memory state.
type BlobStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// UserAchievements holds the per-user unlock state for the whole catalog, in
// catalog order. TotalUnlocked is always the count of unlocked entries.
type UserAchievements struct {
	Achievements     []Achievement `json:"achievements"`
	TotalUnlocked    int           `json:"total_unlocked"`
	RecentlyUnlocked []Achievement `json:"recently_unlocked"`
}

// StreakData tracks consecutive calendar days with at least one completed
// quiz. BestStreak never drops below CurrentStreak.
type StreakData struct {
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
	LastQuizDate  string `json:"last_quiz_date"`
}

// Progress reports how far along one achievement's condition is.
type Progress struct {
	Current    int     `json:"current"`
	Target     int     `json:"target"`
	Percentage float64 `json:"percentage"`
}

// Calendar days are compared as local-time date strings, so clock changes or
// timezone crossings can shift the streak by a day.
const dayFormat = "2006-01-02"

// Engine owns one user's achievement and streak state and its persistence.
// It is not safe for concurrent use; each request builds its own instance.
type Engine struct {
	store           BlobStore
	achievementsKey string
	streakKey       string
	now             func() time.Time

	state  UserAchievements
	streak StreakData
}

func NewEngine(store BlobStore, userID uint) *Engine {
	return &Engine{
		store:           store,
		achievementsKey: fmt.Sprintf("achievements:%d", userID),
		streakKey:       fmt.Sprintf("streak:%d", userID),
		now:             time.Now,
	}
}

// Load populates in-memory state from the store. A missing achievements blob
// initializes a fully locked catalog and persists it; read or parse failures
// are logged and leave defaults in place. Load never returns an error to the
// caller.
func (e *Engine) Load() {
	e.state = lockedCatalog()
	e.streak = StreakData{}

	raw, ok, err := e.store.Get(e.achievementsKey)
	switch {
	case err != nil:
		log.Printf("achievements: failed to read %s: %v", e.achievementsKey, err)
	case !ok:
		e.saveAchievements()
	default:
		var stored UserAchievements
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Printf("achievements: corrupt data under %s, using defaults: %v", e.achievementsKey, err)
		} else {
			e.state = stored
		}
	}

	raw, ok, err = e.store.Get(e.streakKey)
	if err != nil {
		log.Printf("achievements: failed to read %s: %v", e.streakKey, err)
		return
	}
	if ok {
		var stored StreakData
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Printf("achievements: corrupt data under %s, using defaults: %v", e.streakKey, err)
			return
		}
		e.streak = stored
	}
}

func lockedCatalog() UserAchievements {
	achievements := make([]Achievement, len(Catalog))
	for i, def := range Catalog {
		achievements[i] = Achievement{Definition: def}
	}
	return UserAchievements{Achievements: achievements, RecentlyUnlocked: []Achievement{}}
}

// Achievements returns the current in-memory unlock state.
func (e *Engine) Achievements() UserAchievements {
	return e.state
}

// Streak returns the current in-memory streak state.
func (e *Engine) Streak() StreakData {
	return e.streak
}

// UpdateStreak advances the day streak at most once per calendar day:
// playing again today is a no-op, a last play yesterday extends the streak,
// anything older restarts it at 1. The updated state is persisted before
// returning.
func (e *Engine) UpdateStreak() StreakData {
	today := e.now().Format(dayFormat)
	yesterday := e.now().AddDate(0, 0, -1).Format(dayFormat)

	switch e.streak.LastQuizDate {
	case today:
		return e.streak
	case yesterday:
		e.streak.CurrentStreak++
	default:
		e.streak.CurrentStreak = 1
	}

	e.streak.LastQuizDate = today
	if e.streak.CurrentStreak > e.streak.BestStreak {
		e.streak.BestStreak = e.streak.CurrentStreak
	}

	e.saveStreak()
	return e.streak
}

// CheckAchievements updates the streak, derives aggregate stats from the full
// ordered result history, and unlocks every still-locked achievement whose
// condition is now met. Newly unlocked achievements are returned in catalog
// order; state is only persisted when something actually unlocked.
func (e *Engine) CheckAchievements(results []models.QuizResult) []Achievement {
	streak := e.UpdateStreak()
	stats := collectStats(results)

	newlyUnlocked := []Achievement{}
	for i := range e.state.Achievements {
		a := &e.state.Achievements[i]
		if a.IsUnlocked {
			continue
		}
		if !a.Condition.met(stats, streak.CurrentStreak) {
			continue
		}
		unlockedAt := e.now()
		a.IsUnlocked = true
		a.UnlockedAt = &unlockedAt
		newlyUnlocked = append(newlyUnlocked, *a)
	}

	if len(newlyUnlocked) == 0 {
		return newlyUnlocked
	}

	e.state.TotalUnlocked = e.countUnlocked()
	e.state.RecentlyUnlocked = newlyUnlocked
	e.saveAchievements()
	return newlyUnlocked
}

// AchievementProgress reports condition progress for one achievement without
// mutating any state. It shares the current-value derivation with
// CheckAchievements.
func (e *Engine) AchievementProgress(a Achievement, results []models.QuizResult) Progress {
	stats := collectStats(results)
	current := currentValue(a.Condition, stats, e.streak.CurrentStreak)

	target := a.Condition.Target
	if target <= 0 {
		return Progress{Current: current, Target: target, Percentage: 100}
	}
	percentage := float64(current) / float64(target) * 100
	if percentage > 100 {
		percentage = 100
	}
	return Progress{Current: current, Target: target, Percentage: percentage}
}

// ClearRecentlyUnlocked empties the transient unlock list (after the UI has
// shown it) and persists.
func (e *Engine) ClearRecentlyUnlocked() {
	e.state.RecentlyUnlocked = []Achievement{}
	e.saveAchievements()
}

func (e *Engine) countUnlocked() int {
	count := 0
	for _, a := range e.state.Achievements {
		if a.IsUnlocked {
			count++
		}
	}
	return count
}

func (e *Engine) saveAchievements() {
	data, err := json.Marshal(e.state)
	if err != nil {
		log.Printf("achievements: failed to marshal %s: %v", e.achievementsKey, err)
		return
	}
	if err := e.store.Set(e.achievementsKey, string(data)); err != nil {
		log.Printf("achievements: failed to save %s: %v", e.achievementsKey, err)
	}
}

func (e *Engine) saveStreak() {
	data, err := json.Marshal(e.streak)
	if err != nil {
		log.Printf("achievements: failed to marshal %s: %v", e.streakKey, err)
		return
	}
	if err := e.store.Set(e.streakKey, string(data)); err != nil {
		log.Printf("achievements: failed to save %s: %v", e.streakKey, err)
	}
}
