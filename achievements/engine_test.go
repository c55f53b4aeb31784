package achievements

import (
	"errors"
	"strings"
	"testing"
	"time"

	"quizdash/models"
)

// memStore is an in-memory BlobStore for tests. Errors can be injected to
// exercise the swallow-and-log paths.
type memStore struct {
	data   map[string]string
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memStore) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func atDay(t *testing.T, day string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	return func() time.Time { return parsed.Add(12 * time.Hour) }
}

func makeResults(n int, quizID string, score, percentage int) []models.QuizResult {
	results := make([]models.QuizResult, n)
	for i := range results {
		results[i] = models.QuizResult{
			QuizID:     quizID,
			Score:      score,
			Percentage: percentage,
		}
	}
	return results
}

func loadedEngine(t *testing.T, store BlobStore) *Engine {
	t.Helper()
	e := NewEngine(store, 1)
	e.now = atDay(t, "2026-03-10")
	e.Load()
	return e
}

func TestLoadInitializesLockedCatalog(t *testing.T) {
	store := newMemStore()
	e := loadedEngine(t, store)

	state := e.Achievements()
	if len(state.Achievements) != len(Catalog) {
		t.Fatalf("expected %d achievements, got %d", len(Catalog), len(state.Achievements))
	}
	for _, a := range state.Achievements {
		if a.IsUnlocked || a.UnlockedAt != nil {
			t.Errorf("achievement %s should start locked", a.ID)
		}
	}
	if state.TotalUnlocked != 0 {
		t.Errorf("expected 0 unlocked, got %d", state.TotalUnlocked)
	}

	// A missing blob is initialized and persisted.
	if _, ok := store.data["achievements:1"]; !ok {
		t.Error("expected locked catalog to be persisted on first load")
	}
}

func TestLoadCorruptDataUsesDefaults(t *testing.T) {
	store := newMemStore()
	store.data["achievements:1"] = "{not json"
	store.data["streak:1"] = "also not json"

	e := loadedEngine(t, store)

	if len(e.Achievements().Achievements) != len(Catalog) {
		t.Fatal("corrupt achievements blob should fall back to locked catalog")
	}
	if e.Streak().CurrentStreak != 0 {
		t.Fatal("corrupt streak blob should fall back to zero streak")
	}
}

func TestLoadStoreFailureKeepsDefaults(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")

	e := loadedEngine(t, store)

	if len(e.Achievements().Achievements) != len(Catalog) {
		t.Fatal("read failure should leave the locked catalog in place")
	}
}

func TestUpdateStreakSameDayIsNoOp(t *testing.T) {
	e := loadedEngine(t, newMemStore())

	first := e.UpdateStreak()
	if first.CurrentStreak != 1 || first.BestStreak != 1 {
		t.Fatalf("first play should start streak at 1, got %+v", first)
	}

	second := e.UpdateStreak()
	if second.CurrentStreak != 1 {
		t.Errorf("same-day replay must not advance the streak, got %d", second.CurrentStreak)
	}
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	store := newMemStore()
	days := []string{"2026-03-10", "2026-03-11", "2026-03-12"}

	var got StreakData
	for _, day := range days {
		e := NewEngine(store, 1)
		e.now = atDay(t, day)
		e.Load()
		got = e.UpdateStreak()
	}

	if got.CurrentStreak != 3 {
		t.Errorf("three consecutive days should give streak 3, got %d", got.CurrentStreak)
	}
	if got.BestStreak != 3 {
		t.Errorf("best streak should track current, got %d", got.BestStreak)
	}
	if got.LastQuizDate != "2026-03-12" {
		t.Errorf("last quiz date = %q, want 2026-03-12", got.LastQuizDate)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	store := newMemStore()

	for _, day := range []string{"2026-03-10", "2026-03-11"} {
		e := NewEngine(store, 1)
		e.now = atDay(t, day)
		e.Load()
		e.UpdateStreak()
	}

	e := NewEngine(store, 1)
	e.now = atDay(t, "2026-03-14")
	e.Load()
	got := e.UpdateStreak()

	if got.CurrentStreak != 1 {
		t.Errorf("gap should reset streak to 1, got %d", got.CurrentStreak)
	}
	if got.BestStreak != 2 {
		t.Errorf("best streak must survive the reset, got %d", got.BestStreak)
	}
}

func TestCheckAchievementsFirstQuiz(t *testing.T) {
	store := newMemStore()
	e := loadedEngine(t, store)

	unlocked := e.CheckAchievements(makeResults(1, "science-fundamentals", 30, 60))

	if len(unlocked) != 1 || unlocked[0].ID != "first_quiz" {
		t.Fatalf("expected only first_quiz to unlock, got %v", ids(unlocked))
	}
	if unlocked[0].UnlockedAt == nil {
		t.Error("unlocked achievement must carry an unlock time")
	}

	state := e.Achievements()
	if state.TotalUnlocked != 1 {
		t.Errorf("total unlocked = %d, want 1", state.TotalUnlocked)
	}
	if len(state.RecentlyUnlocked) != 1 {
		t.Errorf("recently unlocked = %d entries, want 1", len(state.RecentlyUnlocked))
	}

	// State must have hit the store.
	if !strings.Contains(store.data["achievements:1"], "first_quiz") {
		t.Error("unlock was not persisted")
	}
}

func TestCheckAchievementsIsMonotonic(t *testing.T) {
	e := loadedEngine(t, newMemStore())
	history := makeResults(1, "science-fundamentals", 30, 60)

	first := e.CheckAchievements(history)
	if len(first) != 1 {
		t.Fatalf("expected one unlock, got %v", ids(first))
	}
	unlockedAt := *first[0].UnlockedAt

	again := e.CheckAchievements(history)
	if len(again) != 0 {
		t.Fatalf("re-check with same history must unlock nothing, got %v", ids(again))
	}
	if got := *e.Achievements().Achievements[0].UnlockedAt; !got.Equal(unlockedAt) {
		t.Error("UnlockedAt must not change on re-check")
	}
}

func TestCheckAchievementsMultipleAtOnce(t *testing.T) {
	e := loadedEngine(t, newMemStore())

	// 10 quizzes, 5 of them perfect: first_quiz, quiz_enthusiast and
	// perfectionist should all fire in one pass, in catalog order.
	history := append(
		makeResults(5, "world-geography", 100, 100),
		makeResults(5, "science-fundamentals", 30, 60)...,
	)

	unlocked := e.CheckAchievements(history)
	want := []string{"first_quiz", "quiz_enthusiast", "perfectionist"}
	if got := ids(unlocked); !equal(got, want) {
		t.Fatalf("unlocked %v, want %v", got, want)
	}
	if e.Achievements().TotalUnlocked != 3 {
		t.Errorf("total unlocked = %d, want 3", e.Achievements().TotalUnlocked)
	}
}

func TestCategoryMasterMatchesQuizIDSubstring(t *testing.T) {
	e := loadedEngine(t, newMemStore())

	// Quiz IDs are slugs embedding the category name; 20 completions across
	// two Math quizzes count toward the same category.
	history := append(
		makeResults(12, "math-statistics-math-quiz", 40, 80),
		makeResults(8, "math-integers-math-quiz", 40, 80)...,
	)

	unlocked := e.CheckAchievements(history)
	if !contains(ids(unlocked), "math_genius") {
		t.Fatalf("expected math_genius among %v", ids(unlocked))
	}
	if contains(ids(unlocked), "science_expert") {
		t.Fatal("science_expert must not unlock from Math quizzes")
	}
}

func TestStreakAchievementUnlocks(t *testing.T) {
	store := newMemStore()
	history := makeResults(1, "world-geography", 30, 60)

	var unlockedIDs []string
	for _, day := range []string{"2026-03-10", "2026-03-11", "2026-03-12"} {
		e := NewEngine(store, 1)
		e.now = atDay(t, day)
		e.Load()
		unlockedIDs = append(unlockedIDs, ids(e.CheckAchievements(history))...)
	}

	if !contains(unlockedIDs, "streak_starter") {
		t.Fatalf("3-day streak should unlock streak_starter, got %v", unlockedIDs)
	}
	if contains(unlockedIDs, "streak_master") {
		t.Fatal("streak_master needs 7 days, not 3")
	}
}

func TestCheckAchievementsSurvivesStoreFailure(t *testing.T) {
	store := newMemStore()
	e := loadedEngine(t, store)
	store.setErr = errors.New("disk full")

	unlocked := e.CheckAchievements(makeResults(1, "world-geography", 30, 60))
	if len(unlocked) != 1 {
		t.Fatalf("store failure must not block unlocking, got %v", ids(unlocked))
	}
	if !e.Achievements().Achievements[0].IsUnlocked {
		t.Error("in-memory state must reflect the unlock despite the save failure")
	}
}

func TestAchievementProgress(t *testing.T) {
	e := loadedEngine(t, newMemStore())
	history := makeResults(5, "world-geography", 30, 60)

	enthusiast := e.Achievements().Achievements[1] // quiz_enthusiast, target 10
	p := e.AchievementProgress(enthusiast, history)
	if p.Current != 5 || p.Target != 10 || p.Percentage != 50 {
		t.Errorf("progress = %+v, want 5/10 at 50%%", p)
	}

	// Overshoot caps at 100.
	first := e.Achievements().Achievements[0] // first_quiz, target 1
	p = e.AchievementProgress(first, history)
	if p.Percentage != 100 {
		t.Errorf("overshoot percentage = %v, want 100", p.Percentage)
	}
}

func TestAchievementProgressZeroTarget(t *testing.T) {
	e := loadedEngine(t, newMemStore())

	bogus := Achievement{Definition: Definition{
		ID:        "bogus",
		Condition: Condition{Type: QuizzesCompleted, Target: 0},
	}}
	p := e.AchievementProgress(bogus, nil)
	if p.Percentage != 100 {
		t.Errorf("non-positive target should report 100%%, got %v", p.Percentage)
	}
}

func TestUnknownConditionTypeNeverUnlocks(t *testing.T) {
	stats := collectStats(makeResults(1000, "world-geography", 100, 100))
	if got := currentValue(Condition{Type: "mystery", Target: 1}, stats, 1000); got != 0 {
		t.Errorf("unknown condition type should report 0, got %d", got)
	}
}

func TestClearRecentlyUnlocked(t *testing.T) {
	store := newMemStore()
	e := loadedEngine(t, store)
	e.CheckAchievements(makeResults(1, "world-geography", 30, 60))

	e.ClearRecentlyUnlocked()

	if len(e.Achievements().RecentlyUnlocked) != 0 {
		t.Fatal("recently unlocked should be empty after clearing")
	}

	// Cleared state persists: a fresh engine sees it empty too.
	fresh := NewEngine(store, 1)
	fresh.now = atDay(t, "2026-03-10")
	fresh.Load()
	if len(fresh.Achievements().RecentlyUnlocked) != 0 {
		t.Fatal("cleared state was not persisted")
	}
	if fresh.Achievements().TotalUnlocked != 1 {
		t.Fatal("clearing must not touch unlock state")
	}
}

func TestEnginesAreScopedPerUser(t *testing.T) {
	store := newMemStore()

	e1 := loadedEngine(t, store)
	e1.CheckAchievements(makeResults(1, "world-geography", 30, 60))

	e2 := NewEngine(store, 2)
	e2.now = atDay(t, "2026-03-10")
	e2.Load()
	if e2.Achievements().TotalUnlocked != 0 {
		t.Fatal("user 2 must not see user 1's unlocks")
	}
}

// Helpers

func ids(achievements []Achievement) []string {
	out := make([]string, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, a.ID)
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
