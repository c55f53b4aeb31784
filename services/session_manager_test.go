package services

import (
	"errors"
	"testing"
	"time"

	"quizdash/models"
	"quizdash/session"
)

func managerQuiz(t *testing.T) models.Quiz {
	t.Helper()

	q := models.Question{
		ID:            1,
		QuizID:        "science-fixture-quiz",
		Text:          "Pick one",
		CorrectAnswer: 0,
		TimeLimit:     30,
		Points:        10,
	}
	if err := q.SetOptions([]string{"A", "B"}); err != nil {
		t.Fatalf("SetOptions: %v", err)
	}
	return models.Quiz{
		ID:        "science-fixture-quiz",
		Title:     "Fixture Quiz",
		Category:  "Science",
		Questions: []models.Question{q},
	}
}

func newManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session.Session),
		byUser:   make(map[uint]string),
	}
}

func TestCreateAndLookup(t *testing.T) {
	m := newManager()

	s, err := m.Create(1, managerQuiz(t), 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { m.Remove(s.ID()) })

	if got, ok := m.Get(s.ID()); !ok || got != s {
		t.Fatal("Get should find the created session")
	}
	if got, ok := m.GetByUser(1); !ok || got != s {
		t.Fatal("GetByUser should find the created session")
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestCreateEnforcesOneSessionPerUser(t *testing.T) {
	m := newManager()

	first, err := m.Create(1, managerQuiz(t), 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { m.Remove(first.ID()) })

	second, err := m.Create(1, managerQuiz(t), 30)
	if !errors.Is(err, ErrActiveSession) {
		t.Fatalf("expected ErrActiveSession, got %v", err)
	}
	if second != first {
		t.Fatal("the existing session should be returned")
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}

	// Another user is unaffected.
	other, err := m.Create(2, managerQuiz(t), 30)
	if err != nil {
		t.Fatalf("Create for user 2: %v", err)
	}
	m.Remove(other.ID())
}

func TestRemoveFreesTheUserSlot(t *testing.T) {
	m := newManager()

	first, err := m.Create(1, managerQuiz(t), 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	m.Remove(first.ID())

	if _, ok := m.Get(first.ID()); ok {
		t.Fatal("removed session should be gone")
	}
	if _, ok := m.GetByUser(1); ok {
		t.Fatal("user slot should be freed")
	}

	second, err := m.Create(1, managerQuiz(t), 30)
	if err != nil {
		t.Fatalf("Create after Remove: %v", err)
	}
	m.Remove(second.ID())
}

func TestCleanupExpired(t *testing.T) {
	m := newManager()

	s, err := m.Create(1, managerQuiz(t), 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { m.Remove(s.ID()) })

	// A session touched just now is not stale.
	if removed := m.CleanupExpired(time.Minute); removed != 0 {
		t.Fatalf("removed %d fresh sessions", removed)
	}

	// With a zero idle budget everything is stale.
	if removed := m.CleanupExpired(-time.Minute); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if m.Count() != 0 {
		t.Errorf("Count = %d after cleanup, want 0", m.Count())
	}
	if _, ok := m.GetByUser(1); ok {
		t.Fatal("cleanup should free the user slot")
	}
}
