package session

import (
	"testing"
	"time"

	"quizdash/models"
)

const correctIndex = 1

func testQuiz(t *testing.T, questionCount int) models.Quiz {
	t.Helper()

	quiz := models.Quiz{
		ID:       "math-fixture-quiz",
		Title:    "Fixture Quiz",
		Category: "Math",
	}
	for i := 0; i < questionCount; i++ {
		q := models.Question{
			ID:            uint(i + 1),
			QuizID:        quiz.ID,
			Text:          "What is the answer?",
			CorrectAnswer: correctIndex,
			TimeLimit:     30,
			Points:        10,
		}
		if err := q.SetOptions([]string{"A", "B", "C", "D"}); err != nil {
			t.Fatalf("SetOptions: %v", err)
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

func newTestSession(t *testing.T, questionCount int) *Session {
	t.Helper()
	s := New("test-session", 1, testQuiz(t, questionCount))
	t.Cleanup(s.Close)
	return s
}

// answer plays one full question: pick, lock in, advance.
func answer(s *Session, correct bool) *models.QuizResult {
	choice := correctIndex
	if !correct {
		choice = correctIndex + 1
	}
	s.SelectAnswer(choice)
	s.SubmitAnswer()
	return s.NextQuestion()
}

func TestStartTransitions(t *testing.T) {
	s := newTestSession(t, 2)

	if s.Snapshot().State != StateNotStarted {
		t.Fatal("new session should be not_started")
	}

	s.Start(30)
	snap := s.Snapshot()
	if snap.State != StateInProgress {
		t.Fatalf("state = %s, want in_progress", snap.State)
	}
	if snap.QuestionIndex != 0 || snap.TimeRemaining != 30 || snap.Score != 0 {
		t.Errorf("unexpected initial snapshot: %+v", snap)
	}

	// Start is one-shot.
	s.SelectAnswer(correctIndex)
	s.Start(30)
	if s.Snapshot().SelectedAnswer == nil {
		t.Error("second Start must not reset the session")
	}
}

func TestStreakBonusAfterThreeCorrect(t *testing.T) {
	s := newTestSession(t, 4)
	s.Start(30)

	// The bonus applies from the fourth consecutive correct answer on:
	// 10 + 10 + 10 + (10+5) = 45.
	for i := 0; i < 4; i++ {
		answer(s, true)
	}

	if got := s.Snapshot().Score; got != 45 {
		t.Errorf("score = %d, want 45", got)
	}
}

func TestWrongAnswerBreaksStreak(t *testing.T) {
	s := newTestSession(t, 4)
	s.Start(30)

	answer(s, true)
	answer(s, true)
	answer(s, false)
	answer(s, true)

	snap := s.Snapshot()
	if snap.Score != 30 {
		t.Errorf("score = %d, want 30", snap.Score)
	}
	if snap.Streak != 1 {
		t.Errorf("streak = %d, want 1", snap.Streak)
	}
}

func TestCompletionResult(t *testing.T) {
	s := newTestSession(t, 5)
	s.Start(30)

	var result *models.QuizResult
	outcomes := []bool{true, true, false, true, false}
	for _, correct := range outcomes {
		result = answer(s, correct)
	}

	if result == nil {
		t.Fatal("answering the last question should emit a result")
	}
	if s.Snapshot().State != StateCompleted {
		t.Fatal("session should be completed")
	}

	if result.TotalQuestions != 5 || result.CorrectAnswers != 3 || result.IncorrectAnswers != 2 {
		t.Errorf("counts = %d/%d/%d, want 5/3/2",
			result.TotalQuestions, result.CorrectAnswers, result.IncorrectAnswers)
	}
	if result.Percentage != 60 {
		t.Errorf("percentage = %d, want 60", result.Percentage)
	}
	if result.Score != 30 {
		t.Errorf("score = %d, want 30", result.Score)
	}
	if result.QuizID != "math-fixture-quiz" || result.UserID != 1 {
		t.Errorf("result identity wrong: %+v", result)
	}
	if result.ID == "" {
		t.Error("result must get an ID")
	}

	answers, err := result.Answers()
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if len(answers) != 5 {
		t.Fatalf("answers = %d entries, want 5", len(answers))
	}
	if answers[2].IsCorrect || answers[2].SelectedAnswer == nil {
		t.Error("third answer should be a recorded wrong choice")
	}

	if got := s.Result(); got == nil || got.ID != result.ID {
		t.Error("Result() should return the emitted result after completion")
	}
}

func TestPercentageRounds(t *testing.T) {
	s := newTestSession(t, 3)
	s.Start(30)

	answer(s, true)
	answer(s, false)
	result := answer(s, false)

	// 1/3 rounds to 33.
	if result.Percentage != 33 {
		t.Errorf("percentage = %d, want 33", result.Percentage)
	}
}

func TestSelectGuards(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	s.SelectAnswer(-1)
	s.SelectAnswer(4)
	if s.Snapshot().SelectedAnswer != nil {
		t.Fatal("out-of-range selections must be ignored")
	}

	s.SelectAnswer(2)
	s.SelectAnswer(correctIndex)
	if got := s.Snapshot().SelectedAnswer; got == nil || *got != 2 {
		t.Fatal("the first selection must stick")
	}
}

func TestSubmitRequiresSelection(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	s.SubmitAnswer()
	if s.Snapshot().AnswerRevealed {
		t.Fatal("submit without a selection must be a no-op")
	}
}

func TestTimeoutRecordsIncorrect(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	s.HandleTimeUp()

	snap := s.Snapshot()
	if !snap.AnswerRevealed {
		t.Fatal("timeout should reveal the answer")
	}
	if len(snap.Answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(snap.Answers))
	}
	a := snap.Answers[0]
	if a.SelectedAnswer != nil || a.IsCorrect {
		t.Errorf("timeout answer should be unselected and incorrect: %+v", a)
	}
	if snap.Score != 0 || snap.Streak != 0 {
		t.Errorf("timeout must not score: %+v", snap)
	}

	// A late submit or second timeout changes nothing.
	s.SelectAnswer(correctIndex)
	s.SubmitAnswer()
	s.HandleTimeUp()
	if got := s.Snapshot(); len(got.Answers) != 1 || got.Score != 0 {
		t.Error("post-reveal submissions must be no-ops")
	}
}

func TestCountdownExpiry(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(3)

	for i := 0; i < 3; i++ {
		s.tick()
	}

	snap := s.Snapshot()
	if snap.TimeRemaining != 0 {
		t.Errorf("time remaining = %d, want 0", snap.TimeRemaining)
	}
	if !snap.AnswerRevealed {
		t.Fatal("expiry should force a timeout submission")
	}
	if len(snap.Answers) != 1 || snap.Answers[0].IsCorrect {
		t.Error("expiry should record an incorrect answer")
	}

	// Ticks after reveal are inert.
	s.tick()
	if got := s.Snapshot(); len(got.Answers) != 1 {
		t.Error("tick after reveal must not submit again")
	}
}

func TestNextRequiresReveal(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	if s.NextQuestion() != nil {
		t.Fatal("NextQuestion before reveal should return nil")
	}
	if s.Snapshot().QuestionIndex != 0 {
		t.Fatal("NextQuestion before reveal must not advance")
	}
}

func TestNextResetsQuestionState(t *testing.T) {
	s := newTestSession(t, 3)
	s.Start(30)

	s.SelectAnswer(correctIndex)
	s.SubmitAnswer()
	s.NextQuestion()

	snap := s.Snapshot()
	if snap.QuestionIndex != 1 {
		t.Fatalf("index = %d, want 1", snap.QuestionIndex)
	}
	if snap.AnswerRevealed || snap.SelectedAnswer != nil {
		t.Error("per-question state must reset on advance")
	}
	if snap.TimeRemaining != 30 {
		t.Errorf("countdown should restart at the limit, got %d", snap.TimeRemaining)
	}
	if snap.Score != 10 || snap.Streak != 1 {
		t.Errorf("score and streak must carry over: %+v", snap)
	}
}

func TestPauseResume(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	s.Pause()
	if s.Snapshot().State != StatePaused {
		t.Fatal("pause should move to paused")
	}

	// No gameplay while paused.
	s.SelectAnswer(correctIndex)
	s.SubmitAnswer()
	s.HandleTimeUp()
	if got := s.Snapshot(); got.SelectedAnswer != nil || got.AnswerRevealed {
		t.Fatal("paused sessions must ignore gameplay calls")
	}

	// Paused sessions do not count down.
	s.tick()
	if got := s.Snapshot().TimeRemaining; got != 30 {
		t.Errorf("time remaining = %d after paused tick, want 30", got)
	}

	s.Resume()
	if s.Snapshot().State != StateInProgress {
		t.Fatal("resume should return to in_progress")
	}

	// Pause only from in_progress, resume only from paused.
	s.Resume()
	if s.Snapshot().State != StateInProgress {
		t.Fatal("resume while running must be a no-op")
	}
}

func TestResultNilBeforeCompletion(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	if s.Result() != nil {
		t.Fatal("Result must be nil before completion")
	}
}

func TestCurrentQuestion(t *testing.T) {
	s := newTestSession(t, 2)
	s.Start(30)

	q, ok := s.CurrentQuestion()
	if !ok || q.ID != 1 {
		t.Fatalf("current question = %v (%v), want question 1", q.ID, ok)
	}

	answer(s, true)
	answer(s, true)

	if _, ok := s.CurrentQuestion(); ok {
		t.Fatal("completed sessions have no current question")
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	s := newTestSession(t, 2)
	ch := s.Subscribe()

	s.Start(30)

	select {
	case snap, open := <-ch:
		if !open {
			t.Fatal("channel closed unexpectedly")
		}
		if snap.State != StateInProgress {
			t.Errorf("pushed state = %s, want in_progress", snap.State)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot after Start")
	}

	s.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Fatal("unsubscribe should close the channel")
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	s := New("closing", 1, testQuiz(t, 1))
	ch := s.Subscribe()

	s.Close()

	if _, open := <-ch; open {
		t.Fatal("Close should close subscriber channels")
	}
}
