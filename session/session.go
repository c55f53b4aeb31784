// session/session.go - Single-player quiz session state machine
package session

import (
	"math"
	"strconv"
	"sync"
	"time"

	"quizdash/models"

	"github.com/google/uuid"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StatePaused     State = "paused"
	StateCompleted  State = "completed"
)

const (
	basePoints   = 10
	streakBonus  = 5
	streakWindow = 3 // bonus kicks in after this many consecutive correct answers
)

// Snapshot is a read-only copy of session state for clients (REST reads and
// websocket pushes).
type Snapshot struct {
	SessionID      string              `json:"session_id"`
	QuizID         string              `json:"quiz_id"`
	State          State               `json:"state"`
	QuestionIndex  int                 `json:"question_index"`
	TotalQuestions int                 `json:"total_questions"`
	TimeRemaining  int                 `json:"time_remaining"`
	Score          int                 `json:"score"`
	Streak         int                 `json:"streak"`
	AnswerRevealed bool                `json:"answer_revealed"`
	SelectedAnswer *int                `json:"selected_answer,omitempty"`
	Answers        []models.UserAnswer `json:"answers"`
}

// Session drives one quiz attempt: question sequencing, per-question
// countdown, answer capture and scoring, pause/resume, and completion into an
// immutable QuizResult. Invalid transitions are silent no-ops. The countdown
// is an owned, cancellable 1-second tick: stopped on pause, reveal, advance,
// completion, and Close.
type Session struct {
	mu sync.Mutex

	id        string
	userID    uint
	quiz      models.Quiz
	questions []models.Question

	state         State
	index         int
	answers       []models.UserAnswer
	score         int
	streak        int // consecutive correct within this session
	timeLimit     int
	timeRemaining int
	revealed      bool
	selected      *int

	startedAt         time.Time
	questionStartedAt time.Time
	lastActivity      time.Time

	result   *models.QuizResult
	stopTick chan struct{}
	now      func() time.Time

	subscribers map[chan Snapshot]struct{}
}

// New creates a session in NotStarted. The quiz must carry its questions in
// play order; callers validate it has at least one.
func New(id string, userID uint, quiz models.Quiz) *Session {
	return &Session{
		id:          id,
		userID:      userID,
		quiz:        quiz,
		questions:   quiz.Questions,
		state:       StateNotStarted,
		now:         time.Now,
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

func (s *Session) ID() string   { return s.id }
func (s *Session) UserID() uint { return s.userID }

// Start transitions NotStarted -> InProgress and arms the first question's
// countdown.
func (s *Session) Start(timeLimitSeconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return
	}

	s.state = StateInProgress
	s.index = 0
	s.answers = nil
	s.score = 0
	s.streak = 0
	s.timeLimit = timeLimitSeconds
	s.timeRemaining = timeLimitSeconds
	s.revealed = false
	s.selected = nil
	s.startedAt = s.now()
	s.questionStartedAt = s.startedAt
	s.lastActivity = s.startedAt

	s.startTickerLocked()
	s.publishLocked()
}

// SelectAnswer records a choice. Only valid while awaiting an answer and not
// paused; repeated calls and out-of-range indexes are ignored.
func (s *Session) SelectAnswer(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.revealed || s.selected != nil {
		return
	}
	if index < 0 || index >= len(s.questions[s.index].Options()) {
		return
	}
	s.selected = &index
	s.lastActivity = s.now()
	s.publishLocked()
}

// SubmitAnswer scores the selected answer and reveals the result. A no-op
// unless an answer is selected and the question is still open.
func (s *Session) SubmitAnswer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.revealed || s.selected == nil {
		return
	}
	s.submitLocked(s.selected)
}

// HandleTimeUp behaves like SubmitAnswer with no selection, forcing an
// incorrect answer. Fires at most once per question and never after reveal.
func (s *Session) HandleTimeUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.revealed {
		return
	}
	s.submitLocked(nil)
}

func (s *Session) submitLocked(selected *int) {
	question := s.questions[s.index]
	isCorrect := selected != nil && *selected == question.CorrectAnswer
	timeSpent := int(math.Round(s.now().Sub(s.questionStartedAt).Seconds()))

	s.answers = append(s.answers, models.UserAnswer{
		QuestionID:     strconv.FormatUint(uint64(question.ID), 10),
		SelectedAnswer: selected,
		CorrectAnswer:  question.CorrectAnswer,
		IsCorrect:      isCorrect,
		TimeSpent:      timeSpent,
		Question:       question.Text,
	})

	if isCorrect {
		s.score += basePoints
		if s.streak >= streakWindow {
			s.score += streakBonus
		}
		s.streak++
	} else {
		s.streak = 0
	}

	s.selected = selected
	s.revealed = true
	s.lastActivity = s.now()
	s.stopTickerLocked()
	s.publishLocked()
}

// NextQuestion advances past a revealed answer. On the last question it
// completes the session and returns the emitted QuizResult; otherwise it
// resets per-question state, restarts the countdown, and returns nil.
func (s *Session) NextQuestion() *models.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || !s.revealed {
		return nil
	}

	if s.index == len(s.questions)-1 {
		return s.completeLocked()
	}

	s.index++
	s.selected = nil
	s.revealed = false
	s.timeRemaining = s.timeLimit
	s.questionStartedAt = s.now()
	s.lastActivity = s.questionStartedAt

	s.startTickerLocked()
	s.publishLocked()
	return nil
}

// Pause freezes the countdown. Valid only while in progress.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return
	}
	s.state = StatePaused
	s.lastActivity = s.now()
	s.stopTickerLocked()
	s.publishLocked()
}

// Resume continues from the stored time remaining rather than the original
// question start, so the already-elapsed budget survives the pause.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return
	}
	s.state = StateInProgress
	s.lastActivity = s.now()
	if !s.revealed {
		s.startTickerLocked()
	}
	s.publishLocked()
}

func (s *Session) completeLocked() *models.QuizResult {
	s.state = StateCompleted
	s.stopTickerLocked()

	correct := 0
	totalTimeSpent := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
		totalTimeSpent += a.TimeSpent
	}
	total := len(s.questions)

	result := &models.QuizResult{
		ID:               uuid.New().String(),
		UserID:           s.userID,
		QuizID:           s.quiz.ID,
		Score:            s.score,
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
		Percentage:       int(math.Round(float64(correct) / float64(total) * 100)),
		TimeSpent:        totalTimeSpent,
		CompletedAt:      s.now(),
	}
	if err := result.SetAnswers(s.answers); err != nil {
		// answers are plain structs, marshal cannot realistically fail
		result.AnswersJSON = "[]"
	}

	s.result = result
	s.publishLocked()
	return result
}

// Result returns the emitted QuizResult once completed, nil before.
func (s *Session) Result() *models.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Snapshot returns a copy of the current state for clients.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	answers := make([]models.UserAnswer, len(s.answers))
	copy(answers, s.answers)

	return Snapshot{
		SessionID:      s.id,
		QuizID:         s.quiz.ID,
		State:          s.state,
		QuestionIndex:  s.index,
		TotalQuestions: len(s.questions),
		TimeRemaining:  s.timeRemaining,
		Score:          s.score,
		Streak:         s.streak,
		AnswerRevealed: s.revealed,
		SelectedAnswer: s.selected,
		Answers:        answers,
	}
}

// CurrentQuestion returns the question at the current index. The second
// return is false once the session has completed.
func (s *Session) CurrentQuestion() (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted || s.index >= len(s.questions) {
		return models.Question{}, false
	}
	return s.questions[s.index], true
}

// LastActivity reports the time of the most recent state change, for stale
// session cleanup.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastActivity.IsZero() {
		return s.now()
	}
	return s.lastActivity
}

// Close tears the session down: the countdown is cancelled and all
// subscriber channels are closed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan Snapshot]struct{})
}

// Subscribe returns a channel receiving a snapshot on every state change.
// Slow consumers miss intermediate snapshots rather than blocking the
// session.
func (s *Session) Subscribe() chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 16)
	s.subscribers[ch] = struct{}{}
	return ch
}

func (s *Session) Unsubscribe(ch chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) publishLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// tick runs once per second while a question is open. It is inert when the
// session is paused, revealed, or completed, so a late tick can never fire
// into a stale state.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.revealed {
		return
	}

	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.submitLocked(nil)
		return
	}
	s.publishLocked()
}

func (s *Session) startTickerLocked() {
	s.stopTickerLocked()

	stop := make(chan struct{})
	s.stopTick = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

func (s *Session) stopTickerLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}
