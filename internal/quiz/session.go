package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"edu_quiz_backend/internal/model"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateEmpty      State = "empty"
	StateAbandoned  State = "abandoned"
)

// Terminal reports whether no further transition can leave the state.
// Failed is not terminal: load or submit may be retried.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateEmpty || s == StateAbandoned
}

// ContentReader is the read side of the content tree.
type ContentReader interface {
	GetSection(ctx context.Context, courseID, sectionID string) (*model.Section, error)
	GetLessons(ctx context.Context, courseID, sectionID string) ([]model.Lesson, error)
}

// AttemptStore persists finished attempts and quiz completion facts.
type AttemptStore interface {
	WriteAttempt(ctx context.Context, studentID, courseID, sectionID string, record model.AttemptRecord) (string, error)
	UpdateSectionProgress(ctx context.Context, studentID, courseID, sectionID string, completion model.QuizCompletion) error
}

// Event is delivered to the session hook after every state change.
type Event struct {
	StudentID string
	CourseID  string
	SectionID string
	From      State
	To        State
	TimedOut  bool
	AttemptID string
	Result    *model.AttemptResult
	Err       error
}

type Option func(*Session)

// WithTickInterval sets the wall-clock length of one countdown second.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithDefaults sets the budget and threshold used when a section has none.
func WithDefaults(durationMinutes, passingScore int) Option {
	return func(s *Session) {
		if durationMinutes > 0 {
			s.defaultDuration = durationMinutes
		}
		if passingScore > 0 {
			s.defaultPassing = passingScore
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithHook(hook func(Event)) Option {
	return func(s *Session) { s.hook = hook }
}

// WithPersistTimeout bounds the attempt write triggered by a timeout.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// Session runs one quiz attempt for one student and section. All methods are
// safe for concurrent use; the countdown and callers serialize on mu.
type Session struct {
	studentID string
	courseID  string
	sectionID string
	reader    ContentReader
	store     AttemptStore

	tickInterval    time.Duration
	defaultDuration int
	defaultPassing  int
	persistTimeout  time.Duration
	now             func() time.Time
	hook            func(Event)

	mu         sync.Mutex
	state      State
	failedFrom State
	loading    bool
	lastErr    error

	section      *model.Section
	questions    []model.Question
	positions    map[string]int
	answers      map[string]string
	live         map[string]bool
	current      int
	budget       int
	remaining    int
	passingScore int
	startedAt    time.Time
	timer        *countdown
	timedOut     bool

	pending   *model.AttemptRecord
	attemptID string
	result    *model.AttemptResult

	done     chan struct{}
	doneOnce sync.Once
}

func NewSession(studentID, courseID, sectionID string, reader ContentReader, store AttemptStore, opts ...Option) *Session {
	s := &Session{
		studentID:       studentID,
		courseID:        courseID,
		sectionID:       sectionID,
		reader:          reader,
		store:           store,
		tickInterval:    time.Second,
		defaultDuration: model.DefaultDurationMinutes,
		defaultPassing:  model.DefaultPassingScore,
		persistTimeout:  30 * time.Second,
		now:             time.Now,
		state:           StateLoading,
		answers:         make(map[string]string),
		live:            make(map[string]bool),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) StudentID() string { return s.studentID }
func (s *Session) CourseID() string  { return s.courseID }
func (s *Session) SectionID() string { return s.sectionID }

// Done is closed once the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load fetches the section and its questions. A load failure leaves the
// session in StateFailed, from which Load may be called again.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	retry := s.state == StateFailed && s.failedFrom == StateLoading
	if (s.state != StateLoading && !retry) || s.loading {
		err := &TransitionError{Op: "load", State: s.state}
		s.mu.Unlock()
		return err
	}
	s.loading = true
	from := s.state
	if retry {
		s.state = StateLoading
		s.lastErr = nil
	}
	s.mu.Unlock()
	if retry {
		s.emit(Event{From: from, To: StateLoading})
	}

	section, lessons, err := s.fetch(ctx)

	s.mu.Lock()
	s.loading = false
	if s.state != StateLoading {
		// abandoned while fetching
		st := s.state
		s.mu.Unlock()
		return &TransitionError{Op: "load", State: st}
	}

	if err != nil {
		s.state = StateFailed
		s.failedFrom = StateLoading
		s.lastErr = err
		s.mu.Unlock()
		s.emit(Event{From: StateLoading, To: StateFailed, Err: err})
		return err
	}

	questions := BuildQuestions(lessons)
	s.section = section
	if len(questions) == 0 {
		s.state = StateEmpty
		s.mu.Unlock()
		s.emit(Event{From: StateLoading, To: StateEmpty, Err: ErrNoContent})
		s.finish()
		return nil
	}

	s.questions = questions
	s.positions = make(map[string]int, len(questions))
	for i, q := range questions {
		s.positions[q.ID] = i
	}

	duration := section.DurationMinutes
	if duration <= 0 {
		duration = s.defaultDuration
	}
	s.budget = duration * 60
	s.remaining = s.budget

	s.passingScore = section.PassingScore
	if s.passingScore <= 0 {
		s.passingScore = s.defaultPassing
	}

	s.state = StateReady
	s.mu.Unlock()
	s.emit(Event{From: StateLoading, To: StateReady})
	return nil
}

func (s *Session) fetch(ctx context.Context) (*model.Section, []model.Lesson, error) {
	section, err := s.reader.GetSection(ctx, s.courseID, s.sectionID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: section %s: %v", ErrLoadFailure, s.sectionID, err)
	}
	if section == nil {
		return nil, nil, fmt.Errorf("%w: section %s not found", ErrLoadFailure, s.sectionID)
	}
	lessons, err := s.reader.GetLessons(ctx, s.courseID, s.sectionID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: lessons of section %s: %v", ErrLoadFailure, s.sectionID, err)
	}
	return section, lessons, nil
}

// Start begins the countdown at the first question.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.state != StateReady {
		err := &TransitionError{Op: "start", State: s.state}
		s.mu.Unlock()
		return err
	}
	s.state = StateInProgress
	s.current = 0
	s.remaining = s.budget
	s.startedAt = s.now()
	s.timer = startCountdown(s.tickInterval, s.tick)
	s.mu.Unlock()

	s.emit(Event{From: StateReady, To: StateInProgress})
	return nil
}

// tick runs on the countdown goroutine. It returns false once the countdown
// should stop.
func (s *Session) tick() bool {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		s.mu.Unlock()
		return true
	}

	s.timedOut = true
	s.beginSubmitLocked()
	s.mu.Unlock()
	s.emit(Event{From: StateInProgress, To: StateSubmitting, TimedOut: true})

	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	_, _ = s.persist(ctx)
	return false
}

// SelectAnswer records or replaces the choice for a question and returns the
// live correctness. The value is advisory; Submit rescores every answer.
func (s *Session) SelectAnswer(questionID string, optionIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return false, &TransitionError{Op: "answer", State: s.state}
	}
	pos, ok := s.positions[questionID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	label, ok := model.LabelForIndex(optionIndex)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}

	correct := label == s.questions[pos].CorrectLabel
	s.answers[questionID] = label
	s.live[questionID] = correct
	return correct, nil
}

func (s *Session) Next() (int, error) { return s.move("next", func(i int) int { return i + 1 }) }
func (s *Session) Prev() (int, error) { return s.move("prev", func(i int) int { return i - 1 }) }

// Goto jumps to index, clamped to the question range.
func (s *Session) Goto(index int) (int, error) {
	return s.move("goto", func(int) int { return index })
}

func (s *Session) move(op string, step func(int) int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return s.current, &TransitionError{Op: op, State: s.state}
	}
	next := step(s.current)
	if next < 0 {
		next = 0
	}
	if last := len(s.questions) - 1; next > last {
		next = last
	}
	s.current = next
	return s.current, nil
}

// Submit scores and persists the attempt. It is accepted while in progress,
// however many questions are answered, and again after a persistence failure.
// Timeout and manual submission race on the same state check; the loser gets
// an ErrInvalidTransition.
func (s *Session) Submit(ctx context.Context) (*model.AttemptResult, error) {
	s.mu.Lock()
	from := s.state
	switch {
	case s.state == StateInProgress:
		s.beginSubmitLocked()
	case s.state == StateFailed && s.failedFrom == StateSubmitting:
		s.state = StateSubmitting
		s.lastErr = nil
	default:
		err := &TransitionError{Op: "submit", State: s.state}
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	s.emit(Event{From: from, To: StateSubmitting})

	return s.persist(ctx)
}

// beginSubmitLocked freezes the answers into a pending record.
func (s *Session) beginSubmitLocked() {
	s.stopTimerLocked()
	s.state = StateSubmitting

	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	result := Score(s.questions, answers, s.passingScore)

	spent := s.budget - s.remaining
	if spent < 0 {
		spent = 0
	}
	s.pending = &model.AttemptRecord{
		Result:           result,
		SubmittedAt:      s.now(),
		TimeSpentSeconds: spent,
		TimedOut:         s.timedOut,
	}
}

// persist writes the pending record. The attempt ID is kept across retries
// so a failed progress update does not write the attempt twice.
func (s *Session) persist(ctx context.Context) (*model.AttemptResult, error) {
	s.mu.Lock()
	record := *s.pending
	attemptID := s.attemptID
	s.mu.Unlock()

	var err error
	if attemptID == "" {
		attemptID, err = s.store.WriteAttempt(ctx, s.studentID, s.courseID, s.sectionID, record)
		if err == nil {
			s.mu.Lock()
			s.attemptID = attemptID
			s.mu.Unlock()
		}
	}

	if err == nil && record.Result.Passed {
		err = s.store.UpdateSectionProgress(ctx, s.studentID, s.courseID, s.sectionID, model.QuizCompletion{
			QuizCompleted: true,
			QuizScore:     record.Result.Percentage,
			QuizPassed:    true,
			CompletedAt:   record.SubmittedAt,
		})
	}

	s.mu.Lock()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPersistFailure, err)
		s.state = StateFailed
		s.failedFrom = StateSubmitting
		s.lastErr = err
		timedOut := s.timedOut
		s.mu.Unlock()
		s.emit(Event{From: StateSubmitting, To: StateFailed, TimedOut: timedOut, AttemptID: attemptID, Err: err})
		return nil, err
	}

	result := record.Result
	s.result = &result
	s.state = StateCompleted
	timedOut := s.timedOut
	s.mu.Unlock()

	s.emit(Event{From: StateSubmitting, To: StateCompleted, TimedOut: timedOut, AttemptID: attemptID, Result: &result})
	s.finish()
	return &result, nil
}

// Abandon discards the session without writing anything. It is rejected
// while a submission is in flight.
func (s *Session) Abandon() error {
	s.mu.Lock()
	if s.state.Terminal() || s.state == StateSubmitting {
		err := &TransitionError{Op: "abandon", State: s.state}
		s.mu.Unlock()
		return err
	}
	from := s.state
	s.stopTimerLocked()
	s.state = StateAbandoned
	s.mu.Unlock()

	s.emit(Event{From: from, To: StateAbandoned})
	s.finish()
	return nil
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *Session) emit(ev Event) {
	if s.hook == nil {
		return
	}
	ev.StudentID = s.studentID
	ev.CourseID = s.courseID
	ev.SectionID = s.sectionID
	s.hook(ev)
}

// QuestionView is a question as shown to the student, without its answer.
type QuestionView struct {
	model.Question
	SelectedLabel *string `json:"selectedLabel"`
	LiveCorrect   *bool   `json:"liveCorrect,omitempty"`
}

// Snapshot is a consistent read-only copy of the session.
type Snapshot struct {
	State            State                `json:"state"`
	StudentID        string               `json:"studentId"`
	CourseID         string               `json:"courseId"`
	SectionID        string               `json:"sectionId"`
	SectionTitle     string               `json:"sectionTitle"`
	Questions        []QuestionView       `json:"questions"`
	CurrentIndex     int                  `json:"currentIndex"`
	DurationSeconds  int                  `json:"durationSeconds"`
	RemainingSeconds int                  `json:"remainingSeconds"`
	AnsweredCount    int                  `json:"answeredCount"`
	UnansweredCount  int                  `json:"unansweredCount"`
	PassingScore     int                  `json:"passingScore"`
	TimedOut         bool                 `json:"timedOut"`
	AttemptID        string               `json:"attemptId,omitempty"`
	Result           *model.AttemptResult `json:"result,omitempty"`
	Error            string               `json:"error,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:            s.state,
		StudentID:        s.studentID,
		CourseID:         s.courseID,
		SectionID:        s.sectionID,
		CurrentIndex:     s.current,
		DurationSeconds:  s.budget,
		RemainingSeconds: s.remaining,
		PassingScore:     s.passingScore,
		TimedOut:         s.timedOut,
		AttemptID:        s.attemptID,
		Questions:        make([]QuestionView, 0, len(s.questions)),
	}
	if s.section != nil {
		snap.SectionTitle = s.section.Title
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}

	for _, q := range s.questions {
		view := QuestionView{Question: q}
		if label, ok := s.answers[q.ID]; ok {
			l := label
			c := s.live[q.ID]
			view.SelectedLabel = &l
			view.LiveCorrect = &c
			snap.AnsweredCount++
		}
		snap.Questions = append(snap.Questions, view)
	}
	snap.UnansweredCount = len(s.questions) - snap.AnsweredCount
	return snap
}

// Err returns the error that put the session into StateFailed, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// IsPersistFailure reports whether err came from the attempt store.
func IsPersistFailure(err error) bool {
	return errors.Is(err, ErrPersistFailure)
}
