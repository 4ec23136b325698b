package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/extraction"
	"github.com/zahroai/zahro-api/internal/store"
)

// AllowedLimitMinutes are the selectable quiz durations.
var AllowedLimitMinutes = []int{30, 60, 120, 180, 300}

// ValidTimeLimitSeconds reports whether the given duration is one of the
// allowed quiz durations.
func ValidTimeLimitSeconds(seconds int) bool {
	for _, minutes := range AllowedLimitMinutes {
		if seconds == minutes*60 {
			return true
		}
	}
	return false
}

// TickSnapshot is one frame of the countdown stream pushed to subscribers.
// Score is only meaningful once Finished is true.
type TickSnapshot struct {
	Remaining int
	Finished  bool
	Score     int
}

// SessionView is an immutable snapshot of a session handed to the API layer.
// Certificate is nil while the session is active.
type SessionView struct {
	ID           uuid.UUID
	State        domain.SessionState
	Remaining    int
	LimitSeconds int
	FileName     string
	Questions    []domain.Question
	Answers      map[int]domain.OptionKey
	Score        int
	Certificate  *domain.Certificate
}

// Finished reports whether the snapshot was taken after the session finished.
func (v *SessionView) Finished() bool {
	return v.State == domain.SessionFinished
}

// sessionEntry pairs a session with its timer and subscriber plumbing. The
// entry mutex serializes timer ticks against user actions; whichever path
// wins the Active -> Finished transition is the only one that certifies.
type sessionEntry struct {
	mu          sync.Mutex
	session     *domain.QuizSession
	certificate *domain.Certificate
	loading     bool
	removed     bool
	stopTimer   func()
	subscribers map[chan TickSnapshot]struct{}
}

// QuizService owns the session registry and the process-wide certificate
// history and used-question-text state, both loaded once at startup.
type QuizService struct {
	logger    *slog.Logger
	extractor extraction.Extractor
	store     store.Store

	// now and tickInterval are fixed in production and overridden in tests.
	now          func() time.Time
	tickInterval time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry

	// stateMu guards history and usedTexts. When both locks are needed the
	// entry mutex is taken first.
	stateMu   sync.Mutex
	history   []domain.Certificate
	usedTexts []string
}

// NewQuizService creates the service and loads the persisted history and
// used-text list. It returns an error if any required dependency is nil or
// the initial load fails.
func NewQuizService(
	ctx context.Context,
	logger *slog.Logger,
	extractor extraction.Extractor,
	st store.Store,
) (*QuizService, error) {
	if extractor == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "extractor cannot be nil",
		}
	}
	if st == nil {
		return nil, &QuizServiceError{
			Operation: "create_service",
			Message:   "store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	history, err := st.LoadHistory(ctx)
	if err != nil {
		return nil, NewQuizServiceError("create_service", "failed to load certificate history", err)
	}
	usedTexts, err := st.LoadUsedTexts(ctx)
	if err != nil {
		return nil, NewQuizServiceError("create_service", "failed to load used question texts", err)
	}

	logger = logger.With("component", "quiz_service")
	logger.InfoContext(ctx, "quiz service initialized",
		"history_size", len(history),
		"used_texts", len(usedTexts))

	return &QuizService{
		logger:       logger,
		extractor:    extractor,
		store:        st,
		now:          time.Now,
		tickInterval: time.Second,
		sessions:     make(map[uuid.UUID]*sessionEntry),
		history:      history,
		usedTexts:    usedTexts,
	}, nil
}

// Start extracts a fresh batch of questions from the document and opens a
// new active session with its countdown running. Questions whose text was
// used by any earlier session (in this run or a persisted one) are excluded.
func (s *QuizService) Start(
	ctx context.Context,
	doc domain.Document,
	limitSeconds int,
) (*SessionView, error) {
	if !ValidTimeLimitSeconds(limitSeconds) {
		return nil, ErrInvalidTimeLimit
	}

	questions, err := s.extract(ctx, doc)
	if err != nil {
		return nil, NewQuizServiceError("start_quiz", "extraction failed", err)
	}

	session, err := domain.NewSession(questions, limitSeconds, doc)
	if err != nil {
		return nil, NewQuizServiceError("start_quiz", "failed to create session", err)
	}

	entry := &sessionEntry{
		session:     session,
		subscribers: make(map[chan TickSnapshot]struct{}),
	}

	s.mu.Lock()
	s.sessions[session.ID] = entry
	s.mu.Unlock()

	entry.mu.Lock()
	s.startTimerLocked(entry)
	view := s.viewLocked(entry)
	entry.mu.Unlock()

	s.logger.InfoContext(ctx, "quiz session started",
		"session_id", session.ID,
		"question_count", len(questions),
		"limit_seconds", limitSeconds,
		"file_name", doc.FileName)

	return view, nil
}

// SelectAnswer records the answer for a question. On a finished session the
// call is silently ignored; the recorded answers are final.
func (s *QuizService) SelectAnswer(id uuid.UUID, index int, key domain.OptionKey) error {
	entry, err := s.entry(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	applied, err := entry.session.SelectAnswer(index, key)
	if err != nil {
		return NewQuizServiceError("select_answer", "invalid answer", err)
	}
	if !applied {
		s.logger.Debug("answer ignored on finished session",
			"session_id", id, "question_index", index)
	}
	return nil
}

// Finish ends the session on the user's request. The call is idempotent: a
// session already finished (by an earlier call or by the countdown reaching
// zero) returns its view unchanged. A persistence failure is surfaced while
// the certificate remains in the in-memory history.
func (s *QuizService) Finish(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.Finish() {
		entry.stopTimerLocked()
		certifyErr := s.certifyLocked(ctx, entry)
		s.broadcastLocked(entry)
		if certifyErr != nil {
			return nil, NewQuizServiceError("finish_quiz", "failed to persist result", certifyErr)
		}
	}

	return s.viewLocked(entry), nil
}

// NextBatch re-extracts questions from the session's retained document,
// excluding everything already used. On success the session content is
// replaced in place: fresh questions, cleared answers, the countdown reset
// to the original limit. An empty or failed extraction tears the session
// down and surfaces the error.
func (s *QuizService) NextBatch(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if entry.loading {
		entry.mu.Unlock()
		return nil, ErrExtractionInFlight
	}
	entry.loading = true
	doc := entry.session.Source
	limitSeconds := entry.session.LimitSeconds
	entry.mu.Unlock()

	// No locks held across the model call.
	questions, err := s.extract(ctx, doc)
	if err != nil {
		s.remove(id)
		s.logger.InfoContext(ctx, "session removed after failed next batch",
			"session_id", id, "error", err)
		return nil, NewQuizServiceError("next_batch", "extraction failed", err)
	}

	session, err := domain.NewSession(questions, limitSeconds, doc)
	if err != nil {
		s.remove(id)
		return nil, NewQuizServiceError("next_batch", "failed to create session", err)
	}
	session.ID = id

	entry.mu.Lock()
	if entry.removed {
		// Reset won the race while the extraction was in flight; the
		// session is gone and must not come back.
		entry.loading = false
		entry.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	entry.stopTimerLocked()
	entry.session = session
	entry.certificate = nil
	entry.loading = false
	s.startTimerLocked(entry)
	view := s.viewLocked(entry)
	entry.mu.Unlock()

	s.logger.InfoContext(ctx, "session replaced with next batch",
		"session_id", id, "question_count", len(questions))

	return view, nil
}

// Get returns the current snapshot of a session.
func (s *QuizService) Get(id uuid.UUID) (*SessionView, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.viewLocked(entry), nil
}

// Reset tears the session down: timer stopped, subscribers closed, registry
// entry removed. Issued certificates are unaffected.
func (s *QuizService) Reset(id uuid.UUID) error {
	if !s.remove(id) {
		return ErrSessionNotFound
	}
	s.logger.Info("quiz session reset", "session_id", id)
	return nil
}

// History returns the certificate history, newest first.
func (s *QuizService) History(_ context.Context) ([]domain.Certificate, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	history := make([]domain.Certificate, len(s.history))
	copy(history, s.history)
	return history, nil
}

// CertificateByID returns a single certificate from the history.
func (s *QuizService) CertificateByID(_ context.Context, id uuid.UUID) (domain.Certificate, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	for _, cert := range s.history {
		if cert.ID == id {
			return cert, nil
		}
	}
	return domain.Certificate{}, ErrCertificateNotFound
}

// Subscribe registers a countdown subscriber for the session. Each timer
// tick delivers a snapshot; slow subscribers lose frames rather than stall
// the timer. The returned cancel func must be called when done.
func (s *QuizService) Subscribe(id uuid.UUID) (<-chan TickSnapshot, func(), error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan TickSnapshot, 8)

	entry.mu.Lock()
	entry.subscribers[ch] = struct{}{}
	entry.mu.Unlock()

	cancel := func() {
		entry.mu.Lock()
		if _, ok := entry.subscribers[ch]; ok {
			delete(entry.subscribers, ch)
			close(ch)
		}
		entry.mu.Unlock()
	}
	return ch, cancel, nil
}

// Close stops all session timers and closes all subscriber channels. The
// store is closed by the owner of the service.
func (s *QuizService) Close() error {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*sessionEntry)
	s.mu.Unlock()

	for _, entry := range sessions {
		entry.mu.Lock()
		entry.removed = true
		entry.stopTimerLocked()
		entry.closeSubscribersLocked()
		entry.mu.Unlock()
	}
	return nil
}

// extract calls the extractor with the current cumulative exclusion list and
// turns an empty result into ErrNoNewQuestions.
func (s *QuizService) extract(ctx context.Context, doc domain.Document) ([]domain.Question, error) {
	s.stateMu.Lock()
	excluded := make([]string, len(s.usedTexts))
	copy(excluded, s.usedTexts)
	s.stateMu.Unlock()

	questions, err := s.extractor.ExtractQuestions(ctx, doc, excluded)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, extraction.ErrNoNewQuestions
	}
	return questions, nil
}

// entry looks a session up in the registry.
func (s *QuizService) entry(id uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// remove deletes the session from the registry and stops its machinery.
func (s *QuizService) remove(id uuid.UUID) bool {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return false
	}

	entry.mu.Lock()
	entry.removed = true
	entry.stopTimerLocked()
	entry.closeSubscribersLocked()
	entry.loading = false
	entry.mu.Unlock()
	return true
}

// startTimerLocked starts the 1 Hz countdown goroutine for the entry.
// A torn-down entry never gets a timer. Caller holds entry.mu.
func (s *QuizService) startTimerLocked(entry *sessionEntry) {
	if entry.removed {
		return
	}
	stop := make(chan struct{})
	var once sync.Once
	entry.stopTimer = func() {
		once.Do(func() { close(stop) })
	}
	go s.runTimer(entry, stop)
}

// runTimer drives the countdown until the session finishes or the timer is
// stopped.
func (s *QuizService) runTimer(entry *sessionEntry, stop chan struct{}) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.applyTick(entry) {
				return
			}
		}
	}
}

// applyTick applies one countdown tick and reports whether the timer should
// stop. The tick that reaches zero runs the certification path; later ticks
// never re-certify.
func (s *QuizService) applyTick(entry *sessionEntry) (done bool) {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return true
	}
	if entry.session.Tick() {
		if err := s.certifyLocked(context.Background(), entry); err != nil {
			s.logger.Error("failed to persist result after countdown expiry",
				"session_id", entry.session.ID, "error", err)
		}
	}
	s.broadcastLocked(entry)
	return entry.session.State == domain.SessionFinished
}

// certifyLocked runs the single certification path for the entry's finished
// session: issue the certificate, prepend it to the history, append the
// question texts to the used list, then persist both records. The in-memory
// state is updated before persistence so a storage failure never drops the
// certificate. Caller holds entry.mu.
func (s *QuizService) certifyLocked(ctx context.Context, entry *sessionEntry) error {
	session := entry.session
	score := session.Score()
	cert := domain.NewCertificate(session.Source.FileName, score, len(session.Questions), s.now())
	entry.certificate = &cert

	s.stateMu.Lock()
	s.history = append([]domain.Certificate{cert}, s.history...)
	s.usedTexts = append(s.usedTexts, session.QuestionTexts()...)
	history := make([]domain.Certificate, len(s.history))
	copy(history, s.history)
	usedTexts := make([]string, len(s.usedTexts))
	copy(usedTexts, s.usedTexts)
	s.stateMu.Unlock()

	s.logger.InfoContext(ctx, "certificate issued",
		"session_id", session.ID,
		"certificate_id", cert.ID,
		"score", score,
		"total", len(session.Questions),
		"grade", cert.Grade)

	if err := s.store.SaveHistory(ctx, history); err != nil {
		return err
	}
	return s.store.SaveUsedTexts(ctx, usedTexts)
}

// broadcastLocked pushes the current countdown snapshot to all subscribers.
// Caller holds entry.mu.
func (s *QuizService) broadcastLocked(entry *sessionEntry) {
	finished := entry.session.State == domain.SessionFinished
	snapshot := TickSnapshot{
		Remaining: entry.session.Remaining,
		Finished:  finished,
	}
	if finished {
		snapshot.Score = entry.session.Score()
	}

	for ch := range entry.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// viewLocked builds a defensive snapshot of the entry. Caller holds entry.mu.
func (s *QuizService) viewLocked(entry *sessionEntry) *SessionView {
	session := entry.session

	questions := make([]domain.Question, len(session.Questions))
	copy(questions, session.Questions)

	answers := make(map[int]domain.OptionKey, len(session.Answers))
	for i, key := range session.Answers {
		answers[i] = key
	}

	view := &SessionView{
		ID:           session.ID,
		State:        session.State,
		Remaining:    session.Remaining,
		LimitSeconds: session.LimitSeconds,
		FileName:     session.Source.FileName,
		Questions:    questions,
		Answers:      answers,
		Certificate:  entry.certificate,
	}
	if session.State == domain.SessionFinished {
		view.Score = session.Score()
	}
	return view
}

// stopTimerLocked stops the entry's timer if one is running. Caller holds
// entry.mu.
func (e *sessionEntry) stopTimerLocked() {
	if e.stopTimer != nil {
		e.stopTimer()
		e.stopTimer = nil
	}
}

// closeSubscribersLocked closes and drops all subscriber channels. Caller
// holds entry.mu.
func (e *sessionEntry) closeSubscribersLocked() {
	for ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = make(map[chan TickSnapshot]struct{})
}
