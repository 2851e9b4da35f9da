package assess

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateInforming State = "informing"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateExpired   State = "expired"
)

// Session is the in-flight assessment state. It doubles as the snapshot
// payload: the JSON encoding of a Session is what SnapshotStore persists.
type Session struct {
	ID            string   `json:"id"`
	AssessmentID  string   `json:"assessment_id"`
	LearnerID     string   `json:"learner_id"`
	State         State    `json:"state"`
	QuestionIndex int      `json:"question_index"`
	Score         int      `json:"score"`
	Answers       []Answer `json:"answers"`
	StartUnix     int64    `json:"start_unix"`
	Finalized     bool     `json:"finalized"`
	Result        *Result  `json:"result,omitempty"`
}

func (s *Session) terminal() bool { return s.State == StateCompleted || s.State == StateExpired }

// answered reports whether the question at the current index has an entry
// in the answer log.
func (s *Session) answered() bool { return len(s.Answers) > s.QuestionIndex }

type EventKind int

const (
	EventStart EventKind = iota
	EventAnswer
	EventAdvance
	EventTick
)

// Event is one input to the transition function: a user action or a clock
// tick.
type Event struct {
	Kind     EventKind
	OptionID string
	Now      time.Time
}

// Effect is a side effect the caller must execute after a transition.
type Effect int

const (
	EffectPersist Effect = iota
	EffectInstallGuard
	EffectRemoveGuard
	EffectStartClock
	EffectStopClock
	EffectFinalize
)

// Step is the transition function (state, event) -> (state', effects). It
// mutates sess and returns the side effects to run, in order. It touches
// nothing outside the session, so it can be exercised without a store,
// guard, or clock.
func Step(sess *Session, def Definition, ev Event) ([]Effect, error) {
	switch ev.Kind {
	case EventStart:
		if sess.State == StateActive {
			return nil, ErrAlreadyStarted
		}
		if sess.State != StateInforming {
			return nil, ErrNotActive
		}
		sess.State = StateActive
		sess.StartUnix = ev.Now.Unix()
		sess.QuestionIndex = 0
		sess.Score = 0
		sess.Answers = nil
		fx := []Effect{EffectPersist, EffectInstallGuard}
		if def.TimeLimitSec > 0 {
			fx = append(fx, EffectStartClock)
		}
		return fx, nil

	case EventAnswer:
		if sess.State != StateActive {
			return nil, ErrNotActive
		}
		if sess.answered() {
			// first answer is final; repeat submissions are ignored
			return nil, nil
		}
		q := def.Questions[sess.QuestionIndex]
		correct := ev.OptionID != "" && ev.OptionID == q.CorrectOptionID()
		sess.Answers = append(sess.Answers, Answer{
			QuestionIndex: sess.QuestionIndex,
			QuestionID:    q.ID,
			OptionID:      ev.OptionID,
			Correct:       correct,
		})
		if correct {
			sess.Score++
		}
		return []Effect{EffectPersist}, nil

	case EventAdvance:
		if sess.State != StateActive {
			return nil, ErrNotActive
		}
		if !sess.answered() {
			return nil, ErrUnanswered
		}
		sess.QuestionIndex++
		if sess.QuestionIndex >= len(def.Questions) {
			sess.State = StateCompleted
			// the terminal snapshot is written before finalize so a failed
			// submit leaves a retryable record of the finished session
			return []Effect{EffectPersist, EffectStopClock, EffectRemoveGuard, EffectFinalize}, nil
		}
		return []Effect{EffectPersist}, nil

	case EventTick:
		if sess.State != StateActive {
			return nil, nil
		}
		if def.TimeLimitSec > 0 && RemainingSeconds(sess.StartUnix, def.TimeLimitSec, ev.Now) == 0 {
			sess.State = StateExpired
			return []Effect{EffectPersist, EffectStopClock, EffectRemoveGuard, EffectFinalize}, nil
		}
		return nil, nil
	}
	return nil, nil
}

// View is the externally visible session state.
type View struct {
	ID             string  `json:"id"`
	AssessmentID   string  `json:"assessment_id"`
	State          State   `json:"state"`
	QuestionIndex  int     `json:"question_index"`
	TotalQuestions int     `json:"total_questions"`
	Answered       int     `json:"answered"`
	RemainingSec   int     `json:"remaining_seconds"`
	Result         *Result `json:"result,omitempty"`
}

// EventSink receives transition audit events. Failures inside a sink must
// never affect the session.
type EventSink interface {
	Record(ctx context.Context, typ, key string, data any)
}

// Manager owns the single session slot and executes the effects Step
// produces: snapshot writes, guard install/remove, clock lifecycle, and
// the finalize pipeline. Constructing a second session while one is in
// flight fails with ErrSessionActive.
type Manager struct {
	provider  Provider
	ledger    *Ledger
	snapshots SnapshotStore
	guard     NavigationGuard
	events    EventSink

	mu    sync.Mutex
	clock *Countdown
	now   func() time.Time
	sess  *Session
	def   *Definition
}

func NewManager(p Provider, snaps SnapshotStore, guard NavigationGuard) *Manager {
	return &Manager{
		provider:  p,
		ledger:    NewLedger(p),
		snapshots: snaps,
		guard:     guard,
		clock:     &Countdown{},
		now:       time.Now,
	}
}

// SetNow overrides the clock source, for tests.
func (m *Manager) SetNow(fn func() time.Time) { m.now = fn }

// SetEvents attaches an audit sink.
func (m *Manager) SetEvents(s EventSink) { m.events = s }

// Create runs the pre-flight checks (definition present and non-empty,
// attempts remaining, no concurrent session) and parks a new session in
// Informing. No snapshot is written until Start, so a refused create
// leaves no partial state behind.
func (m *Manager) Create(ctx context.Context, learnerID, assessmentID string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess != nil && !m.sess.Finalized {
		return View{}, ErrSessionActive
	}
	// a snapshot left by a previous process also occupies the slot
	if snap, err := m.snapshots.Load(); err != nil {
		return View{}, err
	} else if snap != nil {
		return View{}, ErrSessionActive
	}
	def, err := m.provider.Definition(ctx, assessmentID)
	if err != nil {
		return View{}, err
	}
	if len(def.Questions) == 0 {
		return View{}, ErrNoQuestions
	}
	count, err := m.ledger.Count(ctx, learnerID, assessmentID)
	if err != nil {
		return View{}, err
	}
	if err := AssertCanStart(def.MaxAttempts, count); err != nil {
		return View{}, err
	}
	m.def = &def
	m.sess = &Session{
		ID:           uuid.NewString(),
		AssessmentID: assessmentID,
		LearnerID:    learnerID,
		State:        StateInforming,
	}
	return m.viewLocked(), nil
}

// Start moves Informing -> Active: records the start instant, persists the
// first snapshot, installs the guard, and starts the countdown for timed
// assessments.
func (m *Manager) Start(ctx context.Context) (View, error) {
	return m.apply(ctx, Event{Kind: EventStart, Now: m.now()}, "SessionStarted")
}

// Answer records the option chosen for the current question. The first
// answer is final; repeats are ignored.
func (m *Manager) Answer(ctx context.Context, optionID string) (View, error) {
	return m.apply(ctx, Event{Kind: EventAnswer, OptionID: optionID, Now: m.now()}, "AnswerRecorded")
}

// Advance moves to the next question, or into Completed past the last one.
func (m *Manager) Advance(ctx context.Context) (View, error) {
	return m.apply(ctx, Event{Kind: EventAdvance, Now: m.now()}, "SessionAdvanced")
}

func (m *Manager) apply(ctx context.Context, ev Event, typ string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return View{}, ErrNoSession
	}
	fx, err := Step(m.sess, *m.def, ev)
	if err != nil {
		return m.viewLocked(), err
	}
	if err := m.runEffects(ctx, fx); err != nil {
		return m.viewLocked(), err
	}
	m.record(ctx, typ)
	return m.viewLocked(), nil
}

// OnTick is driven at 1 Hz by the countdown while a timed session is
// Active. A tick that finds no time left forces the Expired transition.
func (m *Manager) OnTick(ctx context.Context, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return
	}
	fx, _ := Step(m.sess, *m.def, Event{Kind: EventTick, Now: now})
	if len(fx) == 0 {
		return
	}
	if err := m.runEffects(ctx, fx); err != nil {
		// snapshot stays put; the next resume retries finalize
		log.Printf("assess: expiry finalize: %v", err)
	}
}

// State returns the current session view, rehydrating from the snapshot
// store when no live session exists. A resumed session already past its
// deadline finalizes as Expired immediately, without waiting for a tick.
func (m *Manager) State(ctx context.Context) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentOrResumeLocked(ctx)
}

// Resume explicitly rehydrates from the snapshot store.
func (m *Manager) Resume(ctx context.Context) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentOrResumeLocked(ctx)
}

func (m *Manager) currentOrResumeLocked(ctx context.Context) (View, error) {
	if m.sess == nil {
		return m.resumeLocked(ctx)
	}
	// a terminal session whose finalize never acknowledged retries here
	if m.sess.terminal() && !m.sess.Finalized {
		if err := m.finalizeLocked(ctx); err != nil {
			return m.viewLocked(), err
		}
	}
	return m.viewLocked(), nil
}

func (m *Manager) resumeLocked(ctx context.Context) (View, error) {
	snap, err := m.snapshots.Load()
	if err != nil {
		return View{}, err
	}
	if snap == nil {
		return View{}, ErrNoSession
	}
	def, err := m.provider.Definition(ctx, snap.AssessmentID)
	if err != nil {
		return View{}, netErr("load definition", err)
	}
	m.sess, m.def = snap, &def

	if snap.State == StateActive {
		fx, _ := Step(snap, def, Event{Kind: EventTick, Now: m.now()})
		if len(fx) > 0 {
			// already past the deadline
			if err := m.runEffects(ctx, fx); err != nil {
				return m.viewLocked(), err
			}
			m.record(ctx, "SessionExpired")
			return m.viewLocked(), nil
		}
		// still running: the guard and clock come back with the session
		m.guard.Install(snap.ID)
		if def.TimeLimitSec > 0 {
			m.startClock()
		}
		return m.viewLocked(), nil
	}

	// terminal snapshot means a finalize that never acknowledged: retry
	if err := m.finalizeLocked(ctx); err != nil {
		return m.viewLocked(), err
	}
	return m.viewLocked(), nil
}

func (m *Manager) runEffects(ctx context.Context, fx []Effect) error {
	for _, f := range fx {
		switch f {
		case EffectPersist:
			if err := m.snapshots.Save(m.sess); err != nil {
				return err
			}
		case EffectInstallGuard:
			m.guard.Install(m.sess.ID)
		case EffectRemoveGuard:
			m.guard.Remove(m.sess.ID)
		case EffectStartClock:
			m.startClock()
		case EffectStopClock:
			m.clock.Stop()
		case EffectFinalize:
			if err := m.finalizeLocked(ctx); err != nil {
				return err
			}
			if m.sess.State == StateExpired {
				m.record(ctx, "SessionExpired")
			} else {
				m.record(ctx, "SessionCompleted")
			}
		}
	}
	return nil
}

func (m *Manager) startClock() {
	m.clock.Start(time.Second, func(now time.Time) {
		m.OnTick(context.Background(), now)
	})
}

// finalizeLocked scores the session, writes exactly one attempt record,
// and clears the snapshot. Idempotent: once Finalized is set the call is a
// no-op. On a failed submit the snapshot is left intact so resume retries;
// the upsert keyed on the session ID keeps the retry from duplicating.
func (m *Manager) finalizeLocked(ctx context.Context) error {
	sess, def := m.sess, m.def
	if sess.Finalized {
		return nil
	}
	expired := sess.State == StateExpired
	now := m.now()
	used := int(now.Unix() - sess.StartUnix)
	if def.TimeLimitSec > 0 && used > def.TimeLimitSec {
		used = def.TimeLimitSec
	}
	if used < 0 {
		used = 0
	}
	res := Evaluate(sess.Answers, len(def.Questions), def.EffectivePassThreshold())
	rec := AttemptRecord{
		ID:           sess.ID,
		AssessmentID: sess.AssessmentID,
		LearnerID:    sess.LearnerID,
		Percentage:   res.Percentage,
		TimeUsedSec:  used,
		Answers:      sess.Answers,
		Passed:       res.Passed,
		Expired:      expired,
		CreatedAt:    now.Unix(),
	}
	if err := m.provider.SubmitAttempt(ctx, rec); err != nil {
		return netErr("submit attempt", err)
	}
	sess.Finalized = true
	sess.Result = &res
	if err := m.snapshots.Clear(); err != nil {
		// the record is safe; a stale snapshot resubmits harmlessly
		log.Printf("assess: snapshot clear: %v", err)
	}
	return nil
}

func (m *Manager) record(ctx context.Context, typ string) {
	if m.events == nil || m.sess == nil {
		return
	}
	m.events.Record(ctx, typ, m.sess.ID, m.viewLocked())
}

func (m *Manager) viewLocked() View {
	sess, def := m.sess, m.def
	v := View{
		ID:             sess.ID,
		AssessmentID:   sess.AssessmentID,
		State:          sess.State,
		QuestionIndex:  sess.QuestionIndex,
		TotalQuestions: len(def.Questions),
		Answered:       len(sess.Answers),
		Result:         sess.Result,
	}
	if sess.State == StateActive {
		v.RemainingSec = RemainingSeconds(sess.StartUnix, def.TimeLimitSec, m.now())
	}
	return v
}
