package assess

import (
	"sync"
	"time"
)

// Guard event kinds reported by the client while lockdown is installed.
const (
	GuardUnload      = "unload"
	GuardReloadKeys  = "reload_keys"
	GuardContextMenu = "context_menu"
)

// NavigationGuard is installed exactly while a session is Active. It is a
// soft lockdown: it raises friction against accidental exit but cannot
// prevent a determined user from leaving. Not a security boundary.
type NavigationGuard interface {
	Install(sessionID string)
	Remove(sessionID string)
}

// GuardEvent is one recorded interception.
type GuardEvent struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	At        int64  `json:"at"`
}

// SoftLockGuard tracks which session holds the lockdown and logs every
// interception the client reports, answering with the warning toast text.
type SoftLockGuard struct {
	mu        sync.Mutex
	sessionID string
	events    []GuardEvent
}

func NewSoftLockGuard() *SoftLockGuard { return &SoftLockGuard{} }

func (g *SoftLockGuard) Install(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessionID = sessionID
}

func (g *SoftLockGuard) Remove(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sessionID == sessionID {
		g.sessionID = ""
	}
}

// Installed reports whether the guard currently covers the given session.
func (g *SoftLockGuard) Installed(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID != "" && g.sessionID == sessionID
}

// Intercept records a client-reported interception and returns the warning
// to surface. ok is false when the guard is not installed for the session,
// in which case nothing is recorded.
func (g *SoftLockGuard) Intercept(sessionID, kind string) (warning string, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sessionID == "" || g.sessionID != sessionID {
		return "", false
	}
	g.events = append(g.events, GuardEvent{SessionID: sessionID, Kind: kind, At: time.Now().Unix()})
	switch kind {
	case GuardUnload:
		return "Leaving now will not pause the assessment. Your answers so far are saved.", true
	case GuardReloadKeys:
		return "Reload is disabled during the assessment.", true
	case GuardContextMenu:
		return "The context menu is disabled during the assessment.", true
	default:
		return "Navigation is restricted while the assessment is running.", true
	}
}

// Events returns a copy of the interception log.
func (g *SoftLockGuard) Events() []GuardEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GuardEvent(nil), g.events...)
}
