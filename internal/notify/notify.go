// Package notify manages the transient banners and the advisory loading
// overlay shown while backend requests are in flight.
//
// Success banners auto-dismiss after 3s and error banners after 5s by
// default. The loading overlay never blocks anything: every in-flight
// operation holds its own token and the overlay stays visible until all
// tokens are released.
package notify

import (
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Kind identifies the category of notification.
type Kind string

const (
	// KindInfo is a neutral message.
	KindInfo Kind = "info"
	// KindSuccess reports a completed operation.
	KindSuccess Kind = "success"
	// KindError reports a failed operation.
	KindError Kind = "error"
)

// Notification is one transient banner.
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Timestamp time.Time
	Expires   time.Time
}

// Expired reports whether the banner should be gone at now.
func (n Notification) Expired(now time.Time) bool {
	return !n.Expires.IsZero() && !now.Before(n.Expires)
}

// Config holds notification timing and delivery settings.
type Config struct {
	SuccessTimeout time.Duration
	ErrorTimeout   time.Duration
	InfoTimeout    time.Duration
	// Bell rings the terminal bell when an error banner is shown.
	Bell bool
}

// DefaultConfig returns the default notification configuration.
func DefaultConfig() Config {
	return Config{
		SuccessTimeout: 3 * time.Second,
		ErrorTimeout:   5 * time.Second,
		InfoTimeout:    3 * time.Second,
	}
}

// Token identifies one in-flight operation holding the loading overlay.
type Token uint64

type loadingEntry struct {
	token Token
	label string
}

// Manager holds live notifications and the loading overlay state.
// It is safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	config Config
	now    func() time.Time

	live []Notification

	nextToken Token
	loading   []loadingEntry
}

// NewManager creates a Manager with the given config.
func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		now:    time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// UpdateConfig replaces the notification configuration. Live banners keep
// their original expiry.
func (m *Manager) UpdateConfig(config Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Success adds a success banner.
func (m *Manager) Success(message string) Notification {
	return m.add(KindSuccess, message)
}

// Info adds an informational banner.
func (m *Manager) Info(message string) Notification {
	return m.add(KindInfo, message)
}

// Error adds an error banner with the user-facing text for err.
func (m *Manager) Error(err error, fallback string) Notification {
	return m.add(KindError, Message(err, fallback))
}

// ErrorText adds an error banner with a literal message.
func (m *Manager) ErrorText(message string) Notification {
	return m.add(KindError, message)
}

func (m *Manager) add(kind Kind, message string) Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: now,
	}
	if timeout := m.timeoutFor(kind); timeout > 0 {
		n.Expires = now.Add(timeout)
	}
	m.live = append(m.live, n)
	return n
}

// timeoutFor must be called with the lock held.
func (m *Manager) timeoutFor(kind Kind) time.Duration {
	switch kind {
	case KindSuccess:
		return m.config.SuccessTimeout
	case KindError:
		return m.config.ErrorTimeout
	default:
		return m.config.InfoTimeout
	}
}

// Dismiss removes a notification by id. Unknown ids are ignored.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.live[:0]
	for _, n := range m.live {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	m.live = kept
}

// Expire drops every notification whose timeout has passed and returns
// how many were removed.
func (m *Manager) Expire() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	kept := m.live[:0]
	for _, n := range m.live {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(m.live) - len(kept)
	m.live = kept
	return removed
}

// Current returns the newest live notification.
func (m *Manager) Current() (Notification, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.live) == 0 {
		return Notification{}, false
	}
	return m.live[len(m.live)-1], true
}

// Live returns all live notifications, oldest first.
func (m *Manager) Live() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Notification, len(m.live))
	copy(out, m.live)
	return out
}

// ClearAll removes every notification. The loading overlay is untouched.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live = nil
}

// BeginLoading shows the overlay for one operation and returns its token.
func (m *Manager) BeginLoading(label string) Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextToken++
	m.loading = append(m.loading, loadingEntry{token: m.nextToken, label: label})
	return m.nextToken
}

// EndLoading releases a token. Releasing the same token twice is a no-op.
func (m *Manager) EndLoading(token Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.loading {
		if e.token == token {
			m.loading = append(m.loading[:i], m.loading[i+1:]...)
			return
		}
	}
}

// Loading returns the label of the most recently started operation still
// in flight and the number of operations in flight.
func (m *Manager) Loading() (string, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.loading) == 0 {
		return "", 0
	}
	return m.loading[len(m.loading)-1].label, len(m.loading)
}

// -----------------------------------------------------------------------------
// Bubble Tea integration
// -----------------------------------------------------------------------------

// ExpiredMsg is delivered when a notification's timeout elapses.
type ExpiredMsg struct {
	ID string
}

// ExpireCmd schedules an ExpiredMsg for n. Notifications without an expiry
// get no command.
func ExpireCmd(n Notification) tea.Cmd {
	if n.Expires.IsZero() {
		return nil
	}
	wait := n.Expires.Sub(n.Timestamp)
	id := n.ID
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

// BellCmd rings the terminal bell for error banners when enabled.
func BellCmd(config Config, n Notification) tea.Cmd {
	if !config.Bell || n.Kind != KindError {
		return nil
	}
	return func() tea.Msg {
		// Works even when Bubbletea is in alt-screen mode
		_, _ = os.Stdout.Write([]byte{'\a'})
		return nil
	}
}
