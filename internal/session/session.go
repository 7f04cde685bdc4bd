// Package session tracks what input the bot is waiting for from each user.
package session

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Action identifies the pending step of a multi-step dialogue.
type Action int

const (
	ActionNone Action = iota
	ActionIncomeAmount
	ActionExpenseAmount
	ActionBudgetAmount
	ActionGoalName
	ActionGoalAmount
	ActionGoalDate
	ActionGoalContribution
)

// State is the pending input for one user, plus whatever earlier steps
// already collected.
type State struct {
	Action     Action
	Category   string
	GoalID     int
	GoalName   string
	GoalTarget decimal.Decimal
	UpdatedAt  time.Time
}

// Manager holds per-user dialogue state. States expire after the configured
// inactivity timeout so an abandoned prompt does not swallow a later message.
type Manager struct {
	mu      sync.Mutex
	timeout time.Duration
	states  map[string]State
	now     func() time.Time
}

// NewManager creates a manager with the given inactivity timeout.
// A zero timeout disables expiry.
func NewManager(timeout time.Duration) *Manager {
	return &Manager{
		timeout: timeout,
		states:  make(map[string]State),
		now:     time.Now,
	}
}

// Get returns the user's pending state, dropping it first if it expired.
func (m *Manager) Get(userID string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[userID]
	if !ok {
		return State{}, false
	}
	if m.timeout > 0 && m.now().Sub(st.UpdatedAt) > m.timeout {
		delete(m.states, userID)
		return State{}, false
	}
	return st, true
}

// Set stores the user's pending state and refreshes its timestamp.
func (m *Manager) Set(userID string, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st.UpdatedAt = m.now()
	m.states[userID] = st
}

// Clear drops the user's pending state.
func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, userID)
}
