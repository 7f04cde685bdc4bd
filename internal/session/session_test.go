package session

import (
	"testing"
	"time"
)

func TestSetGetClear(t *testing.T) {
	m := NewManager(5 * time.Minute)

	if _, ok := m.Get("u1"); ok {
		t.Error("expected no state for new user")
	}

	m.Set("u1", State{Action: ActionIncomeAmount, Category: "Salary"})
	st, ok := m.Get("u1")
	if !ok {
		t.Fatal("expected state after Set")
	}
	if st.Action != ActionIncomeAmount || st.Category != "Salary" {
		t.Errorf("state = %+v", st)
	}

	m.Clear("u1")
	if _, ok := m.Get("u1"); ok {
		t.Error("expected no state after Clear")
	}
}

func TestStatesAreperUser(t *testing.T) {
	m := NewManager(5 * time.Minute)

	m.Set("u1", State{Action: ActionBudgetAmount, Category: "Food"})
	m.Set("u2", State{Action: ActionGoalName})

	st1, _ := m.Get("u1")
	st2, _ := m.Get("u2")
	if st1.Action != ActionBudgetAmount || st2.Action != ActionGoalName {
		t.Errorf("states mixed up: u1=%+v u2=%+v", st1, st2)
	}
}

func TestExpiry(t *testing.T) {
	m := NewManager(5 * time.Minute)
	current := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	m.Set("u1", State{Action: ActionExpenseAmount, Category: "Food"})

	current = current.Add(4 * time.Minute)
	if _, ok := m.Get("u1"); !ok {
		t.Error("state should survive within the timeout")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := m.Get("u1"); ok {
		t.Error("state should expire after the timeout")
	}
	// Expired state is gone for good.
	if _, ok := m.Get("u1"); ok {
		t.Error("expired state should have been dropped")
	}
}

func TestSetRefreshesExpiry(t *testing.T) {
	m := NewManager(5 * time.Minute)
	current := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	m.Set("u1", State{Action: ActionGoalName})
	current = current.Add(4 * time.Minute)
	st, _ := m.Get("u1")
	st.GoalName = "Car"
	st.Action = ActionGoalAmount
	m.Set("u1", st)

	current = current.Add(4 * time.Minute)
	if _, ok := m.Get("u1"); !ok {
		t.Error("Set should refresh the expiry clock")
	}
}

func TestZeroTimeoutNeverExpires(t *testing.T) {
	m := NewManager(0)
	current := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	m.Set("u1", State{Action: ActionGoalDate})
	current = current.Add(24 * time.Hour)
	if _, ok := m.Get("u1"); !ok {
		t.Error("zero timeout should disable expiry")
	}
}
