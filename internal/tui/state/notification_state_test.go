package state

import "testing"

func TestNotificationState_AddAndRemove(t *testing.T) {
	s := NewNotificationState()
	if s.HasAny() {
		t.Fatal("new state should have no notifications")
	}

	first := s.Add(LevelInfo, "saved")
	second := s.Add(LevelError, "write failed")
	if first == second {
		t.Fatalf("ids should be distinct, both %d", first)
	}

	latest, ok := s.Latest()
	if !ok || latest.Message != "write failed" || latest.Level != LevelError {
		t.Errorf("Latest() = %+v, %v; want the error notification", latest, ok)
	}

	s.Remove(second)
	latest, _ = s.Latest()
	if latest.ID != first {
		t.Errorf("Latest() after Remove = %d, want %d", latest.ID, first)
	}

	// Removing an expired id is a no-op
	s.Remove(second)
	if len(s.All()) != 1 {
		t.Errorf("len(All()) = %d, want 1", len(s.All()))
	}

	s.Clear()
	if _, ok := s.Latest(); ok {
		t.Error("Latest() after Clear should report no notification")
	}
}
