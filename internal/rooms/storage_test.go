package rooms

import (
	"testing"
	"time"
)

func TestStore_Create(t *testing.T) {
	s := NewStore()
	room := s.Create("abc", "c1", time.Minute)

	if room == nil {
		t.Fatal("Create() returned nil room")
	}
	if room.ID != "abc" {
		t.Errorf("ID = %q, want %q", room.ID, "abc")
	}
	if room.AdminID != "c1" {
		t.Errorf("AdminID = %q, want %q", room.AdminID, "c1")
	}
	if room.Phase != PhaseIdle {
		t.Errorf("Phase = %q, want %q", room.Phase, PhaseIdle)
	}
	if room.Duration != time.Minute {
		t.Errorf("Duration = %v, want %v", room.Duration, time.Minute)
	}
	if !room.Members.Contains("c1") {
		t.Error("creator should be a member")
	}
	stats, _ := room.Members.Get("c1")
	if stats.WPM != 0 || stats.Accuracy != 100 || stats.Progress != 0 {
		t.Errorf("creator stats = %+v, want zeroed", stats)
	}
}

func TestStore_Create_OverwriteClosesPrior(t *testing.T) {
	s := NewStore()
	prior := s.Create("abc", "c1", time.Minute)
	room := s.Create("abc", "c2", time.Minute)

	prior.Mu.Lock()
	closed := prior.Closed()
	prior.Mu.Unlock()
	if !closed {
		t.Error("overwritten room should be closed")
	}
	select {
	case <-prior.Stop():
	default:
		t.Error("overwritten room's stop channel should be closed")
	}

	if got := s.Get("abc"); got != room {
		t.Error("registry should hold the replacement room")
	}
	if room.AdminID != "c2" {
		t.Errorf("AdminID = %q, want %q", room.AdminID, "c2")
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := NewStore()
	if s.Get("nope") != nil {
		t.Error("Get() should return nil for a missing room")
	}
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	s.Create("abc", "c1", time.Minute)

	s.Delete("abc")

	if s.Get("abc") != nil {
		t.Error("room should be deleted")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStore_ContainsConn(t *testing.T) {
	s := NewStore()
	a := s.Create("a", "c1", time.Minute)
	s.Create("b", "c2", time.Minute)
	c := s.Create("c", "c3", time.Minute)
	c.Members.Add("c1")

	got := s.ContainsConn("c1")
	if len(got) != 2 {
		t.Fatalf("ContainsConn() returned %d rooms, want 2", len(got))
	}
	found := map[string]bool{}
	for _, r := range got {
		found[r.ID] = true
	}
	if !found[a.ID] || !found[c.ID] {
		t.Errorf("ContainsConn() = %v, want rooms a and c", found)
	}

	if len(s.ContainsConn("stranger")) != 0 {
		t.Error("ContainsConn() should be empty for an unknown connection")
	}
}

func TestRoom_CloseIdempotent(t *testing.T) {
	r := New("abc", "c1", time.Minute)

	r.Mu.Lock()
	r.Close()
	r.Close()
	closed := r.Closed()
	r.Mu.Unlock()

	if !closed {
		t.Error("room should report closed")
	}
}
