package world

import "testing"

func newTestEntity(id string) *Entity {
	return &Entity{ID: id, Name: id, Active: true}
}

func TestAddEntityAssignsStableOrder(t *testing.T) {
	w := New(1)
	for _, id := range []string{"a", "b", "c"} {
		if err := w.AddEntity(newTestEntity(id)); err != nil {
			t.Fatalf("unexpected error adding %s: %v", id, err)
		}
	}
	ents := w.Entities()
	got := []string{ents[0].ID, ents[1].ID, ents[2].ID}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insertion order mismatch: got %v want %v", got, want)
		}
	}
	if w.EntityCount() != 3 {
		t.Fatalf("expected count 3, got %d", w.EntityCount())
	}
}

func TestAddEntityDuplicateID(t *testing.T) {
	w := New(1)
	if err := w.AddEntity(newTestEntity("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := w.AddEntity(newTestEntity("x"))
	if err == nil {
		t.Fatalf("expected DuplicateIDError")
	}
	var dupErr *DuplicateIDError
	if !asDuplicateID(err, &dupErr) {
		t.Fatalf("expected *DuplicateIDError, got %T", err)
	}
}

func asDuplicateID(err error, target **DuplicateIDError) bool {
	if e, ok := err.(*DuplicateIDError); ok {
		*target = e
		return true
	}
	return false
}

func TestGetEntityByIDMissing(t *testing.T) {
	w := New(1)
	if e := w.GetEntityByID("nope"); e != nil {
		t.Fatalf("expected nil for missing id, got %+v", e)
	}
}

func TestDeathNeverRemovesEntity(t *testing.T) {
	w := New(1)
	e := newTestEntity("a")
	_ = w.AddEntity(e)
	e.Kill()
	if w.EntityCount() != 1 {
		t.Fatalf("killing an entity must not remove it from the world")
	}
	if w.GetEntityByID("a") == nil {
		t.Fatalf("killed entity must remain resolvable by id")
	}
	if e.Active || !e.Destroyed {
		t.Fatalf("Kill() must set Active=false, Destroyed=true")
	}
}
