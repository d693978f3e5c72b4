package world

import "testing"

func TestIdCache_AssignsMonotonicStaticIds(t *testing.T) {
	c := NewIdCache()
	c.Save(10, "Alice")
	c.Save(11, "Bob")

	aliceID, ok := c.StaticID(10)
	if !ok || aliceID != 0 {
		t.Fatalf("Alice static id = %v, %v, want 0, true", aliceID, ok)
	}
	bobID, ok := c.StaticID(11)
	if !ok || bobID != 1 {
		t.Fatalf("Bob static id = %v, %v, want 1, true", bobID, ok)
	}
}

func TestIdCache_ReusesStaticIdForReturningName(t *testing.T) {
	c := NewIdCache()
	c.Save(10, "Alice")
	aliceID, _ := c.StaticID(10)

	// Alice re-enters under a new dynamic id after a zone change.
	c.Save(99, "Alice")

	newID, ok := c.StaticID(99)
	if !ok || newID != aliceID {
		t.Fatalf("re-entry static id = %v, %v, want %v, true", newID, ok, aliceID)
	}
	if _, stillBound := c.StaticID(10); stillBound {
		t.Fatalf("old dynamic id 10 should no longer resolve")
	}
}

func TestIdCache_FindingPlayerName(t *testing.T) {
	c := NewIdCache()
	c.Save(1, "Alice")
	c.Save(2, "Bob")

	staticID, _ := c.StaticID(2)
	name, ok := c.Name(staticID)
	if !ok || name != "Bob" {
		t.Fatalf("Name(%v) = %q, %v, want Bob, true", staticID, name, ok)
	}
}
