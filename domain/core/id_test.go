package core

import (
	"testing"
)

// TestNewContentIDStable tests that equal content maps to equal IDs
func TestNewContentIDStable(t *testing.T) {
	a := NewContentID([]byte("sheet1|row1"))
	b := NewContentID([]byte("sheet1|row1"))
	c := NewContentID([]byte("sheet1|row2"))

	if a != b {
		t.Errorf("Expected equal IDs for equal content, got %s and %s", a, b)
	}
	if a == c {
		t.Errorf("Expected different IDs for different content, both were %s", a)
	}
	if a.String() == "" {
		t.Error("Expected content ID to be non-empty")
	}
}

// TestNewContentIDIsNameBased tests that content IDs are version 5 UUIDs
func TestNewContentIDIsNameBased(t *testing.T) {
	id := NewContentID([]byte("Roll_No"))
	if len(id.String()) != 36 {
		t.Fatalf("Expected canonical UUID form, got %q", id)
	}
	if version := id.String()[14]; version != '5' {
		t.Errorf("Expected version 5 UUID, got version %c", version)
	}
}
