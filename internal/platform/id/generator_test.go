package id

import "testing"

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	g := NewUUIDGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	b, _ := g.NewID()
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if !Valid(a) {
		t.Fatalf("generated id %q does not parse", a)
	}
	if Valid("not-a-uuid") {
		t.Fatalf("expected invalid id to be rejected")
	}
}
