package ids

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDAllocator_NewID(t *testing.T) {
	a := UUIDAllocator{}
	id := a.NewID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("not a uuid: %q", id)
	}
	if a.NewID() == id {
		t.Fatal("ids must be unique")
	}
}

func TestUUIDAllocator_NewBookingNumber(t *testing.T) {
	a := UUIDAllocator{}
	n := a.NewBookingNumber()
	if !strings.HasPrefix(n, "B-") || len(n) != 10 {
		t.Fatalf("unexpected booking number %q", n)
	}
	if n != strings.ToUpper(n) {
		t.Fatalf("booking number not upper case: %q", n)
	}
}
