package client

import (
	"errors"
	"testing"

	"github.com/hance08/banksim/internal/idgen"
)

func strPtr(s string) *string { return &s }

func TestNewClientSuspicious(t *testing.T) {
	r := NewRegistry(idgen.New())

	full := r.New("Ann", "Lee", Optional{Address: strPtr("1 Main St"), Passport: strPtr("P-1")})
	partial := r.New("Bob", "Ray", Optional{Address: strPtr("2 Side St")})

	info, err := r.Info(full)
	if err != nil {
		t.Fatal(err)
	}
	if info.Suspicious {
		t.Fatalf("client with full profile should not be suspicious")
	}

	info, err = r.Info(partial)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Suspicious || info.ClientID != partial {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestUpdateOptionalClearsSuspicion(t *testing.T) {
	r := NewRegistry(idgen.New())
	id := r.New("Bob", "Ray", Optional{})

	info, err := r.UpdateOptional(id, Optional{Passport: strPtr("P-2")})
	if err != nil {
		t.Fatal(err)
	}
	if !info.Suspicious {
		t.Fatalf("address still missing, want suspicious")
	}

	info, err = r.UpdateOptional(id, Optional{Address: strPtr("2 Side St")})
	if err != nil {
		t.Fatal(err)
	}
	if info.Suspicious {
		t.Fatalf("profile complete, want not suspicious")
	}

	c, _ := r.Get(id)
	if c.Passport == nil || *c.Passport != "P-2" {
		t.Fatalf("passport lost on second update: %+v", c)
	}
}

func TestUnknownClient(t *testing.T) {
	r := NewRegistry(idgen.New())

	if _, err := r.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := r.UpdateOptional("missing", Optional{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveReleasesID(t *testing.T) {
	ids := idgen.New()
	r := NewRegistry(ids)
	id := r.New("Ann", "Lee", Optional{})

	if err := r.Remove(id); err != nil {
		t.Fatal(err)
	}
	if ids.InUse(id) {
		t.Fatalf("id %q still allocated", id)
	}
	if len(r.IDs()) != 0 {
		t.Fatalf("registry not empty: %v", r.IDs())
	}
}
