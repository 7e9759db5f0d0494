package catalog

import (
	"context"
	"testing"

	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

func TestFixturesResolve(t *testing.T) {
	c := Fixtures()
	ctx := context.Background()

	b, ok, err := c.FindBusiness(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("business 1: ok=%v err=%v", ok, err)
	}
	if b.OpeningTime != "09:00" || b.ClosingTime != "19:00" {
		t.Fatalf("unexpected hours %s-%s", b.OpeningTime, b.ClosingTime)
	}

	s, ok, _ := c.FindService(ctx, "s1")
	if !ok || s.BusinessID != "1" || s.DurationMinutes != 30 {
		t.Fatalf("unexpected service %+v", s)
	}

	if _, ok, _ := c.FindUser(ctx, "user1"); !ok {
		t.Fatal("expected user1")
	}
	if _, ok, _ := c.FindUser(ctx, "nobody"); ok {
		t.Fatal("unexpected user")
	}
}

func TestRemoveBusiness(t *testing.T) {
	c := Fixtures()
	c.RemoveBusiness("2")
	if _, ok, _ := c.FindBusiness(context.Background(), "2"); ok {
		t.Fatal("business 2 should be gone")
	}
	// Services are not cascaded.
	if _, ok, _ := c.FindService(context.Background(), "s4"); !ok {
		t.Fatal("service s4 should remain")
	}
}

func TestPutUserReplaces(t *testing.T) {
	c := Fixtures()
	c.PutUser(model.User{ID: "user1", FullName: "Juan P. Gómez", Email: "juan@example.com"})
	u, ok, _ := c.FindUser(context.Background(), "user1")
	if !ok || u.FullName != "Juan P. Gómez" {
		t.Fatalf("unexpected user %+v", u)
	}
}
