package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/adityasingh1790/hotel-booking-system/internal/adapters/redis"
	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	room := domain.Room{ID: 10, HotelID: 1, RoomType: "single", Price: 100, Available: true}
	if err := c.Set(ctx, "room:10", room, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Room
	ok, err := c.Get(ctx, "room:10", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != room {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := c.Del(ctx, "room:10"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "room:10", &got)
	if err != nil || ok {
		t.Fatalf("expected miss after del, ok=%v err=%v", ok, err)
	}
}

func TestCache_GetMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var dst domain.Hotel
	ok, err := c.Get(context.Background(), "hotel:404", &dst)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
