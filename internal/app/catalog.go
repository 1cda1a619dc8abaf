package app

import (
	"context"
	"fmt"
	"time"

	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
)

const availableRoomsKey = "rooms:available"

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }
func roomKey(id int64) string  { return fmt.Sprintf("room:%d", id) }

// CatalogService is plain CRUD over hotels and rooms with a read-through
// cache on the hot lookups (hotel by id, available rooms).
type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

// ---- Hotels ----

func (s *CatalogService) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	return s.repo.CreateHotel(ctx, h)
}

func (s *CatalogService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

func (s *CatalogService) SearchHotels(ctx context.Context, location string) ([]domain.Hotel, error) {
	return s.repo.SearchHotelsByLocation(ctx, location)
}

func (s *CatalogService) DeleteHotel(ctx context.Context, id int64) error {
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, hotelKey(id))
	// Cascaded room deletes change the availability listing too.
	_ = s.cache.Del(ctx, availableRoomsKey)
	return nil
}

// ---- Rooms ----

func (s *CatalogService) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	out, err := s.repo.CreateRoom(ctx, r)
	if err != nil {
		return domain.Room{}, err
	}
	if out.Available {
		_ = s.cache.Del(ctx, availableRoomsKey)
	}
	return out, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	key := roomKey(id)
	var r domain.Room
	if ok, _ := s.cache.Get(ctx, key, &r); ok {
		return r, nil
	}
	r, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	_ = s.cache.Set(ctx, key, r, int(s.cacheTTL.Seconds()))
	return r, nil
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx)
}

func (s *CatalogService) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if _, err := s.repo.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.repo.ListRoomsByHotel(ctx, hotelID)
}

func (s *CatalogService) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if ok, _ := s.cache.Get(ctx, availableRoomsKey, &rooms); ok {
		return rooms, nil
	}
	rooms, err := s.repo.ListAvailableRooms(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, availableRoomsKey, rooms, int(s.cacheTTL.Seconds()))
	return rooms, nil
}

func (s *CatalogService) SetRoomAvailability(ctx context.Context, id int64, available bool) (domain.Room, error) {
	r, err := s.repo.SetRoomAvailability(ctx, id, available)
	if err != nil {
		return domain.Room{}, err
	}
	_ = s.cache.Del(ctx, roomKey(id))
	_ = s.cache.Del(ctx, availableRoomsKey)
	return r, nil
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, roomKey(id))
	_ = s.cache.Del(ctx, availableRoomsKey)
	return nil
}
