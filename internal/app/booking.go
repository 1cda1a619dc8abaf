package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/adityasingh1790/hotel-booking-system/internal/adapters/observability"
	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
)

// BookingService owns the availability invariant: a room is unavailable
// exactly while one active booking references it. The repository executes
// book/release as atomic units; this service validates, classifies outcomes
// and keeps the read cache honest.
type BookingService struct {
	repo  domain.BookingRepository
	cache domain.Cache
}

func NewBookingService(r domain.BookingRepository, c domain.Cache) *BookingService {
	return &BookingService{repo: r, cache: c}
}

func (s *BookingService) CreateBooking(ctx context.Context, roomID int64, guest string, checkIn, checkOut time.Time) (domain.Booking, error) {
	if !checkOut.After(checkIn) {
		return domain.Booking{}, domain.ErrInvalidStay
	}

	b := domain.Booking{
		Reference: uuid.NewString(),
		RoomID:    roomID,
		Guest:     guest,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    domain.StatusActive,
	}
	out, err := s.repo.BookRoom(ctx, b)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveBooking("not_found")
		return domain.Booking{}, err
	case errors.Is(err, domain.ErrRoomUnavailable):
		observability.ObserveBooking("conflict")
		return domain.Booking{}, err
	case err != nil:
		observability.ObserveBooking("error")
		return domain.Booking{}, err
	}

	observability.ObserveBooking("created")
	s.invalidateRoomCaches(ctx, out.RoomID)
	return out, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) (domain.Booking, error) {
	b, err := s.repo.ReleaseBooking(ctx, bookingID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveBooking("not_found")
		return domain.Booking{}, err
	case err != nil:
		observability.ObserveBooking("error")
		return domain.Booking{}, err
	}

	observability.ObserveBooking("cancelled")
	s.invalidateRoomCaches(ctx, b.RoomID)
	return b, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

// ListBookings returns all bookings, or only the given guest's when guest is
// non-empty.
func (s *BookingService) ListBookings(ctx context.Context, guest string) ([]domain.Booking, error) {
	if guest == "" {
		return s.repo.ListBookings(ctx)
	}
	return s.repo.ListBookingsByGuest(ctx, guest)
}

func (s *BookingService) invalidateRoomCaches(ctx context.Context, roomID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, availableRoomsKey)
	_ = s.cache.Del(ctx, roomKey(roomID))
}
