package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrRoomUnavailable  = errors.New("room not available")
	ErrHotelHasBookings = errors.New("hotel has active bookings")
	ErrRoomHasBookings  = errors.New("room has active bookings")
	ErrInvalidStay      = errors.New("check-out must be after check-in")
)
