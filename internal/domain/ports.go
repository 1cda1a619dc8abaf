package domain

import "context"

type CatalogRepository interface {
	// Hotels
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	SearchHotelsByLocation(ctx context.Context, location string) ([]Hotel, error)
	// DeleteHotel cascades to the hotel's rooms. It fails with
	// ErrHotelHasBookings while any booking references one of them.
	DeleteHotel(ctx context.Context, id int64) error

	// Rooms
	CreateRoom(ctx context.Context, r Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsByHotel(ctx context.Context, hotelID int64) ([]Room, error)
	ListAvailableRooms(ctx context.Context) ([]Room, error)
	SetRoomAvailability(ctx context.Context, id int64, available bool) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

type BookingRepository interface {
	// BookRoom executes the check-then-book sequence as one atomic unit per
	// room: it fails with ErrNotFound when the room does not exist and with
	// ErrRoomUnavailable when the room is already booked; on success the
	// room's availability flag is cleared and the persisted booking (with
	// generated id) is returned.
	BookRoom(ctx context.Context, b Booking) (Booking, error)
	// ReleaseBooking atomically restores the referenced room's availability
	// and deletes the booking. Returns the deleted booking.
	ReleaseBooking(ctx context.Context, bookingID int64) (Booking, error)

	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsByGuest(ctx context.Context, guest string) ([]Booking, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
