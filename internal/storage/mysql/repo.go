package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
)

const fkConstraintViolation = 1452 // ER_NO_REFERENCED_ROW_2

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- Hotels ----

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	res, err := r.db.ExecContext(ctx, insertHotelSQL, h.Name, h.Location, h.Amenities)
	if err != nil {
		return domain.Hotel{}, err
	}
	h.ID, err = res.LastInsertId()
	return h, err
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, getHotelSQL, id).
		Scan(&h.ID, &h.Name, &h.Location, &h.Amenities)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, listHotelsSQL)
}

func (r *Repo) SearchHotelsByLocation(ctx context.Context, location string) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, searchHotelsSQL, location)
}

func (r *Repo) queryHotels(ctx context.Context, query string, args ...any) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Amenities); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, countHotelBookingsSQL, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrHotelHasBookings
	}
	res, err := tx.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// ---- Rooms ----

func (r *Repo) CreateRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	res, err := r.db.ExecContext(ctx, insertRoomSQL, rm.HotelID, rm.RoomType, rm.Price, rm.Available)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == fkConstraintViolation {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	rm.ID, err = res.LastInsertId()
	return rm, err
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	var rm domain.Room
	err := r.db.QueryRowContext(ctx, getRoomSQL, id).
		Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Price, &rm.Available)
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, err
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return r.queryRooms(ctx, listRoomsSQL)
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return r.queryRooms(ctx, listRoomsByHotelSQL, hotelID)
}

func (r *Repo) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	return r.queryRooms(ctx, listAvailableRoomsSQL)
}

func (r *Repo) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Price, &rm.Available); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) SetRoomAvailability(ctx context.Context, id int64, available bool) (domain.Room, error) {
	if _, err := r.db.ExecContext(ctx, setRoomAvailabilitySQL, available, id); err != nil {
		return domain.Room{}, err
	}
	return r.GetRoom(ctx, id)
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, countRoomBookingsSQL, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrRoomHasBookings
	}
	res, err := tx.ExecContext(ctx, deleteRoomSQL, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// ---- Bookings ----

// BookRoom runs the availability check and the two writes inside one
// transaction; the FOR UPDATE lock on the room row makes concurrent attempts
// against the same room serialize, so at most one of them sees available=1.
func (r *Repo) BookRoom(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer tx.Rollback()

	var available bool
	err = tx.QueryRowContext(ctx, selectRoomForUpdateSQL, b.RoomID).Scan(&available)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	if !available {
		return domain.Booking{}, domain.ErrRoomUnavailable
	}

	if _, err := tx.ExecContext(ctx, markRoomBookedSQL, b.RoomID); err != nil {
		return domain.Booking{}, fmt.Errorf("mark room booked: %w", err)
	}
	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.Reference, b.RoomID, b.Guest, b.CheckIn, b.CheckOut, b.Status)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return domain.Booking{}, err
	}
	return b, tx.Commit()
}

func (r *Repo) ReleaseBooking(ctx context.Context, bookingID int64) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer tx.Rollback()

	var b domain.Booking
	err = tx.QueryRowContext(ctx, getBookingForUpdateSQL, bookingID).
		Scan(&b.ID, &b.Reference, &b.RoomID, &b.Guest, &b.CheckIn, &b.CheckOut, &b.Status)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}

	if _, err := tx.ExecContext(ctx, markRoomAvailableSQL, b.RoomID); err != nil {
		return domain.Booking{}, fmt.Errorf("mark room available: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteBookingSQL, bookingID); err != nil {
		return domain.Booking{}, fmt.Errorf("delete booking: %w", err)
	}
	return b, tx.Commit()
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.QueryRowContext(ctx, getBookingSQL, id).
		Scan(&b.ID, &b.Reference, &b.RoomID, &b.Guest, &b.CheckIn, &b.CheckOut, &b.Status)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func (r *Repo) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return r.queryBookings(ctx, listBookingsSQL)
}

func (r *Repo) ListBookingsByGuest(ctx context.Context, guest string) ([]domain.Booking, error) {
	return r.queryBookings(ctx, listBookingsByGuestSQL, guest)
}

func (r *Repo) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.RoomID, &b.Guest, &b.CheckIn, &b.CheckOut, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
