//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"golang.org/x/sync/errgroup"

	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
	mysqlrepo "github.com/adityasingh1790/hotel-booking-system/internal/storage/mysql"
)

// ---------- helpers ----------

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotelbook",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hotelbook")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seedHotelRoom(t *testing.T, repo *mysqlrepo.Repo) (domain.Hotel, domain.Room) {
	t.Helper()
	ctx := context.Background()
	h, err := repo.CreateHotel(ctx, domain.Hotel{Name: "Acme", Location: "NYC", Amenities: "wifi"})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	r, err := repo.CreateRoom(ctx, domain.Room{HotelID: h.ID, RoomType: "single", Price: 100, Available: true})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	return h, r
}

func booking(roomID int64, guest string) domain.Booking {
	return domain.Booking{
		Reference: uuid.NewString(),
		RoomID:    roomID,
		Guest:     guest,
		CheckIn:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusActive,
	}
}

// ---------- the tests ----------

func TestRepo_MySQL_BookingLifecycle(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	_, room := seedHotelRoom(t, repo)

	b, err := repo.BookRoom(ctx, booking(room.ID, "Alice"))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if b.ID == 0 {
		t.Fatalf("expected generated booking id")
	}

	got, err := repo.GetRoom(ctx, room.ID)
	if err != nil || got.Available {
		t.Fatalf("room should be unavailable after booking: %+v (err %v)", got, err)
	}

	// second attempt conflicts
	if _, err := repo.BookRoom(ctx, booking(room.ID, "Bob")); !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}

	// unknown room
	if _, err := repo.BookRoom(ctx, booking(999999, "Eve")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}

	// cancel restores availability and removes the booking
	released, err := repo.ReleaseBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("ReleaseBooking: %v", err)
	}
	if released.Guest != "Alice" || released.RoomID != room.ID {
		t.Fatalf("unexpected released booking: %+v", released)
	}
	got, err = repo.GetRoom(ctx, room.ID)
	if err != nil || !got.Available {
		t.Fatalf("room should be available after cancel: %+v (err %v)", got, err)
	}
	if _, err := repo.GetBooking(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected booking gone, got %v", err)
	}
	if _, err := repo.ReleaseBooking(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double cancel, got %v", err)
	}
}

func TestRepo_MySQL_ConcurrentBookings_OneWinner(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	_, room := seedHotelRoom(t, repo)

	const workers = 16
	results := make([]error, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			_, err := repo.BookRoom(ctx, booking(room.ID, fmt.Sprintf("guest-%d", i)))
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrRoomUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != workers-1 {
		t.Fatalf("wins=%d conflicts=%d, want 1 and %d", wins, conflicts, workers-1)
	}

	all, err := repo.ListBookings(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected exactly one persisted booking, got %d (err %v)", len(all), err)
	}
}

func TestRepo_MySQL_HotelCascadeAndGuards(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	h, err := repo.CreateHotel(ctx, domain.Hotel{Name: "Cascade", Location: "Chicago"})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	var rooms []domain.Room
	for i := 0; i < 3; i++ {
		r, err := repo.CreateRoom(ctx, domain.Room{HotelID: h.ID, RoomType: "double", Price: 150, Available: true})
		if err != nil {
			t.Fatalf("CreateRoom: %v", err)
		}
		rooms = append(rooms, r)
	}

	// room creation against a missing hotel maps the FK violation
	if _, err := repo.CreateRoom(ctx, domain.Room{HotelID: 999999, RoomType: "single"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing hotel, got %v", err)
	}

	// booked hotel cannot be deleted
	b, err := repo.BookRoom(ctx, booking(rooms[0].ID, "Alice"))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if err := repo.DeleteHotel(ctx, h.ID); !errors.Is(err, domain.ErrHotelHasBookings) {
		t.Fatalf("expected ErrHotelHasBookings, got %v", err)
	}
	if err := repo.DeleteRoom(ctx, rooms[0].ID); !errors.Is(err, domain.ErrRoomHasBookings) {
		t.Fatalf("expected ErrRoomHasBookings, got %v", err)
	}

	// after cancelling, deletion cascades to all rooms
	if _, err := repo.ReleaseBooking(ctx, b.ID); err != nil {
		t.Fatalf("ReleaseBooking: %v", err)
	}
	if err := repo.DeleteHotel(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHotel: %v", err)
	}
	left, err := repo.ListRoomsByHotel(ctx, h.ID)
	if err != nil || len(left) != 0 {
		t.Fatalf("expected cascade to remove rooms, %d left (err %v)", len(left), err)
	}
	if err := repo.DeleteHotel(ctx, h.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRepo_MySQL_QueriesAndSearch(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	h1, err := repo.CreateHotel(ctx, domain.Hotel{Name: "Acme", Location: "New York City"})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	h2, err := repo.CreateHotel(ctx, domain.Hotel{Name: "Harbor", Location: "San Francisco"})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	r1, err := repo.CreateRoom(ctx, domain.Room{HotelID: h1.ID, RoomType: "single", Price: 100, Available: true})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if _, err := repo.CreateRoom(ctx, domain.Room{HotelID: h2.ID, RoomType: "double", Price: 160, Available: false}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	found, err := repo.SearchHotelsByLocation(ctx, "york")
	if err != nil || len(found) != 1 || found[0].ID != h1.ID {
		t.Fatalf("search: %v %+v", err, found)
	}

	avail, err := repo.ListAvailableRooms(ctx)
	if err != nil || len(avail) != 1 || avail[0].ID != r1.ID {
		t.Fatalf("available rooms: %v %+v", err, avail)
	}

	byHotel, err := repo.ListRoomsByHotel(ctx, h2.ID)
	if err != nil || len(byHotel) != 1 || byHotel[0].Available {
		t.Fatalf("rooms by hotel: %v %+v", err, byHotel)
	}

	flipped, err := repo.SetRoomAvailability(ctx, r1.ID, false)
	if err != nil || flipped.Available {
		t.Fatalf("SetRoomAvailability: %v %+v", err, flipped)
	}

	// bookings by guest
	if _, err := repo.SetRoomAvailability(ctx, r1.ID, true); err != nil {
		t.Fatalf("SetRoomAvailability: %v", err)
	}
	if _, err := repo.BookRoom(ctx, booking(r1.ID, "Alice")); err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	mine, err := repo.ListBookingsByGuest(ctx, "Alice")
	if err != nil || len(mine) != 1 || mine[0].Guest != "Alice" {
		t.Fatalf("bookings by guest: %v %+v", err, mine)
	}
	none, err := repo.ListBookingsByGuest(ctx, "Bob")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no bookings for Bob: %v %+v", err, none)
	}
}
