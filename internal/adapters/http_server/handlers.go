package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/adityasingh1790/hotel-booking-system/internal/app"
	"github.com/adityasingh1790/hotel-booking-system/internal/domain"
)

type Handlers struct {
	Bookings *app.BookingService
	Catalog  *app.CatalogService
}

// envelope is the response wrapper used for every payload and error.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api/hotels", func(r chi.Router) {
		r.Post("/", h.createHotel)
		r.Get("/", h.listHotels)
		r.Get("/search", h.searchHotels)
		r.Get("/{id}", h.getHotel)
		r.Delete("/{id}", h.deleteHotel)
	})

	s.mux.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", h.createRoom)
		r.Get("/", h.listRooms)
		r.Get("/available", h.listAvailableRooms)
		r.Get("/hotel/{hotelId}", h.listRoomsByHotel)
		r.Get("/{id}", h.getRoom)
		r.Put("/{id}/availability", h.setRoomAvailability)
		r.Delete("/{id}", h.deleteRoom)
	})

	s.mux.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", h.createBooking)
		r.Get("/", h.listBookings)
		r.Get("/{id}", h.getBooking)
		r.Delete("/{id}", h.cancelBooking)
	})
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Message: message, Data: data}); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrRoomUnavailable),
		errors.Is(err, domain.ErrHotelHasBookings),
		errors.Is(err, domain.ErrRoomHasBookings):
		writeJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidStay):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid JSON body", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// ---- Hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req createHotelRequest
	if !decode(w, r, &req) {
		return
	}
	hotel, err := h.Catalog.CreateHotel(r.Context(), domain.Hotel{
		Name: req.Name, Location: req.Location, Amenities: req.Amenities,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "hotel created", hotel)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Catalog.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "hotels fetched", hotels)
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeJSON(w, http.StatusBadRequest, "location query parameter is required", nil)
		return
	}
	hotels, err := h.Catalog.SearchHotels(r.Context(), location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "hotels fetched", hotels)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	hotel, err := h.Catalog.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "hotel fetched", hotel)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	if err := h.Catalog.DeleteHotel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "hotel deleted", nil)
}

// ---- Rooms ----

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !decode(w, r, &req) {
		return
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	room, err := h.Catalog.CreateRoom(r.Context(), domain.Room{
		HotelID: req.HotelID, RoomType: req.RoomType, Price: req.Price, Available: available,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "room created", room)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Catalog.ListRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "rooms fetched", rooms)
}

func (h *Handlers) listAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Catalog.ListAvailableRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "available rooms fetched", rooms)
}

func (h *Handlers) listRoomsByHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, err := pathID(r, "hotelId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "hotel id must be a number", nil)
		return
	}
	rooms, err := h.Catalog.ListRoomsByHotel(r.Context(), hotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "rooms fetched", rooms)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	room, err := h.Catalog.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "room fetched", room)
}

func (h *Handlers) setRoomAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	available, err := strconv.ParseBool(r.URL.Query().Get("available"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "available must be true or false", nil)
		return
	}
	room, err := h.Catalog.SetRoomAvailability(r.Context(), id, available)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "room availability updated", room)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	if err := h.Catalog.DeleteRoom(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "room deleted", nil)
}

// ---- Bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decode(w, r, &req) {
		return
	}
	checkIn, checkOut, err := req.dates()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "dates must use YYYY-MM-DD", nil)
		return
	}
	booking, err := h.Bookings.CreateBooking(r.Context(), req.RoomID, req.Guest, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "room booked", booking)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.ListBookings(r.Context(), r.URL.Query().Get("guest"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "bookings fetched", bookings)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	booking, err := h.Bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "booking fetched", booking)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "id must be a number", nil)
		return
	}
	booking, err := h.Bookings.CancelBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "booking cancelled", booking)
}
