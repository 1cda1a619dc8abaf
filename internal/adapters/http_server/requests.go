package httpserver

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

type createHotelRequest struct {
	Name      string `json:"name" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Amenities string `json:"amenities"`
}

type createRoomRequest struct {
	HotelID  int64   `json:"hotel_id" validate:"required,gt=0"`
	RoomType string  `json:"room_type" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	// nil means "available", matching a freshly created room.
	Available *bool `json:"available"`
}

type createBookingRequest struct {
	RoomID   int64  `json:"room_id" validate:"required,gt=0"`
	Guest    string `json:"guest" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

func (r createBookingRequest) dates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = time.Parse(dateLayout, r.CheckIn); err != nil {
		return
	}
	checkOut, err = time.Parse(dateLayout, r.CheckOut)
	return
}
