package domain

import "time"

const StatusActive = "active"

type Booking struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	RoomID    int64     `json:"room_id"`
	Guest     string    `json:"guest"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Status    string    `json:"status"`
}
