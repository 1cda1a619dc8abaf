package domain

type Hotel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Amenities string `json:"amenities,omitempty"`
}

// Room belongs to exactly one hotel. Available is false while a booking
// references the room.
type Room struct {
	ID        int64   `json:"id"`
	HotelID   int64   `json:"hotel_id"`
	RoomType  string  `json:"room_type"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}
