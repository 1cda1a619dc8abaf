package mysql

// -----------------------------------------------------------------------------
// HOTELS
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels (name, location, amenities)
VALUES (?, ?, ?)
`

const getHotelSQL = `
SELECT id, name, location, amenities
FROM hotels
WHERE id = ?
`

const listHotelsSQL = `
SELECT id, name, location, amenities
FROM hotels
ORDER BY id
`

const searchHotelsSQL = `
SELECT id, name, location, amenities
FROM hotels
WHERE LOWER(location) LIKE CONCAT('%', LOWER(?), '%')
ORDER BY id
`

// Rooms go with the hotel via ON DELETE CASCADE on rooms.hotel_id.
const deleteHotelSQL = `
DELETE FROM hotels WHERE id = ?
`

const countHotelBookingsSQL = `
SELECT COUNT(*)
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE r.hotel_id = ?
`

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const insertRoomSQL = `
INSERT INTO rooms (hotel_id, room_type, price, available)
VALUES (?, ?, ?, ?)
`

const getRoomSQL = `
SELECT id, hotel_id, room_type, price, available
FROM rooms
WHERE id = ?
`

const listRoomsSQL = `
SELECT id, hotel_id, room_type, price, available
FROM rooms
ORDER BY id
`

const listRoomsByHotelSQL = `
SELECT id, hotel_id, room_type, price, available
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

const listAvailableRoomsSQL = `
SELECT id, hotel_id, room_type, price, available
FROM rooms
WHERE available = 1
ORDER BY id
`

const setRoomAvailabilitySQL = `
UPDATE rooms SET available = ? WHERE id = ?
`

const deleteRoomSQL = `
DELETE FROM rooms WHERE id = ?
`

const countRoomBookingsSQL = `
SELECT COUNT(*) FROM bookings WHERE room_id = ?
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

// Row lock serializes concurrent booking attempts against the same room.
const selectRoomForUpdateSQL = `
SELECT available FROM rooms WHERE id = ? FOR UPDATE
`

const markRoomBookedSQL = `
UPDATE rooms SET available = 0 WHERE id = ?
`

const markRoomAvailableSQL = `
UPDATE rooms SET available = 1 WHERE id = ?
`

const insertBookingSQL = `
INSERT INTO bookings (reference, room_id, guest, check_in, check_out, status)
VALUES (?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `
SELECT id, reference, room_id, guest, check_in, check_out, status
FROM bookings
WHERE id = ?
`

const getBookingForUpdateSQL = getBookingSQL + ` FOR UPDATE`

const listBookingsSQL = `
SELECT id, reference, room_id, guest, check_in, check_out, status
FROM bookings
ORDER BY id
`

const listBookingsByGuestSQL = `
SELECT id, reference, room_id, guest, check_in, check_out, status
FROM bookings
WHERE guest = ?
ORDER BY id
`

const deleteBookingSQL = `
DELETE FROM bookings WHERE id = ?
`
