package mysql

const insertUserSQL = `
INSERT INTO users (name, email, password_hash, created_at)
VALUES (?, ?, ?, ?)
`

const selectUserByEmailSQL = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE email = ?
`

const selectUserByIDSQL = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE id = ?
`

const insertPlaceSQL = `
INSERT INTO places
  (owner_id, title, address, photos, description, perks, extra_info,
   check_in, check_out, max_guests, price, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Full-field replace: every mutable column is overwritten on update.
const updatePlaceSQL = `
UPDATE places SET
  title      = ?,
  address    = ?,
  photos     = ?,
  description = ?,
  perks      = ?,
  extra_info = ?,
  check_in   = ?,
  check_out  = ?,
  max_guests = ?,
  price      = ?
WHERE id = ?
`

const placeColumns = `
  id, owner_id, title, address, photos, description, perks, extra_info,
  check_in, check_out, max_guests, price, created_at
`

const selectPlaceByIDSQL = `SELECT ` + placeColumns + ` FROM places WHERE id = ?`

const selectPlacesByOwnerSQL = `SELECT ` + placeColumns + ` FROM places WHERE owner_id = ? ORDER BY id`

const selectAllPlacesSQL = `SELECT ` + placeColumns + ` FROM places ORDER BY id`

const searchPlacesSQL = `SELECT ` + placeColumns + ` FROM places
WHERE LOWER(title) LIKE ? OR LOWER(address) LIKE ? OR LOWER(description) LIKE ?
ORDER BY id`

const insertBookingSQL = `
INSERT INTO bookings
  (place_id, user_id, check_in, check_out, number_of_guests, name, phone, price, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectBookingByIDSQL = `
SELECT id, place_id, user_id, check_in, check_out, number_of_guests, name, phone, price, created_at
FROM bookings
WHERE id = ?
`

// Joined read model: each booking row carries its full place document.
// LEFT JOIN because bookings reference places without a foreign key.
const selectBookingsByUserSQL = `
SELECT
  b.id, b.place_id, b.user_id, b.check_in, b.check_out, b.number_of_guests,
  b.name, b.phone, b.price, b.created_at,
  p.id, p.owner_id, p.title, p.address, p.photos, p.description, p.perks,
  p.extra_info, p.check_in, p.check_out, p.max_guests, p.price, p.created_at
FROM bookings b
LEFT JOIN places p ON p.id = b.place_id
WHERE b.user_id = ?
ORDER BY b.id
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

// Note: `text` and `date` are reserved-ish; keep them quoted everywhere.
const insertReviewSQL = "INSERT INTO reviews (place_id, rating, `text`, `date`) VALUES (?, ?, ?, ?)"

const selectReviewsByPlaceSQL = "SELECT id, place_id, rating, `text`, `date`\n" +
	"FROM reviews\nWHERE place_id = ?\nORDER BY `date` DESC, id DESC"

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`
