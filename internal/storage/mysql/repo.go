package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"stayhub/internal/domain"
)

// Repo implements every repository port on one MySQL handle.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const mysqlDupEntry = 1062

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}

// jsonList marshals a string slice for a JSON column; nil becomes [] so the
// column is never NULL.
func jsonList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if isDupEntry(err) {
		return domain.User{}, domain.ErrConflict
	}
	if err != nil {
		return domain.User{}, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
}

func (r *Repo) UserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
}

func (r *Repo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

// ---- places ----

func (r *Repo) CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	p.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertPlaceSQL,
		p.OwnerID, p.Title, p.Address, jsonList(p.Photos), p.Description,
		jsonList(p.Perks), p.ExtraInfo, p.CheckIn, p.CheckOut, p.MaxGuests,
		p.Price, p.CreatedAt,
	)
	if err != nil {
		return domain.Place{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

func (r *Repo) UpdatePlace(ctx context.Context, p domain.Place) error {
	res, err := r.db.ExecContext(ctx, updatePlaceSQL,
		p.Title, p.Address, jsonList(p.Photos), p.Description, jsonList(p.Perks),
		p.ExtraInfo, p.CheckIn, p.CheckOut, p.MaxGuests, p.Price, p.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// zero rows is ambiguous (identical update or missing row); a cheap
		// existence probe keeps NotFound honest
		var id int64
		if scanErr := r.db.QueryRowContext(ctx, `SELECT id FROM places WHERE id = ?`, p.ID).Scan(&id); scanErr == sql.ErrNoRows {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *Repo) PlaceByID(ctx context.Context, id int64) (domain.Place, error) {
	row := r.db.QueryRowContext(ctx, selectPlaceByIDSQL, id)
	p, err := scanPlace(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Place{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) PlacesByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	return r.queryPlaces(ctx, selectPlacesByOwnerSQL, ownerID)
}

func (r *Repo) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.queryPlaces(ctx, selectAllPlacesSQL)
	}
	needle := "%" + escapeLike(strings.ToLower(query)) + "%"
	return r.queryPlaces(ctx, searchPlacesSQL, needle, needle, needle)
}

// escapeLike makes the user's query a literal substring for LIKE.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func (r *Repo) queryPlaces(ctx context.Context, q string, args ...any) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPlace(scan func(...any) error) (domain.Place, error) {
	var p domain.Place
	var photos, perks []byte
	if err := scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Address, &photos, &p.Description,
		&perks, &p.ExtraInfo, &p.CheckIn, &p.CheckOut, &p.MaxGuests,
		&p.Price, &p.CreatedAt,
	); err != nil {
		return domain.Place{}, err
	}
	_ = json.Unmarshal(photos, &p.Photos)
	_ = json.Unmarshal(perks, &p.Perks)
	return p, nil
}

// ---- bookings ----

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	b.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.PlaceID, b.UserID, b.CheckIn, b.CheckOut, b.NumberOfGuests,
		b.Name, b.Phone, b.Price, b.CreatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	b.ID, err = res.LastInsertId()
	return b, err
}

func (r *Repo) BookingByID(ctx context.Context, id int64) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.QueryRowContext(ctx, selectBookingByIDSQL, id).Scan(
		&b.ID, &b.PlaceID, &b.UserID, &b.CheckIn, &b.CheckOut,
		&b.NumberOfGuests, &b.Name, &b.Phone, &b.Price, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func (r *Repo) BookingsByUser(ctx context.Context, userID int64) ([]domain.BookingWithPlace, error) {
	rows, err := r.db.QueryContext(ctx, selectBookingsByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingWithPlace
	for rows.Next() {
		var bw domain.BookingWithPlace
		var (
			placeID, ownerID, maxGuests  sql.NullInt64
			title, address, desc         sql.NullString
			extraInfo, checkIn, checkOut sql.NullString
			photos, perks                []byte
			price                        sql.NullFloat64
			createdAt                    sql.NullTime
		)
		if err := rows.Scan(
			&bw.ID, &bw.PlaceID, &bw.UserID, &bw.CheckIn, &bw.CheckOut,
			&bw.NumberOfGuests, &bw.Name, &bw.Phone, &bw.Price, &bw.CreatedAt,
			&placeID, &ownerID, &title, &address, &photos, &desc, &perks,
			&extraInfo, &checkIn, &checkOut, &maxGuests, &price, &createdAt,
		); err != nil {
			return nil, err
		}

		// the joined place may be absent: bookings carry no foreign key
		if placeID.Valid {
			bw.Place = domain.Place{
				ID:          placeID.Int64,
				OwnerID:     ownerID.Int64,
				Title:       title.String,
				Address:     address.String,
				Description: desc.String,
				ExtraInfo:   extraInfo.String,
				CheckIn:     checkIn.String,
				CheckOut:    checkOut.String,
				MaxGuests:   int(maxGuests.Int64),
				Price:       price.Float64,
				CreatedAt:   createdAt.Time,
			}
			_ = json.Unmarshal(photos, &bw.Place.Photos)
			_ = json.Unmarshal(perks, &bw.Place.Perks)
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteBooking(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteBookingSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- reviews ----

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL, rv.PlaceID, rv.Rating, rv.Text, rv.Date)
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID, err = res.LastInsertId()
	return rv, err
}

func (r *Repo) ReviewsByPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsByPlaceSQL, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.PlaceID, &rv.Rating, &rv.Text, &rv.Date); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
