package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/data/entity"
	"shareit/pkg/database"
	"shareit/pkg/utils"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	tableBookings = "bookings"
	tableItems    = "items"

	castUUID      = "?::uuid"
	castTimestamp = "?::timestamp with time zone"
	castText      = "?::text"
)

var dialect = goqu.Dialect("postgres")

// BookingFilter narrows a booking listing. Nil fields are not applied.
type BookingFilter struct {
	BookerID   *uuid.UUID
	ItemIDs    []uuid.UUID
	Status     *entity.BookingStatus
	EndBefore  *time.Time
	StartAfter *time.Time
	ActiveAt   *time.Time
}

type BookingRepository interface {
	// CreateIfNoOverlap stores booking unless a non-rejected booking of the same
	// item conflicts with its interval. The check and the insert are atomic.
	CreateIfNoOverlap(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBy(ctx context.Context, filter BookingFilter, page *utils.Page) ([]*entity.Booking, error)
	// UpdateStatus moves a booking from one status to another, failing with
	// entity.ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, now time.Time) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateIfNoOverlap(ctx context.Context, booking *entity.Booking) error {
	lockSQL, lockArgs, err := buildLockItemQuery(booking.Item.ID)
	if err != nil {
		return fmt.Errorf("build lock item query: %w", err)
	}

	insertSQL, insertArgs, err := buildInsertIfNoOverlapQuery(booking)
	if err != nil {
		return fmt.Errorf("build insert booking query: %w", err)
	}

	err = database.InTx(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		// Serialises concurrent requests for the same item until commit.
		var lockedID uuid.UUID
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&lockedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", entity.ErrItemNotFound, booking.Item.ID)
			}
			return fmt.Errorf("lock item %s: %w", booking.Item.ID, err)
		}

		tag, err := tx.Exec(ctx, insertSQL, insertArgs...)
		if err != nil {
			return fmt.Errorf("insert booking %s: %w", booking.ID, err)
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: item %s from %s to %s", entity.ErrBookingOverlap,
				booking.Item.ID, booking.Start.Format(time.RFC3339), booking.End.Format(time.RFC3339))
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, entity.ErrBookingOverlap) && !errors.Is(err, entity.ErrItemNotFound) {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("item_id", booking.Item.ID.String()),
			)
		}
		return err
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query, args, err := selectBookings().
		Where(goqu.I("b.id").Eq(id.String())).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by id %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindBy(ctx context.Context, filter BookingFilter, page *utils.Page) ([]*entity.Booking, error) {
	query, args, err := buildFindBookingsQuery(filter, page)
	if err != nil {
		return nil, fmt.Errorf("build find bookings query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, now time.Time) error {
	query, args, err := buildUpdateStatusQuery(id, from, to, now)
	if err != nil {
		return fmt.Errorf("build update booking status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update booking status %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s is no longer %s", entity.ErrInvalidTransition, id, from)
	}

	return nil
}

func selectBookings() *goqu.SelectDataset {
	return dialect.
		From(goqu.T(tableBookings).As("b")).
		Join(goqu.T(tableItems).As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.start_date"), goqu.I("b.end_date"),
			goqu.I("b.booker_id"), goqu.I("b.status"),
			goqu.I("b.created_at"), goqu.I("b.updated_at"),
			goqu.I("i.id"), goqu.I("i.name"), goqu.I("i.description"),
			goqu.I("i.available"), goqu.I("i.owner_id"),
			goqu.I("i.created_at"), goqu.I("i.updated_at"),
		).
		Prepared(true)
}

func buildFindBookingsQuery(filter BookingFilter, page *utils.Page) (string, []any, error) {
	stmt := selectBookings().Where(filter.expressions()...)

	sort := utils.SortByStartDesc
	if page != nil {
		sort = page.Sort
	}
	column := goqu.I("b." + sort.Column)
	if sort.Desc {
		stmt = stmt.Order(column.Desc(), goqu.I("b.id").Asc())
	} else {
		stmt = stmt.Order(column.Asc(), goqu.I("b.id").Asc())
	}

	if page != nil {
		stmt = stmt.Limit(uint(page.Limit())).Offset(uint(page.Offset()))
	}

	return stmt.ToSQL()
}

func (f BookingFilter) expressions() []exp.Expression {
	expressions := make([]exp.Expression, 0)

	if f.BookerID != nil {
		expressions = append(expressions, goqu.I("b.booker_id").Eq(f.BookerID.String()))
	}

	switch {
	case f.ItemIDs == nil:
	case len(f.ItemIDs) == 0:
		expressions = append(expressions, goqu.L("FALSE"))
	default:
		ids := make([]any, 0, len(f.ItemIDs))
		for _, id := range f.ItemIDs {
			ids = append(ids, id.String())
		}
		expressions = append(expressions, goqu.I("b.item_id").In(ids...))
	}

	if f.Status != nil {
		expressions = append(expressions, goqu.I("b.status").Eq(string(*f.Status)))
	}

	if f.EndBefore != nil {
		expressions = append(expressions, goqu.I("b.end_date").Lt(*f.EndBefore))
	}

	if f.StartAfter != nil {
		expressions = append(expressions, goqu.I("b.start_date").Gt(*f.StartAfter))
	}

	if f.ActiveAt != nil {
		expressions = append(expressions,
			goqu.I("b.start_date").Lte(*f.ActiveAt),
			goqu.I("b.end_date").Gte(*f.ActiveAt),
		)
	}

	return expressions
}

func buildLockItemQuery(itemID uuid.UUID) (string, []any, error) {
	return dialect.
		From(tableItems).
		Select("id").
		Where(goqu.C("id").Eq(itemID.String())).
		ForUpdate(exp.Wait).
		Prepared(true).
		ToSQL()
}

// buildInsertIfNoOverlapQuery inserts the booking only when no live booking of
// the item satisfies existing.end > start AND existing.start <= end.
func buildInsertIfNoOverlapQuery(b *entity.Booking) (string, []any, error) {
	conflicting := dialect.
		From(tableBookings).
		Select(goqu.L("1")).
		Where(
			goqu.C("item_id").Eq(b.Item.ID.String()),
			goqu.C("status").Neq(string(entity.BookingStatusRejected)),
			goqu.C("end_date").Gt(b.Start),
			goqu.C("start_date").Lte(b.End),
		)

	values := dialect.
		Select(
			goqu.L(castUUID, b.ID.String()),
			goqu.L(castTimestamp, b.Start),
			goqu.L(castTimestamp, b.End),
			goqu.L(castUUID, b.Item.ID.String()),
			goqu.L(castUUID, b.BookerID.String()),
			goqu.L(castText, string(b.Status)),
			goqu.L(castTimestamp, b.CreatedAt),
			goqu.L(castTimestamp, b.UpdatedAt),
		).
		Where(goqu.L("NOT EXISTS ?", conflicting))

	return dialect.
		Insert(tableBookings).
		Cols("id", "start_date", "end_date", "item_id", "booker_id", "status", "created_at", "updated_at").
		FromQuery(values).
		Prepared(true).
		ToSQL()
}

func buildUpdateStatusQuery(id uuid.UUID, from, to entity.BookingStatus, now time.Time) (string, []any, error) {
	return dialect.
		Update(tableBookings).
		Set(goqu.Record{"status": string(to), "updated_at": now}).
		Where(
			goqu.C("id").Eq(id.String()),
			goqu.C("status").Eq(string(from)),
		).
		Prepared(true).
		ToSQL()
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		booking entity.Booking
		status  string
	)

	err := row.Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.BookerID,
		&status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.Item.ID,
		&booking.Item.Name,
		&booking.Item.Description,
		&booking.Item.Available,
		&booking.Item.OwnerID,
		&booking.Item.CreatedAt,
		&booking.Item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = entity.BookingStatus(status)
	return &booking, nil
}
