package usecase_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingRequest(itemID uuid.UUID, start, end time.Time) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{ItemID: itemID.String(), Start: start, End: end}
}

func intPtr(v int) *int { return &v }

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success is waiting", func(t *testing.T) {
		f := newFixture()
		owner, booker := f.addUser("owner"), f.addUser("booker")
		item := f.addItem(owner, true)

		resp, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusWaiting, resp.Status)
		assert.Equal(t, booker.String(), resp.Booker.ID)
		assert.Equal(t, item.ID.String(), resp.Item.ID)
		assert.Equal(t, owner.String(), resp.Item.OwnerID)
	})

	t.Run("unavailable item fails regardless of interval", func(t *testing.T) {
		f := newFixture()
		owner, booker := f.addUser("owner"), f.addUser("booker")
		item := f.addItem(owner, false)

		for _, interval := range [][2]time.Time{
			{at(10, 0), at(11, 0)},
			{at(20, 0), at(23, 0)},
		} {
			_, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, interval[0], interval[1]))
			assert.ErrorIs(t, err, entity.ErrItemUnavailable)
		}
	})

	t.Run("unknown booker", func(t *testing.T) {
		f := newFixture()
		item := f.addItem(f.addUser("owner"), true)

		_, err := f.service.Booking.CreateBooking(ctx, uuid.New(), bookingRequest(item.ID, at(10, 0), at(11, 0)))
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture()
		booker := f.addUser("booker")

		_, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(uuid.New(), at(10, 0), at(11, 0)))
		assert.ErrorIs(t, err, entity.ErrItemNotFound)
	})

	t.Run("self booking is reported as missing item", func(t *testing.T) {
		f := newFixture()
		owner := f.addUser("owner")
		item := f.addItem(owner, true)

		_, err := f.service.Booking.CreateBooking(ctx, owner, bookingRequest(item.ID, at(10, 0), at(11, 0)))
		assert.ErrorIs(t, err, entity.ErrItemNotFound)
		assert.Empty(t, f.bookings.bookings)
	})

	t.Run("unavailable is checked before self booking", func(t *testing.T) {
		f := newFixture()
		owner := f.addUser("owner")
		item := f.addItem(owner, false)

		_, err := f.service.Booking.CreateBooking(ctx, owner, bookingRequest(item.ID, at(10, 0), at(11, 0)))
		assert.ErrorIs(t, err, entity.ErrItemUnavailable)
	})

	t.Run("unknown booker is checked before unknown item", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Booking.CreateBooking(ctx, uuid.New(), bookingRequest(uuid.New(), at(10, 0), at(11, 0)))
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})

	t.Run("malformed interval", func(t *testing.T) {
		f := newFixture()
		owner, booker := f.addUser("owner"), f.addUser("booker")
		item := f.addItem(owner, true)

		_, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(11, 0), at(10, 0)))
		assert.ErrorIs(t, err, utils.ErrValidation)

		_, err = f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(7, 0), at(9, 0)))
		assert.ErrorIs(t, err, utils.ErrValidation)
	})
}

func TestCreateBooking_Overlap(t *testing.T) {
	ctx := context.Background()

	for _, status := range []entity.BookingStatus{entity.BookingStatusWaiting, entity.BookingStatusApproved} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			owner, booker, other := f.addUser("owner"), f.addUser("booker"), f.addUser("other")
			item := f.addItem(owner, true)

			first, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(10, 0), at(11, 0)))
			require.NoError(t, err)
			if status == entity.BookingStatusApproved {
				_, err = f.service.Booking.DecideBooking(ctx, owner, uuid.MustParse(first.ID), true)
				require.NoError(t, err)
			}

			_, err = f.service.Booking.CreateBooking(ctx, other, bookingRequest(item.ID, at(10, 30), at(10, 45)))
			assert.ErrorIs(t, err, entity.ErrBookingOverlap)

			// Ending exactly at the existing start conflicts.
			_, err = f.service.Booking.CreateBooking(ctx, other, bookingRequest(item.ID, at(9, 0), at(10, 0)))
			assert.ErrorIs(t, err, entity.ErrBookingOverlap)

			// Starting exactly at the existing end does not.
			_, err = f.service.Booking.CreateBooking(ctx, other, bookingRequest(item.ID, at(11, 0), at(12, 0)))
			assert.NoError(t, err)
		})
	}

	t.Run("rejected booking frees the interval", func(t *testing.T) {
		f := newFixture()
		owner, booker, other := f.addUser("owner"), f.addUser("booker"), f.addUser("other")
		item := f.addItem(owner, true)

		first, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		_, err = f.service.Booking.DecideBooking(ctx, owner, uuid.MustParse(first.ID), false)
		require.NoError(t, err)

		_, err = f.service.Booking.CreateBooking(ctx, other, bookingRequest(item.ID, at(10, 30), at(10, 45)))
		assert.NoError(t, err)
	})
}

func TestDecideBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner, booker, stranger := f.addUser("owner"), f.addUser("booker"), f.addUser("stranger")
	item := f.addItem(owner, true)

	created, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	_, err = f.service.Booking.DecideBooking(ctx, stranger, bookingID, true)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)

	_, err = f.service.Booking.DecideBooking(ctx, booker, bookingID, true)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound, "the booker is not the owner")

	_, err = f.service.Booking.DecideBooking(ctx, owner, uuid.New(), true)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)

	approved, err := f.service.Booking.DecideBooking(ctx, owner, bookingID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, approved.Status)

	for _, approve := range []bool{true, false} {
		_, err = f.service.Booking.DecideBooking(ctx, owner, bookingID, approve)
		assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	}

	stored, err := f.bookings.FindByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, stored.Status)
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner, booker, stranger := f.addUser("owner"), f.addUser("booker"), f.addUser("stranger")
	item := f.addItem(owner, true)

	created, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	for _, actor := range []uuid.UUID{owner, booker} {
		resp, err := f.service.Booking.GetBooking(ctx, actor, bookingID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	}

	_, err = f.service.Booking.GetBooking(ctx, stranger, bookingID)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)

	_, err = f.service.Booking.GetBooking(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

// stateFixture seeds one booking per temporal/status situation relative to testNow (08:00).
type stateFixture struct {
	*fixture
	owner, booker                            uuid.UUID
	past, current, future, waiting, rejected uuid.UUID
}

func newStateFixture() *stateFixture {
	f := newFixture()
	s := &stateFixture{fixture: f, owner: f.addUser("owner"), booker: f.addUser("booker")}
	item := f.addItem(s.owner, true)

	seed := func(start, end time.Time, status entity.BookingStatus) uuid.UUID {
		b := entity.NewBooking(s.booker, *item, start, end, testNow.Add(-48*time.Hour))
		b.Status = status
		f.bookings.seed(b)
		return b.ID
	}

	s.past = seed(at(5, 0), at(6, 0), entity.BookingStatusApproved)
	s.current = seed(at(7, 0), at(9, 0), entity.BookingStatusApproved)
	s.future = seed(at(12, 0), at(13, 0), entity.BookingStatusApproved)
	s.waiting = seed(at(14, 0), at(15, 0), entity.BookingStatusWaiting)
	s.rejected = seed(at(16, 0), at(17, 0), entity.BookingStatusRejected)
	return s
}

func ids(bookings []*response.BookingResponse) []string {
	result := make([]string, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, b.ID)
	}
	return result
}

func TestListBookings_StateDispatch(t *testing.T) {
	ctx := context.Background()
	s := newStateFixture()

	tests := []struct {
		state string
		want  []uuid.UUID
	}{
		{"", []uuid.UUID{s.rejected, s.waiting, s.future, s.current, s.past}},
		{"ALL", []uuid.UUID{s.rejected, s.waiting, s.future, s.current, s.past}},
		{"PAST", []uuid.UUID{s.past}},
		{"CURRENT", []uuid.UUID{s.current}},
		{"FUTURE", []uuid.UUID{s.rejected, s.waiting, s.future}},
		{"WAITING", []uuid.UUID{s.waiting}},
		{"REJECTED", []uuid.UUID{s.rejected}},
	}

	for _, tt := range tests {
		t.Run("state_"+tt.state, func(t *testing.T) {
			want := make([]string, 0, len(tt.want))
			for _, id := range tt.want {
				want = append(want, id.String())
			}

			booker, err := s.service.Booking.ListBookerBookings(ctx, s.booker, &request.BookingListQuery{State: tt.state})
			require.NoError(t, err)
			assert.Equal(t, want, ids(booker))

			owner, err := s.service.Booking.ListOwnerBookings(ctx, s.owner, &request.BookingListQuery{State: tt.state})
			require.NoError(t, err)
			assert.Equal(t, want, ids(owner))
		})
	}
}

func TestListBookings_CurrentIsInclusive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner, booker := f.addUser("owner"), f.addUser("booker")
	item := f.addItem(owner, true)

	startsNow := entity.NewBooking(booker, *item, testNow, at(9, 0), testNow)
	f.bookings.seed(startsNow)

	resp, err := f.service.Booking.ListBookerBookings(ctx, booker, &request.BookingListQuery{State: "CURRENT"})
	require.NoError(t, err)
	assert.Equal(t, []string{startsNow.ID.String()}, ids(resp))
}

func TestListBookings_Errors(t *testing.T) {
	ctx := context.Background()
	s := newStateFixture()

	_, err := s.service.Booking.ListBookerBookings(ctx, s.booker, &request.BookingListQuery{State: "BOGUS"})
	assert.ErrorIs(t, err, entity.ErrUnknownState)
	assert.ErrorContains(t, err, "BOGUS")

	_, err = s.service.Booking.ListBookerBookings(ctx, s.booker, &request.BookingListQuery{State: "ALL", From: intPtr(-1), Size: intPtr(0)})
	assert.ErrorIs(t, err, utils.ErrInvalidPagination)

	_, err = s.service.Booking.ListBookerBookings(ctx, s.booker, &request.BookingListQuery{From: intPtr(0)})
	assert.ErrorIs(t, err, utils.ErrInvalidPagination)

	_, err = s.service.Booking.ListOwnerBookings(ctx, s.owner, &request.BookingListQuery{State: "all"})
	assert.ErrorIs(t, err, entity.ErrUnknownState)

	_, err = s.service.Booking.ListBookerBookings(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	_, err = s.service.Booking.ListOwnerBookings(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestListBookings_Paged(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner, booker := f.addUser("owner"), f.addUser("booker")
	item := f.addItem(owner, true)

	var latest string
	for _, hour := range []int{10, 12, 14} {
		resp, err := f.service.Booking.CreateBooking(ctx, booker, bookingRequest(item.ID, at(hour, 0), at(hour, 30)))
		require.NoError(t, err)
		latest = resp.ID
	}

	page, err := f.service.Booking.ListBookerBookings(ctx, booker, &request.BookingListQuery{State: "ALL", From: intPtr(0), Size: intPtr(1)})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, latest, page[0].ID)

	// from=3 with size=2 rounds down to page 1, which holds the third booking.
	page, err = f.service.Booking.ListBookerBookings(ctx, booker, &request.BookingListQuery{From: intPtr(3), Size: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, at(10, 0), page[0].Start)
}

func TestListOwnerBookings_NoItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner")

	resp, err := f.service.Booking.ListOwnerBookings(ctx, owner, &request.BookingListQuery{State: "ALL"})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
	assert.Zero(t, f.bookings.findCalls)
}
