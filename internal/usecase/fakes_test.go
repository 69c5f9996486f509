package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: %s", entity.ErrEmailTaken, user.Email)
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Item
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	found := *item
	return &found, nil
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.Item
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			found := *item
			items = append(items, &found)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	items, _ := r.FindByOwner(ctx, ownerID)
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("%w: %s", entity.ErrItemNotFound, item.ID)
	}
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

// fakeBookingRepo evaluates filters in memory the way the SQL builder does.
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*entity.Booking
	findCalls int
}

func (r *fakeBookingRepo) CreateIfNoOverlap(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.Item.ID == booking.Item.ID && existing.Overlaps(booking.Start, booking.End) {
			return fmt.Errorf("%w: item %s", entity.ErrBookingOverlap, booking.Item.ID)
		}
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	found := *booking
	return &found, nil
}

func (r *fakeBookingRepo) FindBy(_ context.Context, filter repository.BookingFilter, page *utils.Page) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++

	result := make([]*entity.Booking, 0)
	for _, booking := range r.bookings {
		if matches(booking, filter) {
			found := *booking
			result = append(result, &found)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.After(result[j].Start)
	})

	if page != nil {
		offset := page.Offset()
		if offset >= len(result) {
			return []*entity.Booking{}, nil
		}
		end := offset + page.Limit()
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}

	return result, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return fmt.Errorf("%w: booking %s", entity.ErrInvalidTransition, id)
	}
	booking.Status = to
	booking.UpdatedAt = now
	return nil
}

func (r *fakeBookingRepo) seed(booking *entity.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *booking
	r.bookings[booking.ID] = &stored
}

func matches(b *entity.Booking, f repository.BookingFilter) bool {
	if f.BookerID != nil && b.BookerID != *f.BookerID {
		return false
	}
	if f.ItemIDs != nil {
		found := false
		for _, id := range f.ItemIDs {
			if id == b.Item.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.ActiveAt != nil && (b.Start.After(*f.ActiveAt) || b.End.Before(*f.ActiveAt)) {
		return false
	}
	return true
}

type fixture struct {
	users    *fakeUserRepo
	items    *fakeItemRepo
	bookings *fakeBookingRepo
	service  *usecase.Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		items:    &fakeItemRepo{items: map[uuid.UUID]*entity.Item{}},
		bookings: &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}},
	}
	repo := &repository.Repository{User: f.users, Item: f.items, Booking: f.bookings}
	f.service = usecase.NewService(repo, func() time.Time { return testNow }, zap.NewNop())
	return f
}

func (f *fixture) addUser(name string) uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &entity.User{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: testNow},
		Name:       name,
		Email:      name + "@example.com",
	}
	return id
}

func (f *fixture) addItem(ownerID uuid.UUID, available bool) *entity.Item {
	item := &entity.Item{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Name:      "ladder",
		Available: available,
		OwnerID:   ownerID,
	}
	f.items.items[item.ID] = item
	return item
}
