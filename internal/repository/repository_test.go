package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shareit/internal/database/dbtest"
	"shareit/internal/domain"
	"shareit/internal/repository"
)

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	items    *repository.ItemRepository
	requests *repository.RequestRepository
	bookings *repository.BookingRepository
	comments *repository.CommentRepository
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	return &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		items:    repository.NewItemRepository(db),
		requests: repository.NewRequestRepository(db),
		bookings: repository.NewBookingRepository(db),
		comments: repository.NewCommentRepository(db),
	}
}

func (f *fixture) user(t *testing.T, name string) *domain.User {
	u := &domain.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) item(t *testing.T, ownerID int64, desc string, available bool) *domain.Item {
	it := &domain.Item{Name: "item", Description: desc, Available: available, OwnerID: ownerID}
	require.NoError(t, f.items.Create(context.Background(), it))
	return it
}

func (f *fixture) booking(t *testing.T, itemID, bookerID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func ids(bookings []domain.Booking) []int64 {
	out := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestItemRepository_SearchMatchesDescriptionOfAvailableItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")

	drill := f.item(t, owner.ID, "Cordless DRILL with battery", true)
	f.item(t, owner.ID, "drill, broken", false)
	f.item(t, owner.ID, "hammer", true)
	percent := f.item(t, owner.ID, "100% cotton tent", true)

	got, err := f.items.Search(ctx, "dRiLl", 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, drill.ID, got[0].ID)

	got, err = f.items.Search(ctx, "%", 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, percent.ID, got[0].ID)
}

func TestItemRepository_SearchFoldsNonASCIICase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")

	drill := f.item(t, owner.ID, "Аккумуляторная Дрель", true)
	f.item(t, owner.ID, "Палатка", true)

	for _, text := range []string{"дрель", "ДРЕЛЬ", "аккумуляторная др"} {
		got, err := f.items.Search(ctx, text, 20, 0)
		require.NoError(t, err)
		require.Len(t, got, 1, text)
		assert.Equal(t, drill.ID, got[0].ID)
	}
}

func TestBookingRepository_StateFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	booker := f.user(t, "booker")
	it := f.item(t, owner.ID, "tent", true)

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	past := f.booking(t, it.ID, booker.ID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), domain.BookingApproved)
	current := f.booking(t, it.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), domain.BookingApproved)
	future := f.booking(t, it.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), domain.BookingWaiting)
	rejected := f.booking(t, it.ID, booker.ID, now.Add(72*time.Hour), now.Add(96*time.Hour), domain.BookingRejected)

	cases := []struct {
		state domain.State
		want  []int64
	}{
		{domain.StateAll, []int64{rejected.ID, future.ID, current.ID, past.ID}},
		{domain.StateCurrent, []int64{current.ID}},
		{domain.StatePast, []int64{past.ID}},
		{domain.StateFuture, []int64{rejected.ID, future.ID}},
		{domain.StateWaiting, []int64{future.ID}},
		{domain.StateRejected, []int64{rejected.ID}},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			got, err := f.bookings.ListByBooker(ctx, booker.ID, tc.state, now, 20, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))

			got, err = f.bookings.ListByOwner(ctx, owner.ID, tc.state, now, 20, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	none, err := f.bookings.ListByOwner(ctx, booker.ID, domain.StateAll, now, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookingRepository_GetByIDPreloadsAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	booker := f.user(t, "booker")
	it := f.item(t, owner.ID, "kayak", true)
	start := time.Date(2031, 1, 1, 10, 0, 0, 0, time.UTC)
	b := f.booking(t, it.ID, booker.ID, start, start.Add(time.Hour), domain.BookingWaiting)

	got, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Item)
	require.NotNil(t, got.Booker)
	assert.Equal(t, "kayak", got.Item.Description)
	assert.Equal(t, "booker", got.Booker.Name)
	assert.True(t, start.Equal(got.Start))

	require.NoError(t, f.bookings.UpdateStatus(ctx, b.ID, domain.BookingApproved))
	got, err = f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, got.Status)
}

func TestBookingRepository_HasFinishedApproved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	booker := f.user(t, "booker")
	it := f.item(t, owner.ID, "saw", true)
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	f.booking(t, it.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), domain.BookingRejected)
	ok, err := f.bookings.HasFinishedApproved(ctx, it.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	f.booking(t, it.ID, booker.ID, now.Add(-2*time.Hour), now.Add(time.Hour), domain.BookingApproved)
	ok, err = f.bookings.HasFinishedApproved(ctx, it.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	f.booking(t, it.ID, booker.ID, now.Add(-4*time.Hour), now.Add(-3*time.Hour), domain.BookingApproved)
	ok, err = f.bookings.HasFinishedApproved(ctx, it.ID, booker.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequestRepository_Listings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	first := &domain.Request{Description: "ladder", RequesterID: alice.ID, Created: base}
	second := &domain.Request{Description: "tent", RequesterID: alice.ID, Created: base.Add(time.Hour)}
	other := &domain.Request{Description: "bike", RequesterID: bob.ID, Created: base.Add(2 * time.Hour)}
	for _, r := range []*domain.Request{first, second, other} {
		require.NoError(t, f.requests.Create(ctx, r))
	}

	mine, err := f.requests.ListByRequester(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	others, err := f.requests.ListExceptRequester(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, other.ID, others[0].ID)

	exists, err := f.requests.Exists(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	when := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	aliceItem := f.item(t, alice.ID, "drill", true)
	bobItem := f.item(t, bob.ID, "tent", true)
	f.booking(t, aliceItem.ID, bob.ID, when, when.Add(time.Hour), domain.BookingApproved)
	f.booking(t, bobItem.ID, alice.ID, when, when.Add(time.Hour), domain.BookingApproved)
	require.NoError(t, f.comments.Create(ctx, &domain.Comment{Text: "nice", ItemID: bobItem.ID, AuthorID: alice.ID, Created: when}))
	require.NoError(t, f.comments.Create(ctx, &domain.Comment{Text: "ok", ItemID: aliceItem.ID, AuthorID: bob.ID, Created: when}))

	req := &domain.Request{Description: "need a ladder", RequesterID: alice.ID, Created: when}
	require.NoError(t, f.requests.Create(ctx, req))
	answer := &domain.Item{Name: "ladder", Description: "ladder", Available: true, OwnerID: bob.ID, RequestID: &req.ID}
	require.NoError(t, f.items.Create(ctx, answer))

	require.NoError(t, f.users.Delete(ctx, alice.ID))

	exists, err := f.users.Exists(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = f.items.GetByID(ctx, aliceItem.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	kept, err := f.items.GetByID(ctx, answer.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.RequestID)

	var bookings, comments, requests int64
	require.NoError(t, f.db.Model(&domain.Booking{}).Count(&bookings).Error)
	require.NoError(t, f.db.Model(&domain.Comment{}).Count(&comments).Error)
	require.NoError(t, f.db.Model(&domain.Request{}).Count(&requests).Error)
	assert.Zero(t, bookings)
	assert.Zero(t, comments)
	assert.Zero(t, requests)

	// the email is free again
	require.NoError(t, f.users.Create(ctx, &domain.User{Name: "alice", Email: "alice@example.com"}))
}

func TestCommentRepository_ListByItemIDsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	author := f.user(t, "author")
	it := f.item(t, owner.ID, "bike", true)
	when := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	older := &domain.Comment{Text: "first", ItemID: it.ID, AuthorID: author.ID, Created: when}
	newer := &domain.Comment{Text: "second", ItemID: it.ID, AuthorID: author.ID, Created: when.Add(time.Minute)}
	require.NoError(t, f.comments.Create(ctx, older))
	require.NoError(t, f.comments.Create(ctx, newer))

	got, err := f.comments.ListByItemIDs(ctx, []int64{it.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "author", got[0].Author.Name)

	empty, err := f.comments.ListByItemIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBookingRepository_FiltersIgnoreCallerZone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	booker := f.user(t, "booker")
	it := f.item(t, owner.ID, "kayak", true)

	almaty := time.FixedZone("ALMT", 5*60*60)
	now := time.Date(2030, 6, 1, 17, 0, 0, 0, almaty)
	current := f.booking(t, it.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), domain.BookingApproved)
	finished := f.booking(t, it.ID, booker.ID, now.Add(-5*time.Hour), now.Add(-4*time.Hour), domain.BookingApproved)

	got, err := f.bookings.ListByBooker(ctx, booker.ID, domain.StateCurrent, now, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{current.ID}, ids(got))

	got, err = f.bookings.ListByOwner(ctx, owner.ID, domain.StatePast, now.UTC(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{finished.ID}, ids(got))

	ok, err := f.bookings.HasFinishedApproved(ctx, it.ID, booker.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)
}
