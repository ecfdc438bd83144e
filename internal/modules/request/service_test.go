package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shareit/internal/domain"
	"shareit/internal/pkg/apperr"
	"shareit/internal/pkg/pagination"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, r *domain.Request) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 1
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, userID int64) ([]domain.Request, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestRepository) ListExceptRequester(ctx context.Context, userID int64, limit, offset int) ([]domain.Request, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Request), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) ListByRequestIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Item), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var fixedNow = time.Date(2030, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestService() (*Service, *MockRequestRepository, *MockItemRepository, *MockUserRepository) {
	reqs, items, users := new(MockRequestRepository), new(MockItemRepository), new(MockUserRepository)
	svc := NewService(reqs, items, users, inlineTx{}).WithClock(func() time.Time { return fixedNow })
	return svc, reqs, items, users
}

func idPtr(v int64) *int64 { return &v }

func TestService_CreateStampsServerTime(t *testing.T) {
	svc, reqs, _, users := newTestService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil)
	reqs.On("Create", ctx, mock.MatchedBy(func(r *domain.Request) bool {
		return r.Description == "need a ladder" && r.RequesterID == 1 && r.Created.Equal(fixedNow)
	})).Return(nil)

	got, err := svc.Create(ctx, 1, CreateRequestRequest{Description: "  need a ladder "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Request.ID)
	assert.Empty(t, got.Items)
	reqs.AssertExpectations(t)
}

func TestService_CreateFailures(t *testing.T) {
	svc, reqs, _, users := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateRequestRequest{Description: "   "})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)

	users.On("Exists", ctx, int64(2)).Return(false, nil)
	_, err = svc.Create(ctx, 2, CreateRequestRequest{Description: "bike"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	reqs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_FindMineGroupsItemsByRequest(t *testing.T) {
	svc, reqs, items, users := newTestService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil)
	reqs.On("ListByRequester", ctx, int64(1)).Return([]domain.Request{{ID: 8}, {ID: 3}}, nil)
	items.On("ListByRequestIDs", ctx, []int64{8, 3}).Return([]domain.Item{
		{ID: 20, RequestID: idPtr(3)},
		{ID: 21, RequestID: idPtr(8)},
		{ID: 22, RequestID: idPtr(3)},
	}, nil)

	got, err := svc.FindMine(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(8), got[0].Request.ID)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, int64(21), got[0].Items[0].ID)
	require.Len(t, got[1].Items, 2)
	assert.Equal(t, int64(20), got[1].Items[0].ID)
	assert.Equal(t, int64(22), got[1].Items[1].ID)
	items.AssertNumberOfCalls(t, "ListByRequestIDs", 1)
}

func TestService_FindOthersRoundsFromToPage(t *testing.T) {
	svc, reqs, items, users := newTestService()
	ctx := context.Background()
	page, err := pagination.New(7, 5)
	require.NoError(t, err)

	users.On("Exists", ctx, int64(1)).Return(true, nil)
	reqs.On("ListExceptRequester", ctx, int64(1), 5, 5).Return([]domain.Request{}, nil)
	items.On("ListByRequestIDs", ctx, []int64{}).Return([]domain.Item{}, nil)

	got, err := svc.FindOthers(ctx, 1, page)
	require.NoError(t, err)
	assert.Empty(t, got)
	reqs.AssertExpectations(t)
}

func TestService_GetByID(t *testing.T) {
	svc, reqs, items, users := newTestService()
	ctx := context.Background()

	users.On("Exists", ctx, int64(1)).Return(true, nil)
	users.On("Exists", ctx, int64(9)).Return(false, nil)
	reqs.On("GetByID", ctx, int64(4)).Return(&domain.Request{ID: 4, Description: "tent"}, nil)
	reqs.On("GetByID", ctx, int64(5)).Return(nil, gorm.ErrRecordNotFound)
	items.On("ListByRequestIDs", ctx, []int64{4}).Return([]domain.Item{{ID: 1, RequestID: idPtr(4)}}, nil)

	got, err := svc.GetByID(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "tent", got.Request.Description)
	assert.Len(t, got.Items, 1)

	_, err = svc.GetByID(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = svc.GetByID(ctx, 9, 4)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
