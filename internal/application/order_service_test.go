package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/order"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockOrderRepository implements order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, tx transaction.Tx, o *order.Order) error {
	args := m.Called(ctx, tx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// MockFlightRepository implements flight.Repository
type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, f *flight.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*flight.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flight.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetDetail(ctx context.Context, id string) (*flight.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flight.Detail), args.Error(1)
}

func (m *MockFlightRepository) GetGeometry(ctx context.Context, id string) (*flight.Geometry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flight.Geometry), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context, filter flight.Filter, limit, offset int) ([]*flight.Summary, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*flight.Summary), args.Error(1)
}

func (m *MockFlightRepository) CountAvailable(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) ListOversold(ctx context.Context) ([]*flight.Oversold, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*flight.Oversold), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, f *flight.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// === Test helper ===
type orderTestDeps struct {
	txManager  *MockTxManager
	tx         *MockTx
	orderRepo  *MockOrderRepository
	flightRepo *MockFlightRepository
	service    *OrderService
}

func newOrderTestDeps() *orderTestDeps {
	txm := new(MockTxManager)
	tx := new(MockTx)
	orderRepo := new(MockOrderRepository)
	flightRepo := new(MockFlightRepository)

	service := NewOrderService(txm, orderRepo, flightRepo, nil)

	return &orderTestDeps{
		txManager:  txm,
		tx:         tx,
		orderRepo:  orderRepo,
		flightRepo: flightRepo,
		service:    service,
	}
}

var testActor = user.Actor{UserID: "user-1", Role: user.RoleUser}

// === Tests ===

func TestOrderService_CreateOrder_Success(t *testing.T) {
	deps := newOrderTestDeps()
	ctx := context.Background()

	input := CreateOrderInput{
		Tickets: []order.CandidateTicket{
			{FlightID: "flight-1", Row: 1, Seat: 1},
			{FlightID: "flight-1", Row: 15, Seat: 20},
		},
	}

	geometry := &flight.Geometry{FlightID: "flight-1", Rows: 15, SeatsInRow: 20}
	// 同一フライトの座席格子は1回だけ取得する
	deps.flightRepo.On("GetGeometry", ctx, "flight-1").Return(geometry, nil).Once()

	deps.txManager.On("Begin", ctx).Return(deps.tx, nil)
	deps.tx.On("Rollback").Return(nil)
	deps.tx.On("Commit").Return(nil)
	deps.orderRepo.On("Create", ctx, deps.tx, mock.AnythingOfType("*order.Order")).Return(nil)

	result, err := deps.service.CreateOrder(ctx, testActor, input)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "user-1", result.UserID)
	require.Len(t, result.Tickets, 2)
	assert.Equal(t, 1, result.Tickets[0].Row)
	assert.Equal(t, 20, result.Tickets[1].Seat)

	deps.txManager.AssertExpectations(t)
	deps.orderRepo.AssertExpectations(t)
	deps.flightRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_EmptyOrder(t *testing.T) {
	deps := newOrderTestDeps()
	ctx := context.Background()

	result, err := deps.service.CreateOrder(ctx, testActor, CreateOrderInput{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, order.ErrEmptyOrder))
	deps.flightRepo.AssertNotCalled(t, "GetGeometry")
	deps.txManager.AssertNotCalled(t, "Begin")
}

func TestOrderService_CreateOrder_FlightNotFound(t *testing.T) {
	deps := newOrderTestDeps()
	ctx := context.Background()

	input := CreateOrderInput{
		Tickets: []order.CandidateTicket{
			{FlightID: "nonexistent", Row: 1, Seat: 1},
		},
	}
	deps.flightRepo.On("GetGeometry", ctx, "nonexistent").Return(nil, flight.ErrFlightNotFound)

	result, err := deps.service.CreateOrder(ctx, testActor, input)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, flight.ErrFlightNotFound))
	deps.txManager.AssertNotCalled(t, "Begin")
}

func TestOrderService_CreateOrder_OutOfBounds(t *testing.T) {
	deps := newOrderTestDeps()
	ctx := context.Background()

	geometry := &flight.Geometry{FlightID: "flight-1", Rows: 15, SeatsInRow: 20}
	deps.flightRepo.On("GetGeometry", ctx, "flight-1").Return(geometry, nil)

	t.Run("行番号が範囲外", func(t *testing.T) {
		input := CreateOrderInput{
			Tickets: []order.CandidateTicket{
				{FlightID: "flight-1", Row: 16, Seat: 1},
			},
		}

		result, err := deps.service.CreateOrder(ctx, testActor, input)

		require.Error(t, err)
		assert.Nil(t, result)
		var boundsErr *order.BoundsError
		require.True(t, errors.As(err, &boundsErr))
		assert.Equal(t, "row", boundsErr.Field)
		assert.Equal(t, 15, boundsErr.Max)
	})

	t.Run("席番号が範囲外", func(t *testing.T) {
		input := CreateOrderInput{
			Tickets: []order.CandidateTicket{
				{FlightID: "flight-1", Row: 1, Seat: 0},
			},
		}

		result, err := deps.service.CreateOrder(ctx, testActor, input)

		require.Error(t, err)
		assert.Nil(t, result)
		var boundsErr *order.BoundsError
		require.True(t, errors.As(err, &boundsErr))
		assert.Equal(t, "seat", boundsErr.Field)
	})

	t.Run("1枚でも範囲外なら永続化は行わない", func(t *testing.T) {
		input := CreateOrderInput{
			Tickets: []order.CandidateTicket{
				{FlightID: "flight-1", Row: 1, Seat: 1},
				{FlightID: "flight-1", Row: 999, Seat: 1},
			},
		}

		result, err := deps.service.CreateOrder(ctx, testActor, input)

		require.Error(t, err)
		assert.Nil(t, result)
		deps.txManager.AssertNotCalled(t, "Begin")
		deps.orderRepo.AssertNotCalled(t, "Create")
	})
}

func TestOrderService_CreateOrder_SeatTaken(t *testing.T) {
	deps := newOrderTestDeps()
	ctx := context.Background()

	input := CreateOrderInput{
		Tickets: []order.CandidateTicket{
			{FlightID: "flight-1", Row: 3, Seat: 7},
		},
	}

	geometry := &flight.Geometry{FlightID: "flight-1", Rows: 15, SeatsInRow: 20}
	deps.flightRepo.On("GetGeometry", ctx, "flight-1").Return(geometry, nil)

	deps.txManager.On("Begin", ctx).Return(deps.tx, nil)
	deps.tx.On("Rollback").Return(nil)
	// 複合ユニーク制約違反。注文全体がロールバックされる
	deps.orderRepo.On("Create", ctx, deps.tx, mock.AnythingOfType("*order.Order")).Return(order.ErrSeatTaken)

	result, err := deps.service.CreateOrder(ctx, testActor, input)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, order.ErrSeatTaken))
	deps.tx.AssertNotCalled(t, "Commit")
	deps.tx.AssertCalled(t, "Rollback")
}

func TestOrderService_CreateOrder_TransactionErrors(t *testing.T) {
	t.Run("Begin失敗", func(t *testing.T) {
		deps := newOrderTestDeps()
		ctx := context.Background()

		input := CreateOrderInput{
			Tickets: []order.CandidateTicket{
				{FlightID: "flight-1", Row: 1, Seat: 1},
			},
		}

		geometry := &flight.Geometry{FlightID: "flight-1", Rows: 15, SeatsInRow: 20}
		deps.flightRepo.On("GetGeometry", ctx, "flight-1").Return(geometry, nil)
		deps.txManager.On("Begin", ctx).Return(nil, errors.New("db connection failed"))

		result, err := deps.service.CreateOrder(ctx, testActor, input)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "トランザクション開始に失敗")
	})

	t.Run("Commit失敗", func(t *testing.T) {
		deps := newOrderTestDeps()
		ctx := context.Background()

		input := CreateOrderInput{
			Tickets: []order.CandidateTicket{
				{FlightID: "flight-1", Row: 1, Seat: 1},
			},
		}

		geometry := &flight.Geometry{FlightID: "flight-1", Rows: 15, SeatsInRow: 20}
		deps.flightRepo.On("GetGeometry", ctx, "flight-1").Return(geometry, nil)
		deps.txManager.On("Begin", ctx).Return(deps.tx, nil)
		deps.tx.On("Rollback").Return(nil)
		deps.tx.On("Commit").Return(errors.New("commit failed"))
		deps.orderRepo.On("Create", ctx, deps.tx, mock.AnythingOfType("*order.Order")).Return(nil)

		result, err := deps.service.CreateOrder(ctx, testActor, input)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "コミットに失敗")
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	stored := &order.Order{
		ID:     "order-1",
		UserID: "user-1",
		Tickets: []order.Ticket{
			{ID: "ticket-1", FlightID: "flight-1", Row: 1, Seat: 1},
		},
		CreatedAt: time.Now(),
	}

	t.Run("所有者は参照できる", func(t *testing.T) {
		deps := newOrderTestDeps()
		deps.orderRepo.On("GetByID", ctx, "order-1").Return(stored, nil)

		result, err := deps.service.GetOrder(ctx, testActor, "order-1")

		require.NoError(t, err)
		assert.Equal(t, stored, result)
	})

	t.Run("他人の注文はErrNotOwnerを返す", func(t *testing.T) {
		deps := newOrderTestDeps()
		deps.orderRepo.On("GetByID", ctx, "order-1").Return(stored, nil)

		other := user.Actor{UserID: "user-2", Role: user.RoleUser}
		result, err := deps.service.GetOrder(ctx, other, "order-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, order.ErrNotOwner))
	})

	t.Run("管理者は他人の注文も参照できる", func(t *testing.T) {
		deps := newOrderTestDeps()
		deps.orderRepo.On("GetByID", ctx, "order-1").Return(stored, nil)

		admin := user.Actor{UserID: "admin-1", Role: user.RoleAdmin}
		result, err := deps.service.GetOrder(ctx, admin, "order-1")

		require.NoError(t, err)
		assert.Equal(t, stored, result)
	})

	t.Run("注文が見つからない", func(t *testing.T) {
		deps := newOrderTestDeps()
		deps.orderRepo.On("GetByID", ctx, "nonexistent").Return(nil, order.ErrOrderNotFound)

		result, err := deps.service.GetOrder(ctx, testActor, "nonexistent")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, order.ErrOrderNotFound))
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("一般ユーザーは自分の注文のみ取得する", func(t *testing.T) {
		deps := newOrderTestDeps()
		expected := []*order.Order{{ID: "order-1", UserID: "user-1"}}
		deps.orderRepo.On("ListByUser", ctx, "user-1", 20, 0).Return(expected, nil)

		result, err := deps.service.ListOrders(ctx, testActor, 0, 0)

		require.NoError(t, err)
		assert.Len(t, result, 1)
		deps.orderRepo.AssertNotCalled(t, "List")
	})

	t.Run("管理者は全注文を取得する", func(t *testing.T) {
		deps := newOrderTestDeps()
		expected := []*order.Order{
			{ID: "order-1", UserID: "user-1"},
			{ID: "order-2", UserID: "user-2"},
		}
		deps.orderRepo.On("List", ctx, 20, 0).Return(expected, nil)

		admin := user.Actor{UserID: "admin-1", Role: user.RoleAdmin}
		result, err := deps.service.ListOrders(ctx, admin, 0, 0)

		require.NoError(t, err)
		assert.Len(t, result, 2)
		deps.orderRepo.AssertNotCalled(t, "ListByUser")
	})

	t.Run("limitは上限100に丸める", func(t *testing.T) {
		deps := newOrderTestDeps()
		deps.orderRepo.On("ListByUser", ctx, "user-1", 100, 0).Return([]*order.Order{}, nil)

		_, err := deps.service.ListOrders(ctx, testActor, 500, 0)

		require.NoError(t, err)
		deps.orderRepo.AssertExpectations(t)
	})
}
