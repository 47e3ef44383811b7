package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type balanceKey struct {
	warehouseID id.ID
	productID   id.ID
}

type fakeStockRepo struct {
	balances map[balanceKey]int64
	locked   []balanceKey
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{balances: make(map[balanceKey]int64)}
}

func (r *fakeStockRepo) set(warehouseID, productID id.ID, qty int64) {
	r.balances[balanceKey{warehouseID, productID}] = qty
}

func (r *fakeStockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (Balance, error) {
	key := balanceKey{warehouseID, productID}
	qty, ok := r.balances[key]
	if !ok {
		return Balance{}, apperror.NewNotFound("stock balance", productID)
	}
	return Balance{WarehouseID: warehouseID, ProductID: productID, Quantity: qty}, nil
}

func (r *fakeStockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (Balance, error) {
	r.locked = append(r.locked, balanceKey{warehouseID, productID})
	return r.GetBalance(ctx, warehouseID, productID)
}

func (r *fakeStockRepo) Decrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	key := balanceKey{warehouseID, productID}
	qty, ok := r.balances[key]
	if !ok {
		return apperror.NewNotFound("stock balance", productID)
	}
	r.balances[key] = qty - quantity
	return nil
}

func (r *fakeStockRepo) UpsertIncrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	r.balances[balanceKey{warehouseID, productID}] += quantity
	return nil
}

func (r *fakeStockRepo) SetQuantity(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	r.balances[balanceKey{warehouseID, productID}] = quantity
	return nil
}

func (r *fakeStockRepo) List(ctx context.Context, filter BalanceFilter) ([]Balance, error) {
	return nil, nil
}

func TestCheckAvailability(t *testing.T) {
	warehouseID := id.New()
	productA := id.New()
	productB := id.New()

	t.Run("sufficient stock passes and locks every row", func(t *testing.T) {
		repo := newFakeStockRepo()
		repo.set(warehouseID, productA, 10)
		repo.set(warehouseID, productB, 5)
		svc := NewService(repo, fakeTxManager{})

		err := svc.CheckAvailability(context.Background(), []Requirement{
			{WarehouseID: warehouseID, ProductID: productA, Quantity: 10},
			{WarehouseID: warehouseID, ProductID: productB, Quantity: 3},
		})

		require.NoError(t, err)
		assert.Len(t, repo.locked, 2)
	})

	t.Run("shortage reports requested and available", func(t *testing.T) {
		repo := newFakeStockRepo()
		repo.set(warehouseID, productA, 2)
		svc := NewService(repo, fakeTxManager{})

		err := svc.CheckAvailability(context.Background(), []Requirement{
			{WarehouseID: warehouseID, ProductID: productA, ProductName: "iPhone 15 Pro", Quantity: 5},
		})

		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, int64(5), appErr.Details["required"])
		assert.Equal(t, int64(2), appErr.Details["available"])
	})

	t.Run("missing balance row counts as zero", func(t *testing.T) {
		svc := NewService(newFakeStockRepo(), fakeTxManager{})

		err := svc.CheckAvailability(context.Background(), []Requirement{
			{WarehouseID: warehouseID, ProductID: productA, Quantity: 1},
		})

		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
	})
}

func TestIssue(t *testing.T) {
	warehouseID := id.New()
	productA := id.New()
	productB := id.New()

	t.Run("decrements all balances", func(t *testing.T) {
		repo := newFakeStockRepo()
		repo.set(warehouseID, productA, 10)
		repo.set(warehouseID, productB, 4)
		svc := NewService(repo, fakeTxManager{})

		err := svc.Issue(context.Background(), []Requirement{
			{WarehouseID: warehouseID, ProductID: productA, Quantity: 7},
			{WarehouseID: warehouseID, ProductID: productB, Quantity: 4},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), repo.balances[balanceKey{warehouseID, productA}])
		assert.Equal(t, int64(0), repo.balances[balanceKey{warehouseID, productB}])
	})

	t.Run("shortage on any line leaves every balance untouched", func(t *testing.T) {
		repo := newFakeStockRepo()
		repo.set(warehouseID, productA, 10)
		repo.set(warehouseID, productB, 1)
		svc := NewService(repo, fakeTxManager{})

		err := svc.Issue(context.Background(), []Requirement{
			{WarehouseID: warehouseID, ProductID: productA, Quantity: 5},
			{WarehouseID: warehouseID, ProductID: productB, Quantity: 2},
		})

		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		assert.Equal(t, int64(10), repo.balances[balanceKey{warehouseID, productA}])
		assert.Equal(t, int64(1), repo.balances[balanceKey{warehouseID, productB}])
	})
}

func TestReceive(t *testing.T) {
	warehouseID := id.New()
	productA := id.New()
	productB := id.New()

	repo := newFakeStockRepo()
	repo.set(warehouseID, productA, 3)
	svc := NewService(repo, fakeTxManager{})

	err := svc.Receive(context.Background(), []Requirement{
		{WarehouseID: warehouseID, ProductID: productA, Quantity: 2},
		{WarehouseID: warehouseID, ProductID: productB, Quantity: 6},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.balances[balanceKey{warehouseID, productA}])
	assert.Equal(t, int64(6), repo.balances[balanceKey{warehouseID, productB}], "row created for a new product")
}

func TestAdjust(t *testing.T) {
	warehouseID := id.New()
	productID := id.New()

	t.Run("sets absolute balance", func(t *testing.T) {
		repo := newFakeStockRepo()
		repo.set(warehouseID, productID, 7)
		svc := NewService(repo, fakeTxManager{})

		err := svc.Adjust(context.Background(), warehouseID, productID, 50)

		require.NoError(t, err)
		assert.Equal(t, int64(50), repo.balances[balanceKey{warehouseID, productID}])
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		repo := newFakeStockRepo()
		svc := NewService(repo, fakeTxManager{})

		err := svc.Adjust(context.Background(), warehouseID, productID, -1)

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Empty(t, repo.balances)
	})
}
