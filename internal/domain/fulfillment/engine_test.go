package fulfillment

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/core/types"
	"merx/internal/domain"
	"merx/internal/domain/finance/voucher"
	"merx/internal/domain/orders"
	"merx/internal/domain/orders/purchase"
	"merx/internal/domain/orders/sales"
	"merx/internal/domain/registers/stock"
	"merx/pkg/numerator"
)

// --- fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSalesRepo struct {
	orders map[id.ID]*sales.SalesOrder
	lines  map[id.ID][]orders.Line
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{
		orders: make(map[id.ID]*sales.SalesOrder),
		lines:  make(map[id.ID][]orders.Line),
	}
}

func (r *fakeSalesRepo) put(order *sales.SalesOrder) {
	copied := *order
	r.orders[order.ID] = &copied
	r.lines[order.ID] = append([]orders.Line(nil), order.Lines...)
}

func (r *fakeSalesRepo) Create(ctx context.Context, order *sales.SalesOrder) error {
	r.put(order)
	return nil
}

func (r *fakeSalesRepo) GetByID(ctx context.Context, orderID id.ID) (*sales.SalesOrder, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("sales order", orderID)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeSalesRepo) GetByNumber(ctx context.Context, number string) (*sales.SalesOrder, error) {
	for _, order := range r.orders {
		if order.Number == number {
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("sales order", number)
}

func (r *fakeSalesRepo) Update(ctx context.Context, order *sales.SalesOrder) error {
	r.put(order)
	return nil
}

func (r *fakeSalesRepo) SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error {
	order, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("sales order", orderID)
	}
	order.DeletionMark = mark
	return nil
}

func (r *fakeSalesRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*sales.SalesOrder, error) {
	return r.GetByID(ctx, orderID)
}

func (r *fakeSalesRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	order, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("sales order", orderID)
	}
	order.Status = status
	return nil
}

func (r *fakeSalesRepo) GetLines(ctx context.Context, orderID id.ID) ([]orders.Line, error) {
	return append([]orders.Line(nil), r.lines[orderID]...), nil
}

func (r *fakeSalesRepo) SaveLines(ctx context.Context, orderID id.ID, lines []orders.Line) error {
	r.lines[orderID] = append([]orders.Line(nil), lines...)
	return nil
}

func (r *fakeSalesRepo) List(ctx context.Context, filter sales.ListFilter) (domain.ListResult[*sales.SalesOrder], error) {
	return domain.ListResult[*sales.SalesOrder]{}, nil
}

type fakePurchaseRepo struct {
	orders map[id.ID]*purchase.PurchaseOrder
	lines  map[id.ID][]orders.Line
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		orders: make(map[id.ID]*purchase.PurchaseOrder),
		lines:  make(map[id.ID][]orders.Line),
	}
}

func (r *fakePurchaseRepo) put(order *purchase.PurchaseOrder) {
	copied := *order
	r.orders[order.ID] = &copied
	r.lines[order.ID] = append([]orders.Line(nil), order.Lines...)
}

func (r *fakePurchaseRepo) Create(ctx context.Context, order *purchase.PurchaseOrder) error {
	r.put(order)
	return nil
}

func (r *fakePurchaseRepo) GetByID(ctx context.Context, orderID id.ID) (*purchase.PurchaseOrder, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("purchase order", orderID)
	}
	copied := *order
	return &copied, nil
}

func (r *fakePurchaseRepo) GetByNumber(ctx context.Context, number string) (*purchase.PurchaseOrder, error) {
	for _, order := range r.orders {
		if order.Number == number {
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("purchase order", number)
}

func (r *fakePurchaseRepo) Update(ctx context.Context, order *purchase.PurchaseOrder) error {
	r.put(order)
	return nil
}

func (r *fakePurchaseRepo) SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error {
	order, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("purchase order", orderID)
	}
	order.DeletionMark = mark
	return nil
}

func (r *fakePurchaseRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*purchase.PurchaseOrder, error) {
	return r.GetByID(ctx, orderID)
}

func (r *fakePurchaseRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	order, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("purchase order", orderID)
	}
	order.Status = status
	return nil
}

func (r *fakePurchaseRepo) GetLines(ctx context.Context, orderID id.ID) ([]orders.Line, error) {
	return append([]orders.Line(nil), r.lines[orderID]...), nil
}

func (r *fakePurchaseRepo) SaveLines(ctx context.Context, orderID id.ID, lines []orders.Line) error {
	r.lines[orderID] = append([]orders.Line(nil), lines...)
	return nil
}

func (r *fakePurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.PurchaseOrder], error) {
	return domain.ListResult[*purchase.PurchaseOrder]{}, nil
}

type balanceKey struct {
	warehouseID id.ID
	productID   id.ID
}

type fakeStockRepo struct {
	balances map[balanceKey]int64
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{balances: make(map[balanceKey]int64)}
}

func (r *fakeStockRepo) set(warehouseID, productID id.ID, qty int64) {
	r.balances[balanceKey{warehouseID, productID}] = qty
}

func (r *fakeStockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (stock.Balance, error) {
	qty, ok := r.balances[balanceKey{warehouseID, productID}]
	if !ok {
		return stock.Balance{}, apperror.NewNotFound("stock balance", productID)
	}
	return stock.Balance{WarehouseID: warehouseID, ProductID: productID, Quantity: qty}, nil
}

func (r *fakeStockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (stock.Balance, error) {
	return r.GetBalance(ctx, warehouseID, productID)
}

func (r *fakeStockRepo) Decrement(ctx context.Context, warehouseID, productID id.ID, quantity int64) error {
	r.balances[balanceKey{warehouseID, productID}] -= quantity
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

func (r *fakeStockRepo) List(ctx context.Context, filter stock.BalanceFilter) ([]stock.Balance, error) {
	return nil, nil
}

type fakeVoucherRepo struct {
	vouchers []*voucher.Voucher
}

func (r *fakeVoucherRepo) Create(ctx context.Context, v *voucher.Voucher) error {
	copied := *v
	r.vouchers = append(r.vouchers, &copied)
	return nil
}

func (r *fakeVoucherRepo) GetByID(ctx context.Context, voucherID id.ID) (*voucher.Voucher, error) {
	for _, v := range r.vouchers {
		if v.ID == voucherID {
			return v, nil
		}
	}
	return nil, apperror.NewNotFound("voucher", voucherID)
}

func (r *fakeVoucherRepo) List(ctx context.Context, filter voucher.ListFilter) (domain.ListResult[*voucher.Voucher], error) {
	return domain.ListResult[*voucher.Voucher]{}, nil
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = r.val
		}
	}
	return nil
}

type seqQuerier struct {
	mu  sync.Mutex
	val int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.val++
	return &seqRow{val: q.val}
}

type fakeAudit struct {
	records []TransitionRecord
}

func (a *fakeAudit) Record(ctx context.Context, rec TransitionRecord) error {
	a.records = append(a.records, rec)
	return nil
}

// --- fixture ---

type engineFixture struct {
	engine    *Engine
	salesRepo *fakeSalesRepo
	poRepo    *fakePurchaseRepo
	stockRepo *fakeStockRepo
	vouchers  *fakeVoucherRepo
	audit     *fakeAudit

	warehouseID id.ID
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	salesRepo := newFakeSalesRepo()
	poRepo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	voucherRepo := &fakeVoucherRepo{}
	audit := &fakeAudit{}
	txm := fakeTxManager{}

	num := numerator.New(&seqQuerier{})
	stockSvc := stock.NewService(stockRepo, txm)
	voucherSvc := voucher.NewService(voucherRepo, num, txm)

	return &engineFixture{
		engine:      NewEngine(salesRepo, poRepo, stockSvc, voucherSvc, audit, txm),
		salesRepo:   salesRepo,
		poRepo:      poRepo,
		stockRepo:   stockRepo,
		vouchers:    voucherRepo,
		audit:       audit,
		warehouseID: id.New(),
	}
}

func (f *engineFixture) salesOrder(t *testing.T, number string, items ...orders.Line) *sales.SalesOrder {
	t.Helper()

	order := sales.NewSalesOrder(id.New(), f.warehouseID)
	order.Number = number
	for _, item := range items {
		order.AddLine(item.ProductID, item.Quantity, item.UnitPrice)
		order.Lines[len(order.Lines)-1].ProductName = item.ProductName
	}
	f.salesRepo.put(order)
	return order
}

func (f *engineFixture) purchaseOrder(t *testing.T, number string, items ...orders.Line) *purchase.PurchaseOrder {
	t.Helper()

	order := purchase.NewPurchaseOrder(id.New(), f.warehouseID)
	order.Number = number
	for _, item := range items {
		order.AddLine(item.ProductID, item.Quantity, item.UnitPrice)
		order.Lines[len(order.Lines)-1].ProductName = item.ProductName
	}
	f.poRepo.put(order)
	return order
}

func item(productID id.ID, name string, qty int64, price string) orders.Line {
	return orders.Line{
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   types.MustMoney(price),
	}
}

// --- sales order transitions ---

func TestShipSalesOrder_InsufficientStock(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.salesOrder(t, "SO-2026-00001", item(productID, "Office Chair", 5, "120.00"))
	f.stockRepo.set(f.warehouseID, productID, 3)

	_, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusShipped)
	require.Error(t, err)
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "Office Chair", appErr.Details["product"])
	assert.Equal(t, int64(5), appErr.Details["required"])
	assert.Equal(t, int64(3), appErr.Details["available"])

	// nothing moved
	stored, _ := f.salesRepo.GetByID(ctx, order.ID)
	assert.Equal(t, orders.StatusPending, stored.Status)
	balance, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.Equal(t, int64(3), balance.Quantity)
}

func TestShipSalesOrder_MissingBalanceRow(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.salesOrder(t, "SO-2026-00002", item(productID, "Desk Lamp", 2, "45.00"))

	_, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusShipped)
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, int64(0), appErr.Details["available"])
}

func TestShipSalesOrder_LateShortageLeavesAllBalancesUntouched(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productA := id.New()
	productB := id.New()
	order := f.salesOrder(t, "SO-2026-00003",
		item(productA, "Notebook", 4, "3.50"),
		item(productB, "Stapler", 10, "12.00"),
	)
	f.stockRepo.set(f.warehouseID, productA, 100)
	f.stockRepo.set(f.warehouseID, productB, 9)

	_, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusShipped)
	require.True(t, apperror.IsInsufficientStock(err))

	balanceA, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productA)
	balanceB, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productB)
	assert.Equal(t, int64(100), balanceA.Quantity, "first line must not be decremented when a later line fails")
	assert.Equal(t, int64(9), balanceB.Quantity)
}

func TestShipThenDeliverSalesOrder(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.salesOrder(t, "SO-2026-00004", item(productID, "Office Chair", 5, "120.00"))
	f.stockRepo.set(f.warehouseID, productID, 10)

	shipped, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusShipped, shipped.Status)

	balance, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.Equal(t, int64(5), balance.Quantity)
	assert.Empty(t, f.vouchers.vouchers, "shipping must not touch the ledger")

	delivered, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusDelivered, delivered.Status)

	require.Len(t, f.vouchers.vouchers, 1)
	v := f.vouchers.vouchers[0]
	assert.Equal(t, voucher.TypeReceipt, v.Type)
	assert.True(t, v.Amount.Equal(types.MustMoney("600.00")), "voucher amount must be the stored total")
	assert.Equal(t, "Sales Payment for Order SO-2026-00004", v.Description)
	require.NotNil(t, v.OrderID)
	assert.Equal(t, order.ID, *v.OrderID)
	assert.NotEmpty(t, v.Number)

	// balance unchanged by delivery
	balance, _ = f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.Equal(t, int64(5), balance.Quantity)
}

func TestDeliverSalesOrder_TerminalStateBlocksRepeat(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.salesOrder(t, "SO-2026-00005", item(productID, "Monitor", 1, "250.00"))

	_, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusDelivered)
	require.NoError(t, err)
	require.Len(t, f.vouchers.vouchers, 1)

	_, err = f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusDelivered)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)

	assert.Len(t, f.vouchers.vouchers, 1, "repeat delivery must not duplicate the voucher")
}

func TestCancelSalesOrder_NoSideEffects(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.salesOrder(t, "SO-2026-00006", item(productID, "Keyboard", 3, "30.00"))
	f.stockRepo.set(f.warehouseID, productID, 50)

	cancelled, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusCancelled, cancelled.Status)

	balance, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.Equal(t, int64(50), balance.Quantity)
	assert.Empty(t, f.vouchers.vouchers)
}

func TestUpdateSalesStatus_OrderNotFound(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.UpdateSalesStatus(context.Background(), id.New(), orders.StatusShipped)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateSalesStatus_AuditTrail(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.salesOrder(t, "SO-2026-00007", item(productID, "Webcam", 1, "80.00"))
	f.stockRepo.set(f.warehouseID, productID, 1)

	_, err := f.engine.UpdateSalesStatus(ctx, order.ID, orders.StatusShipped)
	require.NoError(t, err)

	require.Len(t, f.audit.records, 1)
	rec := f.audit.records[0]
	assert.Equal(t, KindSales, rec.OrderKind)
	assert.Equal(t, order.ID, rec.OrderID)
	assert.Equal(t, "SO-2026-00007", rec.OrderNumber)
	assert.Equal(t, orders.StatusPending, rec.FromStatus)
	assert.Equal(t, orders.StatusShipped, rec.ToStatus)
	assert.False(t, rec.At.IsZero())
}

// --- purchase order transitions ---

func TestDeliverPurchaseOrder_CreatesBalanceRow(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.purchaseOrder(t, "PO-2026-00001", item(productID, "Printer Paper", 20, "4.00"))

	delivered, err := f.engine.UpdatePurchaseStatus(ctx, order.ID, orders.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusDelivered, delivered.Status)

	balance, err := f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance.Quantity)
	assert.Empty(t, f.vouchers.vouchers, "purchase delivery must not touch the ledger")
}

func TestDeliverPurchaseOrder_IncrementsExistingBalance(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.purchaseOrder(t, "PO-2026-00002", item(productID, "Toner", 5, "60.00"))
	f.stockRepo.set(f.warehouseID, productID, 7)

	_, err := f.engine.UpdatePurchaseStatus(ctx, order.ID, orders.StatusDelivered)
	require.NoError(t, err)

	balance, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.Equal(t, int64(12), balance.Quantity)
}

func TestShipPurchaseOrder_PassThrough(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.purchaseOrder(t, "PO-2026-00003", item(productID, "Cables", 30, "2.50"))

	shipped, err := f.engine.UpdatePurchaseStatus(ctx, order.ID, orders.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusShipped, shipped.Status)

	_, err = f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.True(t, apperror.IsNotFound(err), "shipping a purchase order must not create stock")
}

func TestDeliverPurchaseOrder_TerminalStateBlocksRepeat(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	productID := id.New()
	order := f.purchaseOrder(t, "PO-2026-00004", item(productID, "Toner", 5, "60.00"))

	_, err := f.engine.UpdatePurchaseStatus(ctx, order.ID, orders.StatusDelivered)
	require.NoError(t, err)

	_, err = f.engine.UpdatePurchaseStatus(ctx, order.ID, orders.StatusDelivered)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)

	balance, _ := f.stockRepo.GetBalance(ctx, f.warehouseID, productID)
	assert.Equal(t, int64(5), balance.Quantity, "repeat delivery must not double the increment")
}

func TestUpdatePurchaseStatus_OrderNotFound(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.UpdatePurchaseStatus(context.Background(), id.New(), orders.StatusDelivered)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
