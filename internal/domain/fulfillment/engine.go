// Package fulfillment implements the order fulfillment state engine.
// It executes status transitions for sales and purchase orders, applying
// their stock and ledger side effects inside a single transaction.
package fulfillment

import (
	"context"
	"fmt"
	"time"

	"merx/internal/core/apperror"
	appcontext "merx/internal/core/context"
	"merx/internal/core/id"
	"merx/internal/core/tx"
	"merx/internal/domain/finance/voucher"
	"merx/internal/domain/orders"
	"merx/internal/domain/orders/purchase"
	"merx/internal/domain/orders/sales"
	"merx/internal/domain/registers/stock"
	"merx/pkg/logger"
)

// OrderKind tags audit records with the document type.
type OrderKind string

const (
	KindSales    OrderKind = "SALES"
	KindPurchase OrderKind = "PURCHASE"
)

// TransitionRecord is the audit trail entry written for every committed
// transition.
type TransitionRecord struct {
	OrderID     id.ID
	OrderKind   OrderKind
	OrderNumber string
	FromStatus  orders.Status
	ToStatus    orders.Status
	UserID      string
	At          time.Time
}

// AuditRecorder persists transition records. Implementations run inside the
// engine's transaction, so a failed transition leaves no trail.
type AuditRecorder interface {
	Record(ctx context.Context, rec TransitionRecord) error
}

// Engine executes order status transitions.
//
// Every transition runs as one atomic unit of work: the order row is locked,
// the move is validated against the status machine, side effects are applied,
// and the new status is persisted. Any failure rolls the whole unit back.
//
// Transitions are not idempotent. Delivering the same order twice would emit
// two vouchers, which is why the status machine rejects transitions out of
// terminal states.
type Engine struct {
	salesRepo    sales.Repository
	purchaseRepo purchase.Repository
	stock        *stock.Service
	vouchers     *voucher.Service
	audit        AuditRecorder
	txManager    tx.Manager
}

// NewEngine creates a fulfillment engine.
func NewEngine(
	salesRepo sales.Repository,
	purchaseRepo purchase.Repository,
	stockSvc *stock.Service,
	voucherSvc *voucher.Service,
	audit AuditRecorder,
	txManager tx.Manager,
) *Engine {
	return &Engine{
		salesRepo:    salesRepo,
		purchaseRepo: purchaseRepo,
		stock:        stockSvc,
		vouchers:     voucherSvc,
		audit:        audit,
		txManager:    txManager,
	}
}

// UpdateSalesStatus moves a sales order to the target status.
//
// Shipping issues every line's quantity from the order's warehouse, failing
// with INSUFFICIENT_STOCK before any balance is touched if a single line
// cannot be covered. Delivering appends one RECEIPT voucher for the order's
// stored total. Cancelling carries no side effects.
func (e *Engine) UpdateSalesStatus(ctx context.Context, orderID id.ID, target orders.Status) (*sales.SalesOrder, error) {
	var order *sales.SalesOrder

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = e.salesRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		lines, err := e.salesRepo.GetLines(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		order.Lines = lines

		from := order.Status
		if err := orders.ValidateTransition(from, target); err != nil {
			return err
		}

		switch target {
		case orders.StatusShipped:
			if err := e.shipSalesOrder(ctx, order); err != nil {
				return err
			}
		case orders.StatusDelivered:
			if err := e.deliverSalesOrder(ctx, order); err != nil {
				return err
			}
		}

		if err := e.salesRepo.UpdateStatus(ctx, orderID, target); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		order.Status = target

		return e.recordTransition(ctx, TransitionRecord{
			OrderID:     orderID,
			OrderKind:   KindSales,
			OrderNumber: order.Number,
			FromStatus:  from,
			ToStatus:    target,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sales order transition",
		"id", orderID,
		"number", order.Number,
		"status", string(target),
	)
	return order, nil
}

// shipSalesOrder issues every line from the order's warehouse. The stock
// service locks and validates all balances before the first decrement, so a
// shortage on the last line leaves every balance untouched.
func (e *Engine) shipSalesOrder(ctx context.Context, order *sales.SalesOrder) error {
	if id.IsNil(order.WarehouseID) {
		return apperror.NewNoWarehouse()
	}

	reqs := make([]stock.Requirement, 0, len(order.Lines))
	for _, line := range order.Lines {
		reqs = append(reqs, stock.Requirement{
			WarehouseID: order.WarehouseID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
		})
	}

	return e.stock.Issue(ctx, reqs)
}

// deliverSalesOrder appends the receipt voucher. The amount is the total
// stored at order creation, never re-summed from the lines.
func (e *Engine) deliverSalesOrder(ctx context.Context, order *sales.SalesOrder) error {
	v := voucher.NewVoucher(
		voucher.TypeReceipt,
		order.TotalAmount,
		fmt.Sprintf("Sales Payment for Order %s", order.Number),
	)
	orderID := order.ID
	v.OrderID = &orderID

	return e.vouchers.Append(ctx, v)
}

// UpdatePurchaseStatus moves a purchase order to the target status.
//
// Delivering receives every line's quantity into the order's warehouse,
// creating balance rows for products the warehouse has not held before.
// All other transitions carry no side effects.
func (e *Engine) UpdatePurchaseStatus(ctx context.Context, orderID id.ID, target orders.Status) (*purchase.PurchaseOrder, error) {
	var order *purchase.PurchaseOrder

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = e.purchaseRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		lines, err := e.purchaseRepo.GetLines(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		order.Lines = lines

		from := order.Status
		if err := orders.ValidateTransition(from, target); err != nil {
			return err
		}

		if target == orders.StatusDelivered {
			if err := e.deliverPurchaseOrder(ctx, order); err != nil {
				return err
			}
		}

		if err := e.purchaseRepo.UpdateStatus(ctx, orderID, target); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		order.Status = target

		return e.recordTransition(ctx, TransitionRecord{
			OrderID:     orderID,
			OrderKind:   KindPurchase,
			OrderNumber: order.Number,
			FromStatus:  from,
			ToStatus:    target,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase order transition",
		"id", orderID,
		"number", order.Number,
		"status", string(target),
	)
	return order, nil
}

func (e *Engine) deliverPurchaseOrder(ctx context.Context, order *purchase.PurchaseOrder) error {
	if id.IsNil(order.WarehouseID) {
		return apperror.NewNoWarehouse()
	}

	reqs := make([]stock.Requirement, 0, len(order.Lines))
	for _, line := range order.Lines {
		reqs = append(reqs, stock.Requirement{
			WarehouseID: order.WarehouseID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
		})
	}

	return e.stock.Receive(ctx, reqs)
}

func (e *Engine) recordTransition(ctx context.Context, rec TransitionRecord) error {
	if e.audit == nil {
		return nil
	}

	rec.At = time.Now().UTC()
	rec.UserID = appcontext.GetUserID(ctx)

	if err := e.audit.Record(ctx, rec); err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}
