package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-artstore/internal/common/clientprotocol"
	"go-artstore/internal/orderstatus/data"
	"go-artstore/internal/orderstatus/reconciler"
	"go-artstore/pkg/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	TrackingTimeout time.Duration
}

// Orders builds the customer-facing order views. It holds collaborators only;
// everything computed for a request lives in that request.
type Orders struct {
	cfg                Config
	transactionManager TransactionManager
	orderRepository    OrderRepository
	trackingClient     TrackingClient
	logger             *logging.ZapLogger
}

func NewOrders(
	cfg Config,
	transactionManager TransactionManager,
	orderRepository OrderRepository,
	trackingClient TrackingClient,
	logger *logging.ZapLogger,
) *Orders {
	return &Orders{
		cfg:                cfg,
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
		trackingClient:     trackingClient,
		logger:             logger,
	}
}

func (o *Orders) GetOrderTracking(
	ctx context.Context,
	customerID string,
	orderID uuid.UUID,
) (clientprotocol.OrderTracking, error) {
	order, err := o.fetchOrder(ctx, customerID, orderID)
	if err != nil {
		return clientprotocol.OrderTracking{}, err
	}
	rec := o.reconcile(ctx, order)
	return clientprotocol.OrderTracking{
		Order:    convertOrder(order),
		Progress: convertProgress(order.Status),
		Tracking: convertTracking(rec),
	}, nil
}

// RefreshTracking recomputes progress and timeline from a fresh order read and
// a fresh carrier query. Nothing from earlier calls is reused.
func (o *Orders) RefreshTracking(
	ctx context.Context,
	customerID string,
	orderID uuid.UUID,
) (clientprotocol.TrackingRefresh, error) {
	order, err := o.fetchOrder(ctx, customerID, orderID)
	if err != nil {
		return clientprotocol.TrackingRefresh{}, err
	}
	rec := o.reconcile(ctx, order)
	return clientprotocol.TrackingRefresh{
		Progress: convertProgress(order.Status),
		Tracking: convertTracking(rec),
	}, nil
}

// GetCustomerOrders lists orders newest first with their progress. The carrier
// is never queried for the list view.
func (o *Orders) GetCustomerOrders(ctx context.Context, customerID string) ([]clientprotocol.OrderSummary, error) {
	orders, err := o.orderRepository.GetCustomerOrders(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("error getting customer orders: %w", err)
	}
	res := make([]clientprotocol.OrderSummary, len(orders))
	for i, order := range orders {
		res[i] = convertSummary(order)
	}
	return res, nil
}

func (o *Orders) fetchOrder(ctx context.Context, customerID string, orderID uuid.UUID) (data.Order, error) {
	var order data.Order
	err := o.transactionManager.DoWithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		order, err = o.orderRepository.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			return data.Order{}, ErrOrderNotFound
		default:
			return data.Order{}, fmt.Errorf("error getting order: %w", err)
		}
	}
	if order.CustomerID != customerID {
		o.logger.WarnCtx(ctx, "order requested by another customer", zap.String("orderID", orderID.String()))
		return data.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (o *Orders) reconcile(ctx context.Context, order data.Order) reconciler.Reconciliation {
	trackingNumber, ok := order.TrackingNumber()
	if !ok {
		return reconciler.Reconcile(order, nil)
	}

	trackingCtx := ctx
	if o.cfg.TrackingTimeout > 0 {
		var cancel context.CancelFunc
		trackingCtx, cancel = context.WithTimeout(ctx, o.cfg.TrackingTimeout)
		defer cancel()
	}

	var result *reconciler.TrackingResult
	snapshot, err := o.trackingClient.GetTracking(trackingCtx, trackingNumber)
	if err != nil {
		o.logger.WarnCtx(ctx, "tracking fetch failed", zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		result = reconciler.Failed(err)
	} else {
		result = reconciler.Succeeded(snapshot)
	}

	rec := reconciler.Reconcile(order, result)
	o.logger.DebugCtx(
		ctx,
		"tracking reconciled",
		zap.String("orderNumber", order.OrderNumber),
		zap.Stringer("orderStatus", order.Status),
		zap.Stringer("trackingState", rec.State),
		zap.Int("events", len(rec.Timeline.Events)),
	)
	return rec
}
