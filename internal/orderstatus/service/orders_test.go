package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-artstore/internal/common/carrierprotocol"
	"go-artstore/internal/common/clientprotocol"
	"go-artstore/internal/orderstatus/carrier"
	"go-artstore/internal/orderstatus/data"
	"go-artstore/internal/orderstatus/lifecycle"
	"go-artstore/pkg/logging"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeTransactionManager struct {
	calls int
}

func (tm *fakeTransactionManager) DoWithSnapshot(ctx context.Context, f func(ctx context.Context) error) error {
	tm.calls++
	return f(ctx)
}

type fakeRepository struct {
	orders    map[uuid.UUID]data.Order
	summaries []data.OrderSummary
	err       error
}

func (r *fakeRepository) GetOrder(_ context.Context, orderID uuid.UUID) (data.Order, error) {
	if r.err != nil {
		return data.Order{}, r.err
	}
	order, ok := r.orders[orderID]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	return order, nil
}

func (r *fakeRepository) GetCustomerOrders(_ context.Context, _ string) ([]data.OrderSummary, error) {
	return r.summaries, r.err
}

type fakeTrackingClient struct {
	snapshot    carrierprotocol.TrackingSnapshot
	err         error
	calls       int
	lastNumber  string
	hadDeadline bool
}

func (c *fakeTrackingClient) GetTracking(ctx context.Context, trackingNumber string) (carrierprotocol.TrackingSnapshot, error) {
	c.calls++
	c.lastNumber = trackingNumber
	_, c.hadDeadline = ctx.Deadline()
	return c.snapshot, c.err
}

const customerID = "customer-7"

var (
	orderID   = uuid.MustParse("9d2b6f1e-8c1a-4a55-b6f3-6e0c2d1f7a44")
	createdAt = time.Date(2026, time.June, 1, 15, 4, 5, 0, time.UTC)
)

func newOrder(status lifecycle.Status, trackingNumber string) data.Order {
	order := data.Order{
		ID:            orderID,
		OrderNumber:   "ART-3100",
		CustomerID:    customerID,
		Status:        status,
		PaymentStatus: lifecycle.PaymentPaid,
		Items: []data.Item{
			{Title: "Quiet Field, watercolour", Quantity: 1, UnitPrice: decimal.RequireFromString("340.00")},
		},
		Subtotal:     decimal.RequireFromString("340.00"),
		ShippingCost: decimal.RequireFromString("20.00"),
		Total:        decimal.RequireFromString("360.00"),
		CreatedAt:    createdAt,
	}
	if trackingNumber != "" {
		order.Shipment = &data.Shipment{TrackingNumber: trackingNumber, ServiceType: "express"}
	}
	return order
}

func newService(order data.Order, client *fakeTrackingClient) (*Orders, *fakeTransactionManager) {
	tm := &fakeTransactionManager{}
	repo := &fakeRepository{orders: map[uuid.UUID]data.Order{order.ID: order}}
	svc := NewOrders(
		Config{TrackingTimeout: time.Second},
		tm,
		repo,
		client,
		logging.NewFromZap(zap.NewNop()),
	)
	return svc, tm
}

func TestGetOrderTracking(t *testing.T) {
	t.Run("pending order without shipment never calls the carrier", func(t *testing.T) {
		client := &fakeTrackingClient{}
		svc, tm := newService(newOrder(lifecycle.Pending, ""), client)

		res, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

		require.NoError(t, err)
		assert.Equal(t, 0, client.calls)
		assert.Equal(t, 1, tm.calls)
		require.NotNil(t, res.Progress)
		assert.Equal(t, -1, res.Progress.CurrentIndex)
		assert.InDelta(t, 0, res.Progress.CompletionFraction, 1e-9)
		assert.Equal(t, clientprotocol.AwaitingShipment, res.Tracking.State)
		assert.NotNil(t, res.Tracking.Events)
		assert.Empty(t, res.Tracking.Events)
		assert.Nil(t, res.Order.Shipment)
		assert.Equal(t, "pending", res.Order.Status)
	})

	t.Run("delivered order shows carrier events verbatim and full progress", func(t *testing.T) {
		events := []carrierprotocol.Event{
			{Timestamp: createdAt.Add(50 * time.Hour), Status: "Delivered", Location: "Ghent, BE"},
			{Timestamp: createdAt.Add(30 * time.Hour), Status: "In transit"},
			{Timestamp: createdAt.Add(10 * time.Hour), Status: "Picked up", Description: "Shipment picked up"},
		}
		client := &fakeTrackingClient{snapshot: carrierprotocol.TrackingSnapshot{Status: "Delivered", Events: events}}
		svc, _ := newService(newOrder(lifecycle.Delivered, "1ZART"), client)

		res, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

		require.NoError(t, err)
		assert.Equal(t, 1, client.calls)
		assert.Equal(t, "1ZART", client.lastNumber)
		assert.True(t, client.hadDeadline)
		require.NotNil(t, res.Progress)
		assert.Equal(t, 3, res.Progress.CurrentIndex)
		assert.InDelta(t, 1, res.Progress.CompletionFraction, 1e-9)
		require.Len(t, res.Tracking.Events, 3)
		for i, e := range events {
			assert.Equal(t, e.Timestamp, res.Tracking.Events[i].Timestamp)
			assert.Equal(t, e.Status, res.Tracking.Events[i].Status)
			assert.Equal(t, e.Location, res.Tracking.Events[i].Location)
			assert.Equal(t, e.Description, res.Tracking.Events[i].Description)
		}
		assert.Equal(t, "Delivered", res.Tracking.CarrierStatus)
		assert.Nil(t, res.Tracking.Error)
	})

	t.Run("confirmed order with carrier outage shows the placeholder", func(t *testing.T) {
		client := &fakeTrackingClient{err: carrier.ErrNetwork}
		svc, _ := newService(newOrder(lifecycle.Confirmed, "1ZART"), client)

		res, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

		require.NoError(t, err)
		require.Len(t, res.Tracking.Events, 1)
		assert.Equal(t, createdAt, res.Tracking.Events[0].Timestamp)
		assert.Equal(t, "Order Confirmed", res.Tracking.Events[0].Status)
		assert.Equal(t, "Label Not Created", res.Tracking.CarrierStatus)
		assert.Equal(t, clientprotocol.LabelNotCreated, res.Tracking.State)
		assert.Nil(t, res.Tracking.Error)
	})

	t.Run("shipped order with carrier outage reports a retryable error", func(t *testing.T) {
		client := &fakeTrackingClient{err: carrier.ErrCarrier}
		svc, _ := newService(newOrder(lifecycle.Shipped, "1ZART"), client)

		res, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

		require.NoError(t, err)
		assert.Empty(t, res.Tracking.Events)
		assert.Equal(t, clientprotocol.Unavailable, res.Tracking.State)
		require.NotNil(t, res.Tracking.Error)
		assert.True(t, res.Tracking.Error.Retryable)
	})

	t.Run("cancelled order has no progress", func(t *testing.T) {
		client := &fakeTrackingClient{snapshot: carrierprotocol.TrackingSnapshot{
			Status: "Returned",
			Events: []carrierprotocol.Event{{Timestamp: createdAt, Status: "Returned to sender"}},
		}}
		svc, _ := newService(newOrder(lifecycle.Cancelled, "1ZART"), client)

		res, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

		require.NoError(t, err)
		assert.Nil(t, res.Progress)
		assert.Len(t, res.Tracking.Events, 1)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		svc, _ := newService(newOrder(lifecycle.Pending, ""), &fakeTrackingClient{})

		_, err := svc.GetOrderTracking(context.Background(), customerID, uuid.New())

		require.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("another customer's order is not found", func(t *testing.T) {
		client := &fakeTrackingClient{}
		svc, _ := newService(newOrder(lifecycle.Shipped, "1ZART"), client)

		_, err := svc.GetOrderTracking(context.Background(), "someone-else", orderID)

		require.ErrorIs(t, err, ErrOrderNotFound)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("storage failures propagate", func(t *testing.T) {
		boom := errors.New("pool exhausted")
		svc := NewOrders(
			Config{},
			&fakeTransactionManager{},
			&fakeRepository{err: boom},
			&fakeTrackingClient{},
			logging.NewFromZap(zap.NewNop()),
		)

		_, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRefreshTracking(t *testing.T) {
	t.Run("each refresh queries the carrier again", func(t *testing.T) {
		client := &fakeTrackingClient{err: carrier.ErrNetwork}
		svc, _ := newService(newOrder(lifecycle.Processing, "1ZART"), client)

		first, err := svc.RefreshTracking(context.Background(), customerID, orderID)
		require.NoError(t, err)
		assert.Equal(t, clientprotocol.Unavailable, first.Tracking.State)

		client.err = nil
		client.snapshot = carrierprotocol.TrackingSnapshot{
			Status: "Label Created",
			Events: []carrierprotocol.Event{{Timestamp: createdAt, Status: "Label Created"}},
		}
		second, err := svc.RefreshTracking(context.Background(), customerID, orderID)
		require.NoError(t, err)

		assert.Equal(t, 2, client.calls)
		assert.Equal(t, clientprotocol.InTransit, second.Tracking.State)
		assert.Nil(t, second.Tracking.Error)
		require.NotNil(t, second.Progress)
		assert.Equal(t, 1, second.Progress.CurrentIndex)
	})

	t.Run("identical inputs give identical views", func(t *testing.T) {
		client := &fakeTrackingClient{err: carrier.ErrNetwork}
		svc, _ := newService(newOrder(lifecycle.Confirmed, "1ZART"), client)

		first, err := svc.RefreshTracking(context.Background(), customerID, orderID)
		require.NoError(t, err)
		second, err := svc.RefreshTracking(context.Background(), customerID, orderID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestGetCustomerOrders(t *testing.T) {
	t.Run("converts summaries with progress", func(t *testing.T) {
		repo := &fakeRepository{summaries: []data.OrderSummary{
			{ID: orderID, OrderNumber: "ART-3100", Status: lifecycle.Shipped, PaymentStatus: lifecycle.PaymentPaid, ItemsCount: 1, CreatedAt: createdAt},
			{ID: uuid.New(), OrderNumber: "ART-3001", Status: lifecycle.Refunded, PaymentStatus: lifecycle.PaymentRefunded, ItemsCount: 3, CreatedAt: createdAt.Add(-time.Hour)},
		}}
		client := &fakeTrackingClient{}
		svc := NewOrders(Config{}, &fakeTransactionManager{}, repo, client, logging.NewFromZap(zap.NewNop()))

		orders, err := svc.GetCustomerOrders(context.Background(), customerID)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "shipped", orders[0].Status)
		require.NotNil(t, orders[0].Progress)
		assert.Equal(t, 2, orders[0].Progress.CurrentIndex)
		assert.Equal(t, "refunded", orders[1].Status)
		assert.Nil(t, orders[1].Progress)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		boom := errors.New("timeout")
		svc := NewOrders(Config{}, &fakeTransactionManager{}, &fakeRepository{err: boom}, &fakeTrackingClient{}, logging.NewFromZap(zap.NewNop()))

		_, err := svc.GetCustomerOrders(context.Background(), customerID)

		require.ErrorIs(t, err, boom)
	})
}

func TestTrackingFailureLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	order := newOrder(lifecycle.Shipped, "1Z999AA1")
	client := &fakeTrackingClient{err: carrier.ErrNetwork}
	svc := NewOrders(
		Config{TrackingTimeout: time.Second},
		&fakeTransactionManager{},
		&fakeRepository{orders: map[uuid.UUID]data.Order{order.ID: order}},
		client,
		logging.NewFromZap(zap.New(core)),
	)

	_, err := svc.GetOrderTracking(context.Background(), customerID, orderID)

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "tracking fetch failed", entry.Message)
	assert.Equal(t, "ART-3100", entry.ContextMap()["orderNumber"])
}
