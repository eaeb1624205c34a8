package service

import (
	"context"

	"go-artstore/internal/common/carrierprotocol"
	"go-artstore/internal/orderstatus/data"

	"github.com/google/uuid"
)

type TransactionManager interface {
	DoWithSnapshot(ctx context.Context, f func(ctx context.Context) error) error
}

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (data.Order, error)
	GetCustomerOrders(ctx context.Context, customerID string) ([]data.OrderSummary, error)
}

type TrackingClient interface {
	GetTracking(ctx context.Context, trackingNumber string) (carrierprotocol.TrackingSnapshot, error)
}
