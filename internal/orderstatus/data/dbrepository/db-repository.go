package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go-artstore/internal/orderstatus/data"
	"go-artstore/internal/orderstatus/lifecycle"
	"go-artstore/pkg/logging"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DBStorage interface {
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/select_order.sql
var selectOrderQuery string

//go:embed sql/select_order_items.sql
var selectOrderItemsQuery string

func (db *DBRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (data.Order, error) {
	db.logger.DebugCtx(ctx, "getting order", zap.String("orderID", orderID.String()))
	row, err := db.storage.QueryRow(ctx, selectOrderQuery, orderID)
	if err != nil {
		return data.Order{}, handleSQLError(err)
	}

	var (
		order          data.Order
		status         string
		paymentStatus  string
		trackingNumber *string
		serviceType    *string
	)
	err = row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.Subtotal,
		&order.Discount,
		&order.ShippingCost,
		&order.Tax,
		&order.Total,
		&status,
		&paymentStatus,
		&trackingNumber,
		&serviceType,
		&order.CreatedAt,
	)
	if err != nil {
		return data.Order{}, handleSQLError(err)
	}
	if order.Status, err = lifecycle.Parse(status); err != nil {
		return data.Order{}, fmt.Errorf("order %s: %w", orderID, err)
	}
	if order.PaymentStatus, err = lifecycle.ParsePaymentStatus(paymentStatus); err != nil {
		return data.Order{}, fmt.Errorf("order %s: %w", orderID, err)
	}
	if trackingNumber != nil && *trackingNumber != "" {
		order.Shipment = &data.Shipment{TrackingNumber: *trackingNumber}
		if serviceType != nil {
			order.Shipment.ServiceType = *serviceType
		}
	}

	order.Items, err = db.getOrderItems(ctx, orderID)
	if err != nil {
		return data.Order{}, err
	}
	return order, nil
}

func (db *DBRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]data.Item, error) {
	rows, err := db.storage.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Item, 0)
	for rows.Next() {
		var item data.Item
		if err := rows.Scan(&item.Title, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_customer_orders.sql
var selectCustomerOrdersQuery string

func (db *DBRepository) GetCustomerOrders(ctx context.Context, customerID string) ([]data.OrderSummary, error) {
	rows, err := db.storage.Query(ctx, selectCustomerOrdersQuery, customerID)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.OrderSummary, 0)
	for rows.Next() {
		var (
			summary       data.OrderSummary
			status        string
			paymentStatus string
		)
		err := rows.Scan(
			&summary.ID,
			&summary.OrderNumber,
			&summary.Total,
			&status,
			&paymentStatus,
			&summary.CreatedAt,
			&summary.ItemsCount,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		if summary.Status, err = lifecycle.Parse(status); err != nil {
			return nil, fmt.Errorf("order %s: %w", summary.ID, err)
		}
		if summary.PaymentStatus, err = lifecycle.ParsePaymentStatus(paymentStatus); err != nil {
			return nil, fmt.Errorf("order %s: %w", summary.ID, err)
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

func handleSQLError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return data.ErrOrderNotFound
	}
	return err
}
