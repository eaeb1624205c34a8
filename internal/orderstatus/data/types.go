package data

import (
	"time"

	"go-artstore/internal/orderstatus/lifecycle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is written by the order-placement system and is read-only here.
type Order struct {
	ID            uuid.UUID
	OrderNumber   string
	CustomerID    string
	Items         []Item
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	ShippingCost  decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        lifecycle.Status
	PaymentStatus lifecycle.PaymentStatus
	Shipment      *Shipment
	CreatedAt     time.Time
}

type Item struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Shipment exists once a carrier label has been purchased.
type Shipment struct {
	TrackingNumber string
	ServiceType    string
}

func (o Order) TrackingNumber() (string, bool) {
	if o.Shipment == nil || o.Shipment.TrackingNumber == "" {
		return "", false
	}
	return o.Shipment.TrackingNumber, true
}

// OrderSummary is the order-list projection of an Order.
type OrderSummary struct {
	ID            uuid.UUID
	OrderNumber   string
	Total         decimal.Decimal
	Status        lifecycle.Status
	PaymentStatus lifecycle.PaymentStatus
	ItemsCount    int
	CreatedAt     time.Time
}
