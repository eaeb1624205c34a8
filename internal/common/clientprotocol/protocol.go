package clientprotocol

import (
	"time"

	"github.com/shopspring/decimal"
)

type TrackingState string

const (
	AwaitingShipment TrackingState = "awaiting_shipment"
	InTransit        TrackingState = "in_transit"
	NoEvents         TrackingState = "no_events"
	LabelNotCreated  TrackingState = "label_not_created"
	Unavailable      TrackingState = "unavailable"
	Closed           TrackingState = "closed"
)

type OrderTracking struct {
	Order    Order     `json:"order"`
	Progress *Progress `json:"progress"`
	Tracking Tracking  `json:"tracking"`
}

type OrderSummary struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Total         decimal.Decimal `json:"total"`
	ItemsCount    int             `json:"items_count"`
	CreatedAt     time.Time       `json:"created_at"`
	Progress      *Progress       `json:"progress"`
}

type Order struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Shipment      *Shipment       `json:"shipment,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Item struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Shipment struct {
	TrackingNumber string `json:"tracking_number"`
	ServiceType    string `json:"service_type"`
}

// Progress is absent (null) for cancelled and refunded orders.
type Progress struct {
	CurrentIndex       int         `json:"current_index"`
	CompletionFraction float64     `json:"completion_fraction"`
	Milestones         []Milestone `json:"milestones"`
}

type Milestone struct {
	Status  string `json:"status"`
	Reached bool   `json:"reached"`
}

type Tracking struct {
	State             TrackingState  `json:"state"`
	CarrierStatus     string         `json:"carrier_status,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`
	Events            []Event        `json:"events"`
	Error             *TrackingError `json:"error,omitempty"`
}

type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

type TrackingError struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type TrackingRefresh struct {
	Progress *Progress `json:"progress"`
	Tracking Tracking  `json:"tracking"`
}
