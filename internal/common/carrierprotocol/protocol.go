package carrierprotocol

import "time"

// TrackingSnapshot is the carrier's view of a shipment at the moment of the query.
// Events are ordered newest first.
type TrackingSnapshot struct {
	TrackingNumber    string     `json:"tracking_number"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	Events            []Event    `json:"events"`
}

type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}
