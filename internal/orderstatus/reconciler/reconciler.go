// Package reconciler merges an order's lifecycle status with the carrier's
// tracking result into the timeline shown to the customer.
//
// Reconcile is a pure function: it keeps no state between calls, never
// mutates its inputs and returns identical output for identical input, so a
// manual refresh simply calls it again with the latest pair.
package reconciler

import (
	"errors"
	"fmt"
	"time"

	"go-artstore/internal/common/carrierprotocol"
	"go-artstore/internal/orderstatus/data"
)

const (
	PlaceholderStatus      = "Order Confirmed"
	PlaceholderDescription = "Order confirmed and awaiting shipment"
	LabelNotCreatedStatus  = "Label Not Created"
)

var (
	// ErrTrackingUnavailable is returned inside a Reconciliation when the carrier
	// failed for an order whose fulfilment is already underway. It is retryable.
	ErrTrackingUnavailable = errors.New("tracking is temporarily unavailable")
)

type State int

const (
	AwaitingShipment State = iota
	InTransit
	NoEvents
	LabelNotCreated
	Unavailable
	Closed
)

func (s State) String() string {
	switch s {
	case AwaitingShipment:
		return "awaiting_shipment"
	case InTransit:
		return "in_transit"
	case NoEvents:
		return "no_events"
	case LabelNotCreated:
		return "label_not_created"
	case Unavailable:
		return "unavailable"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// TrackingResult is the outcome of one carrier query: either a snapshot or an error.
type TrackingResult struct {
	Snapshot carrierprotocol.TrackingSnapshot
	Err      error
}

func Succeeded(snapshot carrierprotocol.TrackingSnapshot) *TrackingResult {
	return &TrackingResult{Snapshot: snapshot}
}

func Failed(err error) *TrackingResult {
	return &TrackingResult{Err: err}
}

type DisplayTimeline struct {
	Events []carrierprotocol.Event
}

func (t DisplayTimeline) IsEmpty() bool {
	return len(t.Events) == 0
}

type Reconciliation struct {
	Timeline          DisplayTimeline
	CarrierStatus     string
	EstimatedDelivery *time.Time
	State             State
	// Err is only set for Unavailable and always wraps ErrTrackingUnavailable.
	Err error
}

func (r Reconciliation) Retryable() bool {
	return errors.Is(r.Err, ErrTrackingUnavailable)
}

// Reconcile applies the display rules in order; the first matching rule wins.
// tracking is nil when no carrier query was made.
func Reconcile(order data.Order, tracking *TrackingResult) Reconciliation {
	if _, ok := order.TrackingNumber(); !ok || tracking == nil {
		return Reconciliation{State: AwaitingShipment}
	}

	if tracking.Err == nil {
		snapshot := tracking.Snapshot
		res := Reconciliation{
			CarrierStatus:     snapshot.Status,
			EstimatedDelivery: copyTime(snapshot.EstimatedDelivery),
		}
		if len(snapshot.Events) == 0 {
			res.State = NoEvents
			return res
		}
		res.Timeline = DisplayTimeline{Events: copyEvents(snapshot.Events)}
		res.State = InTransit
		return res
	}

	switch {
	case order.Status.IsPreShipment():
		// A carrier outage before fulfilment starts is shown as "label not
		// created yet" instead of an error.
		return Reconciliation{
			Timeline: DisplayTimeline{Events: []carrierprotocol.Event{{
				Timestamp:   order.CreatedAt,
				Status:      PlaceholderStatus,
				Description: PlaceholderDescription,
			}}},
			CarrierStatus: LabelNotCreatedStatus,
			State:         LabelNotCreated,
		}
	case order.Status.IsTerminal():
		return Reconciliation{State: Closed}
	default:
		return Reconciliation{
			State: Unavailable,
			Err:   fmt.Errorf("%w: %w", ErrTrackingUnavailable, tracking.Err),
		}
	}
}

func copyEvents(events []carrierprotocol.Event) []carrierprotocol.Event {
	res := make([]carrierprotocol.Event, len(events))
	copy(res, events)
	return res
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
