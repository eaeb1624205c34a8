package service

import (
	"go-artstore/internal/common/clientprotocol"
	"go-artstore/internal/orderstatus/data"
	"go-artstore/internal/orderstatus/lifecycle"
	"go-artstore/internal/orderstatus/progress"
	"go-artstore/internal/orderstatus/reconciler"
)

func convertOrder(order data.Order) clientprotocol.Order {
	items := make([]clientprotocol.Item, len(order.Items))
	for i, item := range order.Items {
		items[i] = clientprotocol.Item{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	res := clientprotocol.Order{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		Status:        order.Status.String(),
		PaymentStatus: order.PaymentStatus.String(),
		Items:         items,
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		ShippingCost:  order.ShippingCost,
		Tax:           order.Tax,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
	}
	if order.Shipment != nil {
		res.Shipment = &clientprotocol.Shipment{
			TrackingNumber: order.Shipment.TrackingNumber,
			ServiceType:    order.Shipment.ServiceType,
		}
	}
	return res
}

func convertSummary(order data.OrderSummary) clientprotocol.OrderSummary {
	return clientprotocol.OrderSummary{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		Status:        order.Status.String(),
		PaymentStatus: order.PaymentStatus.String(),
		Total:         order.Total,
		ItemsCount:    order.ItemsCount,
		CreatedAt:     order.CreatedAt,
		Progress:      convertProgress(order.Status),
	}
}

func convertProgress(status lifecycle.Status) *clientprotocol.Progress {
	projection, ok := progress.Project(status)
	if !ok {
		return nil
	}
	milestones := make([]clientprotocol.Milestone, len(projection.Milestones))
	for i, m := range projection.Milestones {
		milestones[i] = clientprotocol.Milestone{
			Status:  m.Status.String(),
			Reached: m.Reached,
		}
	}
	return &clientprotocol.Progress{
		CurrentIndex:       projection.CurrentIndex,
		CompletionFraction: projection.CompletionFraction,
		Milestones:         milestones,
	}
}

func convertTracking(rec reconciler.Reconciliation) clientprotocol.Tracking {
	events := make([]clientprotocol.Event, len(rec.Timeline.Events))
	for i, e := range rec.Timeline.Events {
		events[i] = clientprotocol.Event{
			Timestamp:   e.Timestamp,
			Status:      e.Status,
			Location:    e.Location,
			Description: e.Description,
		}
	}
	res := clientprotocol.Tracking{
		State:             convertState(rec.State),
		CarrierStatus:     rec.CarrierStatus,
		EstimatedDelivery: rec.EstimatedDelivery,
		Events:            events,
	}
	if rec.Err != nil {
		res.Error = &clientprotocol.TrackingError{
			Message:   reconciler.ErrTrackingUnavailable.Error(),
			Retryable: rec.Retryable(),
		}
	}
	return res
}

func convertState(state reconciler.State) clientprotocol.TrackingState {
	switch state {
	case reconciler.AwaitingShipment:
		return clientprotocol.AwaitingShipment
	case reconciler.InTransit:
		return clientprotocol.InTransit
	case reconciler.NoEvents:
		return clientprotocol.NoEvents
	case reconciler.LabelNotCreated:
		return clientprotocol.LabelNotCreated
	case reconciler.Unavailable:
		return clientprotocol.Unavailable
	case reconciler.Closed:
		return clientprotocol.Closed
	}
	return clientprotocol.Unavailable
}
