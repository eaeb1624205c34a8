package handlers

import (
	"context"
	"errors"
	"net/http"

	"go-artstore/internal/common/clientprotocol"
	"go-artstore/internal/orderstatus/service"
	"go-artstore/pkg/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderTrackingService interface {
	GetOrderTracking(ctx context.Context, customerID string, orderID uuid.UUID) (clientprotocol.OrderTracking, error)
	RefreshTracking(ctx context.Context, customerID string, orderID uuid.UUID) (clientprotocol.TrackingRefresh, error)
}

// OrderTrackingHandler serves the order detail view.
type OrderTrackingHandler struct {
	service OrderTrackingService
	logger  *logging.ZapLogger
}

func NewOrderTrackingHandler(service OrderTrackingService, logger *logging.ZapLogger) *OrderTrackingHandler {
	return &OrderTrackingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderTrackingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveOrderView(w, r, h.logger, h.service.GetOrderTracking)
}

// TrackingRefreshHandler serves the manual refresh of a single order's tracking.
type TrackingRefreshHandler struct {
	service OrderTrackingService
	logger  *logging.ZapLogger
}

func NewTrackingRefreshHandler(service OrderTrackingService, logger *logging.ZapLogger) *TrackingRefreshHandler {
	return &TrackingRefreshHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TrackingRefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveOrderView(w, r, h.logger, h.service.RefreshTracking)
}

func serveOrderView[T any](
	w http.ResponseWriter,
	r *http.Request,
	logger *logging.ZapLogger,
	get func(ctx context.Context, customerID string, orderID uuid.UUID) (T, error),
) {
	customerID, err := customerIDFromCtx(r.Context())
	if err != nil {
		logger.ErrorCtx(r.Context(), failedToRecoverCustomerIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	orderID, err := orderIDFromRequest(r)
	if err != nil {
		logger.DebugCtx(r.Context(), "Invalid order id", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	ctx := logging.WithContextFields(r.Context(), zap.String("orderID", orderID.String()))

	view, err := get(ctx, customerID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.DebugCtx(ctx, "Order not found")
			w.WriteHeader(http.StatusNotFound)
			return
		default:
			logger.ErrorCtx(ctx, "Error getting order", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	writeResponse(ctx, w, logger, view)
}
