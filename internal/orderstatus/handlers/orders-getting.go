package handlers

import (
	"context"
	"net/http"

	"go-artstore/internal/common/clientprotocol"
	"go-artstore/pkg/logging"

	"go.uber.org/zap"
)

type OrdersGettingHandler struct {
	service OrdersGettingService
	logger  *logging.ZapLogger
}

type OrdersGettingService interface {
	GetCustomerOrders(ctx context.Context, customerID string) ([]clientprotocol.OrderSummary, error)
}

func NewOrdersGettingHandler(service OrdersGettingService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverCustomerIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	orders, err := h.service.GetCustomerOrders(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting orders", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeResponse(r.Context(), w, h.logger, orders)
}
