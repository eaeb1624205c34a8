package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-artstore/pkg/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CustomerIDClaimName = "customer_id"
	OrderIDParam        = "orderID"

	failedToRecoverCustomerIDErrorMessage = "Failed to recover customer id"
)

var errNoCustomerID = errors.New("no customer id claim")

func customerIDFromCtx(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read token claims: %w", err)
	}
	customerID, ok := claims[CustomerIDClaimName].(string)
	if !ok || customerID == "" {
		return "", errNoCustomerID
	}
	return customerID, nil
}

func orderIDFromRequest(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, OrderIDParam)) //nolint:wrapcheck // unnecessary
}

func tryWriteResponseJSON(w http.ResponseWriter, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err //nolint:wrapcheck // unnecessary
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(res)
	return err //nolint:wrapcheck // unnecessary
}

func writeResponse(ctx context.Context, w http.ResponseWriter, logger *logging.ZapLogger, responseItem any) {
	if err := tryWriteResponseJSON(w, responseItem); err != nil {
		logger.ErrorCtx(ctx, "Error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}
