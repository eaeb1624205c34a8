package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-artstore/internal/common/carrierprotocol"
	"go-artstore/pkg/logging"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	// ErrNetwork means the carrier could not be reached at all.
	ErrNetwork = errors.New("carrier network error")
	// ErrCarrier means the carrier answered but the answer is unusable.
	ErrCarrier               = errors.New("carrier error")
	ErrUnknownTrackingNumber = fmt.Errorf("%w: unknown tracking number", ErrCarrier)
)

type Config struct {
	ServerAddress string
}

type Client struct {
	logger *logging.ZapLogger
	client *resty.Client
	cfg    Config
}

func NewClient(cfg Config, logger *logging.ZapLogger) *Client {
	client := resty.New().
		SetBaseURL(cfg.ServerAddress).
		SetHeader("Accept", "application/json")
	return &Client{
		cfg:    cfg,
		logger: logger,
		client: client,
	}
}

// GetTracking queries the carrier once. Retrying and deadlines are left to the
// caller through ctx, and so is logging of the returned errors.
func (c *Client) GetTracking(ctx context.Context, trackingNumber string) (carrierprotocol.TrackingSnapshot, error) {
	ctx = logging.WithContextFields(ctx, zap.String("trackingNumber", trackingNumber))
	resp, err := c.client.
		R().
		SetContext(ctx).
		SetPathParam("number", trackingNumber).
		Get("/api/tracking/{number}")
	if err != nil {
		return carrierprotocol.TrackingSnapshot{}, fmt.Errorf("%w: get request failed: %w", ErrNetwork, err)
	}
	statusCode := resp.StatusCode()
	switch statusCode {
	case http.StatusOK:
		res := carrierprotocol.TrackingSnapshot{}
		err := json.Unmarshal(resp.Body(), &res)
		if err != nil {
			return carrierprotocol.TrackingSnapshot{}, fmt.Errorf("%w: error unmarshalling tracking response: %w", ErrCarrier, err)
		}
		if res.Events == nil {
			res.Events = make([]carrierprotocol.Event, 0)
		}
		c.logger.DebugCtx(ctx, "Tracking found", zap.String("status", res.Status), zap.Int("events", len(res.Events)))
		return res, nil
	case http.StatusNotFound:
		c.logger.DebugCtx(ctx, "Tracking number unknown to carrier")
		return carrierprotocol.TrackingSnapshot{}, ErrUnknownTrackingNumber
	default:
		return carrierprotocol.TrackingSnapshot{}, fmt.Errorf("%w: unexpected status code %v", ErrCarrier, statusCode)
	}
}
