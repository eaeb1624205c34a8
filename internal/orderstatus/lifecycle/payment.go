package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// PaymentStatus is informational only: it never takes part in reconciliation.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentUnpaid
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:  "pending",
	PaymentPaid:     "paid",
	PaymentUnpaid:   "unpaid",
	PaymentRefunded: "refunded",
}

func ParsePaymentStatus(text string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == text {
			return status, nil
		}
	}
	return PaymentUnknown, fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, text)
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p PaymentStatus) MarshalText() ([]byte, error) {
	if _, ok := paymentStatusNames[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPaymentStatus, int(p))
	}
	return []byte(p.String()), nil
}

func (p *PaymentStatus) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentStatus(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
