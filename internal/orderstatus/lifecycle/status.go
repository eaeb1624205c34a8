// Package lifecycle defines the merchant-controlled order states and the rules
// that order them.
//
// Forward progression:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │             │             │
//	   └────────────┴─────────────┴─────────────┴──> Cancelled | Refunded
//
// Cancelled and Refunded are terminal: they have no position in the forward
// progression and absorb every later update.
package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
)

// Status is the lifecycle state of an order. The zero value is Unknown so that
// uninitialised values never pass as a real state.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Shipped
	Delivered
	Cancelled
	Refunded
)

type statusInfo struct {
	name     string
	rank     int
	terminal bool
}

// statusTable is the single source of truth for names, ranks and terminality.
// Rank is explicit so reordering the constants above cannot change progression.
var statusTable = map[Status]statusInfo{
	Pending:    {name: "pending", rank: 0},
	Confirmed:  {name: "confirmed", rank: 1},
	Processing: {name: "processing", rank: 2},
	Shipped:    {name: "shipped", rank: 3},
	Delivered:  {name: "delivered", rank: 4},
	Cancelled:  {name: "cancelled", rank: -1, terminal: true},
	Refunded:   {name: "refunded", rank: -1, terminal: true},
}

// Parse converts the wire/storage name of a status.
func Parse(text string) (Status, error) {
	for status, info := range statusTable {
		if info.name == text {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidStatus, text)
}

func (s Status) String() string {
	if info, ok := statusTable[s]; ok {
		return info.name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusTable[s]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return nil
}

// Position reports the rank of s in the forward progression. Terminal and
// unknown statuses report false.
func (s Status) Position() (int, bool) {
	info, ok := statusTable[s]
	if !ok || info.terminal {
		return 0, false
	}
	return info.rank, true
}

func (s Status) IsTerminal() bool {
	return statusTable[s].terminal
}

// IsPreShipment is true while the merchant has not started fulfilment yet.
func (s Status) IsPreShipment() bool {
	return s == Pending || s == Confirmed
}

// Before reports whether s precedes other in the forward progression.
// Terminal statuses are never ordered against anything.
func (s Status) Before(other Status) bool {
	a, ok := s.Position()
	if !ok {
		return false
	}
	b, ok := other.Position()
	if !ok {
		return false
	}
	return a < b
}

// Forward returns the non-terminal statuses in progression order.
func Forward() []Status {
	return []Status{Pending, Confirmed, Processing, Shipped, Delivered}
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
