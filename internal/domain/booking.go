package domain

import (
	"fmt"
	"strings"
	"time"

	"shareit/internal/pkg/apperr"
)

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	BookingCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID       int64         `gorm:"primaryKey"`
	Start    time.Time     `gorm:"column:start_date;not null;index"`
	End      time.Time     `gorm:"column:end_date;not null;index"`
	ItemID   int64         `gorm:"not null;index"`
	BookerID int64         `gorm:"not null;index"`
	Status   BookingStatus `gorm:"size:16;not null;index"`

	Item   *Item `gorm:"foreignKey:ItemID"`
	Booker *User `gorm:"foreignKey:BookerID"`
}

func (Booking) TableName() string { return "bookings" }

// IsDecided reports whether the owner can no longer approve or reject the booking.
func (b *Booking) IsDecided() bool {
	return b.Status != BookingWaiting
}

// State narrows booking listings by time window or status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState accepts the exact upper-case tokens; an empty token means ALL.
func ParseState(token string) (State, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return StateAll, nil
	}
	s := State(token)
	if _, ok := states[s]; !ok {
		return "", fmt.Errorf("%w: Unknown state: %s", apperr.ErrUnsupportedState, token)
	}
	return s, nil
}
