package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──┬──> Accepted ──> Assigned ──> PickedUp ──> Delivered
//	          │      (matching)
//	          └──> Rejected
//
// Stored and exchanged by name, never by ordinal.
type Status int

const (
	// Unknown catches uninitialized values and unrecognized names.
	Unknown Status = iota
	Pending
	Accepted
	Assigned
	PickedUp
	Delivered
	Rejected
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Pending:   "Pending",
	Accepted:  "Accepted",
	Assigned:  "Assigned",
	PickedUp:  "PickedUp",
	Delivered: "Delivered",
	Rejected:  "Rejected",
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Accepted, Assigned, PickedUp, Delivered, Rejected}
}

// ParseStatus converts a stored status name back into a Status.
func ParseStatus(s string) (Status, error) {
	if st := StatusFromString(s); st != Unknown {
		return st, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// StatusFromString is the lenient form of ParseStatus: unrecognized names map
// to Unknown, which no transition accepts.
func StatusFromString(s string) Status {
	for st, name := range statusNames {
		if st != Unknown && name == s {
			return st
		}
	}
	return Unknown
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected
}

// HasPartner reports whether an order in status s must carry a delivery partner.
func (s Status) HasPartner() bool {
	return s == Assigned || s == PickedUp || s == Delivered
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}
