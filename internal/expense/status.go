package expense

import (
	"fmt"
	"slices"
	"strings"
)

// PaymentStatus represents the lifecycle state of a single installment.
type PaymentStatus string

const (
	PaymentUnconfirmed PaymentStatus = "unconfirmed"
	PaymentConfirmed   PaymentStatus = "confirmed"
	PaymentPaid        PaymentStatus = "paid"
	PaymentCanceled    PaymentStatus = "canceled"
	PaymentSimulated   PaymentStatus = "simulated"
)

var paymentStatuses = []PaymentStatus{
	PaymentUnconfirmed, PaymentConfirmed, PaymentPaid, PaymentCanceled, PaymentSimulated,
}

// IsFinal reports whether the status closes the installment.
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentPaid || s == PaymentCanceled
}

// ParsePaymentStatus accepts any letter case.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(paymentStatuses, status) {
		return "", fmt.Errorf("unknown payment status %q", s)
	}

	return status, nil
}

// Status represents the lifecycle state of an expense.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// Type tells the expense variants apart in storage and maps.
type Type string

const (
	TypePurchase     Type = "purchase"
	TypeSubscription Type = "subscription"
)

var (
	purchaseStatuses     = []Status{StatusPending, StatusFinished}
	subscriptionStatuses = []Status{StatusActive, StatusCancelled}
)

// StatusError is returned when a status outside the variant's legal set is assigned.
type StatusError struct {
	Type    Type
	Status  Status
	Allowed []Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %q is not valid for a %s, allowed: %v", e.Status, e.Type, e.Allowed)
}

func checkStatus(t Type, allowed []Status, status Status) error {
	if !slices.Contains(allowed, status) {
		return &StatusError{Type: t, Status: status, Allowed: allowed}
	}

	return nil
}
