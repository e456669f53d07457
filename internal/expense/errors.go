package expense

import "errors"

var (
	ErrNotFound        = errors.New("expense not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrExpenseMismatch = errors.New("payment belongs to another expense")
)
