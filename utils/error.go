package utils

import "errors"

var (
	ErrorRecordNotFound    = errors.New("record not found")
	ErrorInvoiceCancelled  = errors.New("invoice already cancelled")
	ErrorInsufficientStock = errors.New("insufficient stock")
	ErrorPaymentExceedsDue = errors.New("pay amount cannot exceed due")
	ErrorNothingDue        = errors.New("no due available for invoice")
	ErrorInvalidPayAmount  = errors.New("pay amount must be greater than 0")
	ErrorInvalidItemName   = errors.New("item name is blank")
	ErrorInvalidPhone      = errors.New("invalid phone number")
)
