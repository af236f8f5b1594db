package errors

import "errors"

var (
	ErrTransactionNotFound  = errors.New("manual transaction not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrInvalidAmount        = errors.New("amount must be a non-negative number")
	ErrInvalidPaymentType   = errors.New("unknown payment type")
	ErrInvalidPaymentStatus = errors.New("unknown payment status")
	ErrInvalidInput         = errors.New("invalid settlement input")
	ErrPaymentManaged       = errors.New("payment belongs to a manual transaction and must be edited through it")
	ErrUnauthorized         = errors.New("actor lacks the required capability")
	ErrPairIncomplete       = errors.New("manual transaction is missing its payment pair")
)
