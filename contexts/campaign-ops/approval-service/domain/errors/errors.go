package errors

import "errors"

var (
	ErrChainNotFound     = errors.New("approval chain not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrChainExists       = errors.New("active approval chain already exists for entity type")
	ErrInvalidChainInput = errors.New("invalid approval chain input")
	ErrUnauthorized      = errors.New("actor is not authorized")
)
