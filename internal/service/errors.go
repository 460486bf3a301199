package service

import "errors"

var (
	ErrInvalid          = errors.New("invalid")
	ErrFeedUnavailable  = errors.New("feed unavailable")
	ErrUpstreamRejected = errors.New("upstream rejected")
	ErrRateLimited      = errors.New("rate limited")
)
