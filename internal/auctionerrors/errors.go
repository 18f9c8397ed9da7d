package auctionerrors

import "errors"

// Malformed-request errors
var (
	ErrMalformed = errors.New("malformed request")
)

// Business-rule rejections. These are expected outcomes reported to the
// caller, not faults of the server.
var (
	ErrInvalidArg      = errors.New("invalid auction parameters")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrWatchersFull    = errors.New("auction watcher list full")
	ErrBidDenied       = errors.New("bidding denied")
	ErrBidTooLow       = errors.New("bid amount too low")
)

// Authentication rejections, handled at login.
var (
	ErrUserLoggedIn  = errors.New("user already logged in")
	ErrWrongPassword = errors.New("wrong password")
)
