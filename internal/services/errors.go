// Package services defines the business workflows for users, donation
// requests, fund payments and statistics. This file centralizes the
// service-level error values so that handlers can map them to HTTP results
// consistently.
//
// Translation into user-facing messages or status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	// The store is not consulted.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrUserNotFound indicates that no user is registered under the given
	// email or id.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when registration or a profile update
	// would reuse an email that belongs to another account.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrForbidden is returned when the caller may not modify the target
	// record.
	ErrForbidden = errors.New("forbidden access")

	// ErrInvalidEmail is returned when a required email is blank.
	ErrInvalidEmail = errors.New("email is required")

	// ErrInvalidRole is returned for a role outside Donor, Volunteer, Admin.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidStatus is returned for a user or donation status outside its
	// enumeration.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRequestNotFound indicates that the donation request does not exist.
	ErrRequestNotFound = errors.New("donation request not found")

	// ErrInvalidAmount is returned when a donation amount is not a positive
	// number of major currency units.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrMissingSession is returned when confirmation is attempted without a
	// checkout session id.
	ErrMissingSession = errors.New("session id is required")

	// ErrPaymentNotPaid is returned when the checkout session exists but the
	// gateway does not report it as paid.
	ErrPaymentNotPaid = errors.New("payment not completed")

	// ErrGateway wraps failures reported by the payment gateway.
	ErrGateway = errors.New("payment gateway error")

	// ErrPaymentsDisabled is returned when no payment gateway is configured.
	ErrPaymentsDisabled = errors.New("payments are not configured")
)
