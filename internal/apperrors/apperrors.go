package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request")
	ErrValidation     = errors.New("validation failed")

	ErrInvalidTransition   = errors.New("booking status transition is not allowed")
	ErrInvalidRange        = errors.New("check-out date must be after check-in date")
	ErrInvalidState        = errors.New("booking is not in a state that allows this operation")
	ErrAlreadySettled      = errors.New("booking payment is already settled")
	ErrInvalidRelationship = errors.New("users are not related through this booking")
	ErrInvalidScore        = errors.New("score must be between 1 and 10")
	ErrInvalidBooking      = errors.New("invalid booking for review")

	ErrRoleNotAllowed       = errors.New("user role does not allow this operation")
	ErrApartmentUnavailable = errors.New("apartment is not available for the requested dates")
	ErrApartmentLocked      = errors.New("apartment is being modified by another request")
)

// TransitionError reports a rejected booking status change.
type TransitionError struct {
	BookingID int64
	From      string
	To        string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %d: cannot change status from %s to %s", e.BookingID, e.From, e.To)
}
func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("user with email '%s' already exists", e.Email)
}
func (e *EmailTakenError) Is(target error) bool { return target == ErrAlreadyExists }

type PaymentExistsError struct{ BookingID int64 }

func (e *PaymentExistsError) Error() string {
	return fmt.Sprintf("payment for booking %d already exists", e.BookingID)
}
func (e *PaymentExistsError) Is(target error) bool { return target == ErrAlreadySettled }
