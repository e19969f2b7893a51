package store

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrSoldOut          = errors.New("event sold out")
	ErrAlreadyBooked    = errors.New("holder already booked this event")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrAlreadyValidated = errors.New("ticket already validated")
)
