package repo

import (
	"context"

	"github.com/goride/goride/pkg/core/model"
)

// BookingsAPI represents the remote bookings REST API. Similar to the
// VehiclesAPI, failures are reported as *cerr.Error values and server
// provided messages are kept as cerr.ServerMessage in their chains.
type BookingsAPI interface {
	Create(ctx context.Context, r model.BookingRequest) (*model.Booking, error)
	ListByUser(ctx context.Context, email string) ([]model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
}
