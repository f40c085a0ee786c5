package httpapi

import (
	"github.com/staybook/reservation-engine/booking/features/command/approvereservation"
	"github.com/staybook/reservation-engine/booking/features/command/cancelreservation"
	"github.com/staybook/reservation-engine/booking/features/command/deletereservation"
	"github.com/staybook/reservation-engine/booking/features/command/registerresource"
	"github.com/staybook/reservation-engine/booking/features/command/rejectreservation"
	"github.com/staybook/reservation-engine/booking/features/command/requestreservation"
	"github.com/staybook/reservation-engine/booking/features/query/allreservations"
	"github.com/staybook/reservation-engine/booking/features/query/reservationdetails"
	"github.com/staybook/reservation-engine/booking/features/query/reservationsbyowner"
	"github.com/staybook/reservation-engine/booking/features/query/reservationsbyrequester"
	"github.com/staybook/reservation-engine/booking/features/query/reservationsforresource"
	"github.com/staybook/reservation-engine/booking/shared/shell"
)

// Handlers bundles the command and query handlers the API dispatches to.
// Plain feature handlers and their observable wrappers both fit.
type Handlers struct {
	RegisterResource shell.CommandHandler[registerresource.Command]
	Request          shell.CommandHandler[requestreservation.Command]
	Approve          shell.CommandHandler[approvereservation.Command]
	Reject           shell.CommandHandler[rejectreservation.Command]
	Cancel           shell.CommandHandler[cancelreservation.Command]
	Delete           shell.CommandHandler[deletereservation.Command]

	ForResource shell.QueryHandler[reservationsforresource.Query, reservationsforresource.ReservationsForResource]
	ByRequester shell.QueryHandler[reservationsbyrequester.Query, reservationsbyrequester.ReservationsByRequester]
	ByOwner     shell.QueryHandler[reservationsbyowner.Query, reservationsbyowner.ReservationsByOwner]
	All         shell.QueryHandler[allreservations.Query, allreservations.AllReservations]
	Details     shell.QueryHandler[reservationdetails.Query, reservationdetails.ReservationDetails]
}

// Store is everything the feature handlers need from a reservation store.
type Store interface {
	requestreservation.Store
	approvereservation.Store
	registerresource.Store
	reservationdetails.Store
	reservationsforresource.Store
}

// NewHandlers wires the plain feature handlers to one store.
func NewHandlers(store Store, commandOpts ...shell.RetryOption) Handlers {
	return Handlers{
		RegisterResource: registerresource.NewCommandHandler(store, registerresource.WithRetryOptions(commandOpts...)),
		Request:          requestreservation.NewCommandHandler(store, requestreservation.WithRetryOptions(commandOpts...)),
		Approve:          approvereservation.NewCommandHandler(store, approvereservation.WithRetryOptions(commandOpts...)),
		Reject:           rejectreservation.NewCommandHandler(store, rejectreservation.WithRetryOptions(commandOpts...)),
		Cancel:           cancelreservation.NewCommandHandler(store, cancelreservation.WithRetryOptions(commandOpts...)),
		Delete:           deletereservation.NewCommandHandler(store, deletereservation.WithRetryOptions(commandOpts...)),

		ForResource: reservationsforresource.NewQueryHandler(store),
		ByRequester: reservationsbyrequester.NewQueryHandler(store),
		ByOwner:     reservationsbyowner.NewQueryHandler(store),
		All:         allreservations.NewQueryHandler(store),
		Details:     reservationdetails.NewQueryHandler(store),
	}
}
