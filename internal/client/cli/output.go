package cli

import (
	"errors"

	"github.com/avolkovs/flixcli/internal/client/gateway"
	"github.com/avolkovs/flixcli/internal/client/services"
)

// reason turns a service or gateway error into a user-facing message.
// Server-supplied messages are shown verbatim; network problems are
// reported as transient.
func reason(err error) string {
	var se *gateway.StatusError
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.Is(err, services.ErrValidation):
		return err.Error()
	case errors.As(err, &se):
		if se.Kind == gateway.KindNetwork {
			return "server unreachable, please try again"
		}
		return se.Message
	default:
		return err.Error()
	}
}
