package rest

import (
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned without sending a request
// while the circuit breaker is open.
var ErrUnavailable = errors.New("scorch is unavailable")

// errServerSide marks 5xx responses as failures for the breaker.
var errServerSide = errors.New("server side error")

type BreakerSettings struct {
	// Name of the breaker, used in logs.
	Name string

	// The breaker opens when consecutive failures exceed MaxFailures.
	MaxFailures uint32

	// Duration of the open state. After that, one request is sent to try.
	Timeout time.Duration
}

// NewBreaker creates a circuit breaker for requests to Scorch.
//
// Transport errors and 5xx responses are failures.
// State changes are written to logger, if it is not nil.
func NewBreaker(s BreakerSettings, logger *log.Logger) *gobreaker.CircuitBreaker {
	if s.MaxFailures == 0 {
		s.MaxFailures = 3
	}
	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Printf(
				"Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'",
				name, from.String(), to.String(),
			)
		},
	})
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
