package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker is open")

type Settings struct {
	Name string
	// MaxFailures consecutive failures open the breaker.
	MaxFailures int
	// HalfOpenRequests may pass while probing a recovering dependency.
	HalfOpenRequests int
	Interval         time.Duration
	Timeout          time.Duration
}

type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	maxFailures := settings.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	halfOpen := settings.HalfOpenRequests
	if halfOpen <= 0 {
		halfOpen = 1
	}

	return &CircuitBreaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        settings.Name,
			MaxRequests: uint32(halfOpen),
			Interval:    settings.Interval,
			Timeout:     settings.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(maxFailures)
			},
		}),
	}
}

// Execute runs fn unless the breaker is open. Errors for which ignore
// returns true are passed back without counting as failures.
func (b *CircuitBreaker) Execute(fn func() error, ignore ...func(error) bool) error {
	var passthrough error
	_, err := b.cb.Execute(func() (interface{}, error) {
		err := fn()
		for _, skip := range ignore {
			if err != nil && skip(err) {
				passthrough = err
				return nil, nil
			}
		}
		return nil, err
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	if err != nil {
		return err
	}
	return passthrough
}

func (b *CircuitBreaker) State() string {
	return b.cb.State().String()
}
