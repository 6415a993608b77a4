package config

import (
	"atscore/internal/errors"

	"github.com/hashicorp/vault/api"
	"github.com/sony/gobreaker/v2"
)

// secretBreaker wraps Vault secret reads with a circuit breaker so that a
// sealed or unreachable Vault fails fast instead of piling up requests.
type secretBreaker struct {
	cb *gobreaker.CircuitBreaker[*api.Secret]
}

// newSecretBreaker builds a breaker from configuration. A disabled breaker
// returns nil; Execute treats nil as a pass-through.
func newSecretBreaker(cfg CircuitBreakerConfig, logger *errors.Logger) *secretBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "vault-secrets",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String(),
					"max_requests", cfg.MaxRequests,
					"failure_threshold", cfg.FailureThreshold)
			}
		},
	}

	return &secretBreaker{
		cb: gobreaker.NewCircuitBreaker[*api.Secret](settings),
	}
}

// Execute runs fn under the breaker, or directly when the breaker is disabled.
func (sb *secretBreaker) Execute(fn func() (*api.Secret, error)) (*api.Secret, error) {
	if sb == nil || sb.cb == nil {
		return fn()
	}
	return sb.cb.Execute(fn)
}

// IsHealthy returns true if the breaker is closed or disabled.
func (sb *secretBreaker) IsHealthy() bool {
	if sb == nil || sb.cb == nil {
		return true
	}
	return sb.cb.State() == gobreaker.StateClosed
}

// Stats reports breaker state for the stats endpoint.
func (sb *secretBreaker) Stats() map[string]any {
	if sb == nil || sb.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    sb.cb.Name(),
		"state":   sb.cb.State().String(),
		"counts":  sb.cb.Counts(),
		"enabled": true,
	}
}

// BreakerStats exposes the secret breaker state of this client.
func (vc *VaultClient) BreakerStats() map[string]any {
	if vc == nil {
		return map[string]any{"enabled": false}
	}
	return vc.breaker.Stats()
}

// BreakerHealthy reports whether secret reads are currently allowed.
func (vc *VaultClient) BreakerHealthy() bool {
	if vc == nil {
		return true
	}
	return vc.breaker.IsHealthy()
}
