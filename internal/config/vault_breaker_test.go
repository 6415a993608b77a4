package config

import (
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/vault/api"
)

func TestSecretBreakerDisabled(t *testing.T) {
	// A disabled breaker must be nil and behave as a pass-through
	sb := newSecretBreaker(CircuitBreakerConfig{Enabled: false}, nil)
	if sb != nil {
		t.Fatal("Breaker should be nil when disabled")
	}

	called := false
	secret, err := sb.Execute(func() (*api.Secret, error) {
		called = true
		return &api.Secret{RequestID: "test"}, nil
	})
	if err != nil {
		t.Fatalf("Pass-through execute failed: %v", err)
	}
	if !called {
		t.Error("Pass-through should invoke the function")
	}
	if secret == nil || secret.RequestID != "test" {
		t.Error("Pass-through should return the function result unchanged")
	}

	if !sb.IsHealthy() {
		t.Error("Disabled breaker should report healthy")
	}

	stats := sb.Stats()
	enabled, ok := stats["enabled"].(bool)
	if !ok {
		t.Fatal("Breaker enabled status not found")
	}
	if enabled {
		t.Error("Disabled breaker stats should report enabled=false")
	}
}

func TestSecretBreakerEnabled(t *testing.T) {
	cfg := CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}

	sb := newSecretBreaker(cfg, nil)
	if sb == nil {
		t.Fatal("Breaker should not be nil when enabled")
	}

	stats := sb.Stats()

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Breaker name not found")
	}
	if name != "vault-secrets" {
		t.Errorf("Expected breaker name 'vault-secrets', got '%s'", name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Breaker state not found")
	}
	if state != "closed" {
		t.Errorf("Expected initial state 'closed', got '%s'", state)
	}

	if !sb.IsHealthy() {
		t.Error("Breaker should be healthy initially")
	}
}

func TestSecretBreakerTripsOnFailures(t *testing.T) {
	cfg := CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}

	sb := newSecretBreaker(cfg, nil)
	if sb == nil {
		t.Fatal("Breaker should not be nil when enabled")
	}

	sealed := errors.New("vault is sealed")
	for i := 0; i < 3; i++ {
		_, err := sb.Execute(func() (*api.Secret, error) {
			return nil, sealed
		})
		if err == nil {
			t.Fatalf("Execute %d should propagate the failure", i)
		}
	}

	if sb.IsHealthy() {
		t.Error("Breaker should be unhealthy after consecutive failures")
	}

	// Once open, Execute must fail fast without calling the function
	called := false
	_, err := sb.Execute(func() (*api.Secret, error) {
		called = true
		return &api.Secret{}, nil
	})
	if err == nil {
		t.Error("Open breaker should reject requests")
	}
	if called {
		t.Error("Open breaker should not invoke the function")
	}

	stats := sb.Stats()
	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Breaker state not found")
	}
	if state != "open" {
		t.Errorf("Expected state 'open' after trip, got '%s'", state)
	}
}

func TestSecretBreakerSuccessKeepsClosed(t *testing.T) {
	cfg := CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}

	sb := newSecretBreaker(cfg, nil)

	for i := 0; i < 5; i++ {
		secret, err := sb.Execute(func() (*api.Secret, error) {
			return &api.Secret{RequestID: "ok"}, nil
		})
		if err != nil {
			t.Fatalf("Execute %d failed: %v", i, err)
		}
		if secret.RequestID != "ok" {
			t.Errorf("Execute %d returned wrong secret", i)
		}
	}

	if !sb.IsHealthy() {
		t.Error("Breaker should stay healthy after successes")
	}
}
