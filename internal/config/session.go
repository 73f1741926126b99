package config

import (
	"fmt"
	"time"
)

type Session struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func NewSession() (*Session, error) {
	ttl, err := lookupDuration("SESSION_TTL", time.Minute*30)
	if err != nil {
		return nil, err
	}

	sweep, err := lookupDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 || sweep <= 0 {
		return nil, fmt.Errorf("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}

	return &Session{TTL: ttl, SweepInterval: sweep}, nil
}
