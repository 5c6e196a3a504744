// internal/workers/scoring/compute-point-budget/config.go
package computepointbudget

import "time"

type Config struct {
	TotalPoints float64
	CacheTTL    time.Duration
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		TotalPoints: 100,
		CacheTTL:    time.Hour,
		Timeout:     30 * time.Second,
	}
}
