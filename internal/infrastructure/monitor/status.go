package monitor

import "time"

type Status struct {
	PostgreSQL    bool      `json:"postgresql"`
	Sessions      bool      `json:"sessions"`
	SessionDriver string    `json:"session_driver"`
	LastCheck     time.Time `json:"last_check"`
}
