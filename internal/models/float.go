package models

import (
	"fmt"
	"time"
)

type FloatStatus string

const (
	FloatStatusActive   FloatStatus = "active"
	FloatStatusInactive FloatStatus = "inactive"
)

// Float represents a single ARGO profiling float as reported by a data source
type Float struct {
	ID              string      `json:"id"`
	Lat             float64     `json:"lat"`
	Lon             float64     `json:"lon"`
	Status          FloatStatus `json:"status"`
	LastObservation string      `json:"lastObservation"` // YYYY-MM-DD
	Parameters      []string    `json:"parameters,omitempty"`
}

func (s FloatStatus) Validate() error {
	switch s {
	case FloatStatusActive, FloatStatusInactive:
		return nil
	default:
		return fmt.Errorf("invalid float status: %q", s)
	}
}

// Validate checks that the float carries a usable identifier, position and status
func (f Float) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("float id is required")
	}
	if f.Lat < -90 || f.Lat > 90 {
		return fmt.Errorf("float %s: latitude %v out of range", f.ID, f.Lat)
	}
	if f.Lon < -180 || f.Lon > 180 {
		return fmt.Errorf("float %s: longitude %v out of range", f.ID, f.Lon)
	}
	if err := f.Status.Validate(); err != nil {
		return fmt.Errorf("float %s: %w", f.ID, err)
	}
	if f.LastObservation != "" {
		if _, err := time.Parse(DateLayout, f.LastObservation); err != nil {
			return fmt.Errorf("float %s: parsing last observation: %w", f.ID, err)
		}
	}
	return nil
}

// IsActive reports whether the float is still transmitting
func (f Float) IsActive() bool {
	return f.Status == FloatStatusActive
}
