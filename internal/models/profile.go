package models

import (
	"fmt"
	"time"
)

// Profile is one depth-indexed set of readings taken by a float on a dive cycle.
// Readings that the float did not report are nil.
type Profile struct {
	Depth       float64  `json:"depth"`                 // meters
	Temperature *float64 `json:"temperature,omitempty"` // °C
	Salinity    *float64 `json:"salinity,omitempty"`    // PSU
	Oxygen      *float64 `json:"oxygen,omitempty"`
	Chlorophyll *float64 `json:"chlorophyll,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	FloatID     string   `json:"floatId"`
	Timestamp   string   `json:"timestamp"`
}

func (p Profile) Validate() error {
	if p.Depth < 0 {
		return fmt.Errorf("profile for float %s: negative depth %v", p.FloatID, p.Depth)
	}
	if p.FloatID == "" {
		return fmt.Errorf("profile float id is required")
	}
	if _, err := time.Parse(time.RFC3339, p.Timestamp); err != nil {
		return fmt.Errorf("profile for float %s: parsing timestamp: %w", p.FloatID, err)
	}
	return nil
}

// Reading returns a pointer to v so optional profile readings can be set inline
func Reading(v float64) *float64 {
	return &v
}
