package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		float   Float
		wantErr string
	}{
		{
			name:  "valid active float",
			float: Float{ID: "IN123", Lat: 8.5, Lon: 73.2, Status: FloatStatusActive, LastObservation: "2024-01-15"},
		},
		{
			name:  "valid inactive float without observation date",
			float: Float{ID: "GL003", Lat: -10.0, Lon: 70.0, Status: FloatStatusInactive},
		},
		{
			name:    "missing id",
			float:   Float{Lat: 8.5, Lon: 73.2, Status: FloatStatusActive},
			wantErr: "float id is required",
		},
		{
			name:    "latitude out of range",
			float:   Float{ID: "IN123", Lat: 91, Lon: 73.2, Status: FloatStatusActive},
			wantErr: "latitude",
		},
		{
			name:    "longitude out of range",
			float:   Float{ID: "IN123", Lat: 8.5, Lon: -181, Status: FloatStatusActive},
			wantErr: "longitude",
		},
		{
			name:    "unknown status",
			float:   Float{ID: "IN123", Lat: 8.5, Lon: 73.2, Status: FloatStatus("drifting")},
			wantErr: "invalid float status",
		},
		{
			name:    "malformed observation date",
			float:   Float{ID: "IN123", Lat: 8.5, Lon: 73.2, Status: FloatStatusActive, LastObservation: "15/01/2024"},
			wantErr: "parsing last observation",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.float.Validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFloatIsActive(t *testing.T) {
	assert.True(t, Float{Status: FloatStatusActive}.IsActive())
	assert.False(t, Float{Status: FloatStatusInactive}.IsActive())
}
