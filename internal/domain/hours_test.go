package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHours(t *testing.T) {
	tests := []struct {
		name           string
		hours          Hours
		expectedState  HoursState
		expectedLoaded bool
		expectedValue  float64
		expectedKnown  bool
		expectedString string
	}{
		{
			name:           "unloaded",
			hours:          UnloadedHours(),
			expectedState:  HoursUnloaded,
			expectedLoaded: false,
			expectedString: "?",
		},
		{
			name:           "explicitly none",
			hours:          NoHours(),
			expectedState:  HoursNone,
			expectedLoaded: true,
			expectedString: "-",
		},
		{
			name:           "known value",
			hours:          HoursOf(8.5),
			expectedState:  HoursSet,
			expectedLoaded: true,
			expectedValue:  8.5,
			expectedKnown:  true,
			expectedString: "8.50",
		},
		{
			name:           "known zero is still a value",
			hours:          HoursOf(0),
			expectedState:  HoursSet,
			expectedLoaded: true,
			expectedKnown:  true,
			expectedString: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedState, tt.hours.State())
			assert.Equal(t, tt.expectedLoaded, tt.hours.Loaded())

			value, known := tt.hours.Value()
			assert.Equal(t, tt.expectedKnown, known)
			assert.Equal(t, tt.expectedValue, value)
			assert.Equal(t, tt.expectedString, tt.hours.String())
		})
	}
}
