package weather

import (
	"fmt"
	"strings"
)

// Weather represents current weather conditions for a location.
// Constructed by the repository layer from the remote response; immutable
// from the caller's point of view.
type Weather struct {
	City        string
	Temperature float64
	Description string
	IconURL     string
}

// IsValid validates weather data
func (w *Weather) IsValid() error {
	if strings.TrimSpace(w.City) == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if strings.TrimSpace(w.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if w.Temperature < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	return nil
}

// String returns a string representation of the weather
func (w *Weather) String() string {
	return fmt.Sprintf("%s: %.1f°C, %s", w.City, w.Temperature, w.Description)
}
