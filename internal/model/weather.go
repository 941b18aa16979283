package model

// Weather is the current conditions for a city.
type Weather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
	City        string  `json:"city"`
}

// Condition maps a WMO weather code to a coarse label.
func (w Weather) Condition() string {
	switch code := w.WeatherCode; {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code >= 51 && code <= 67:
		return "rain"
	case code >= 95:
		return "storm"
	default:
		return "cloudy"
	}
}
