package simulator

import "github.com/itsatony/sensordash/internal/models"

const fallbackIcon = "📡"

var defaultProfiles = []models.SensorProfile{
	{Type: models.Gas, Unit: "ppm", Icon: "🌬️", NormalMin: 0, NormalMax: 50},
	{Type: models.Temperature, Unit: "°C", Icon: "🌡️", NormalMin: 18, NormalMax: 25},
	{Type: models.Humidity, Unit: "%", Icon: "💧", NormalMin: 40, NormalMax: 60},
	{Type: models.Pressure, Unit: "kPa", Icon: "📊", NormalMin: 95, NormalMax: 105},
	{Type: models.Light, Unit: "lux", Icon: "💡", NormalMin: 200, NormalMax: 800},
	{Type: models.Motion, Unit: "events/min", Icon: "🏃", NormalMin: 0, NormalMax: 5},
}

// DefaultProfiles returns a copy of the built-in sensor catalog.
func DefaultProfiles() []models.SensorProfile {
	out := make([]models.SensorProfile, len(defaultProfiles))
	copy(out, defaultProfiles)
	return out
}

func withCatalogDefaults(profiles []models.SensorProfile) []models.SensorProfile {
	out := make([]models.SensorProfile, len(profiles))
	for i, p := range profiles {
		if p.Unit == "" {
			p.Unit = unitFor(p.Type)
		}
		if p.Icon == "" {
			p.Icon = iconFor(p.Type)
		}
		out[i] = p
	}
	return out
}

// unitFor looks up the unit of a catalog type, "" when unknown.
func unitFor(t models.SensorType) string {
	for _, p := range defaultProfiles {
		if p.Type == t {
			return p.Unit
		}
	}
	return ""
}

func iconFor(t models.SensorType) string {
	for _, p := range defaultProfiles {
		if p.Type == t {
			return p.Icon
		}
	}
	return fallbackIcon
}
