package farm

// Location is a farm site with its own soil profile.
type Location uint8

const (
	LocationChampaign Location = iota
)

// Locations lists the selectable farm sites.
var Locations = []Location{LocationChampaign}

func (l Location) String() string {
	switch l {
	case LocationChampaign:
		return "Champaign, Illinois, USA (40.1164°N, 88.2434°W)"
	default:
		return "Unknown"
	}
}

// SoilProfile bounds the initial tile values for a location.
type SoilProfile struct {
	QualityMin, QualityMax   float64
	MoistureMin, MoistureMax float64
	NitrogenMin, NitrogenMax float64
}

// Profile returns the soil profile for the location.
func (l Location) Profile() SoilProfile {
	switch l {
	case LocationChampaign:
		// Central Illinois prairie soil: rich, moderate moisture.
		return SoilProfile{0.6, 0.9, 0.4, 0.7, 0.5, 0.8}
	default:
		return SoilProfile{0.4, 0.8, 0.3, 0.6, 0.3, 0.7}
	}
}

// FarmConfig is the player's choice on the farm setup screen.
type FarmConfig struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Season   Season   `json:"season"`
}
