package farm

import (
	"slices"
	"strings"
)

// CropKey identifies a crop type in the catalog and in save files.
type CropKey string

const (
	CropWheat     CropKey = "wheat_soft_red_winter"
	CropSweetCorn CropKey = "corn_sweet"
	CropPotato    CropKey = "potato_russet_burbank"
	CropCarrot    CropKey = "carrot_imperator"
	CropSoybean   CropKey = "soybean"
	CropFieldCorn CropKey = "field_corn"
	CropPumpkin   CropKey = "pumpkin_howden"
	CropTomato    CropKey = "tomato_better_boy"
)

// CropType describes a plantable crop.
type CropType struct {
	Key          CropKey
	Name         string   // Common name - botanical name
	GrowthDays   int      // Days to maturity under ideal conditions
	Seasons      []Season // Valid planting seasons
	NitrogenNeed float64  // 0-1; negative fixes nitrogen into the soil
	WaterNeed    float64  // 0-1
	Value        int      // Base sale price
}

// BaseRate is the growth progress gained per day under ideal conditions.
func (c CropType) BaseRate() float64 {
	if c.GrowthDays <= 0 {
		return 0
	}
	return 1.0 / float64(c.GrowthDays)
}

// PlantableIn reports whether the crop may be sown in s.
func (c CropType) PlantableIn(s Season) bool {
	return slices.Contains(c.Seasons, s)
}

// ShortName drops the botanical suffix ("Corn - Zea mays" -> "Corn").
func (c CropType) ShortName() string {
	if i := strings.Index(c.Name, " - "); i >= 0 {
		return c.Name[:i]
	}
	return c.Name
}

// CropOrder is the catalog order used for menus and default selection.
var CropOrder = []CropKey{
	CropWheat, CropSweetCorn, CropPotato, CropCarrot,
	CropSoybean, CropFieldCorn, CropPumpkin, CropTomato,
}

var catalog = map[CropKey]CropType{
	CropWheat:     {CropWheat, "Wheat - Triticum aestivum 'Soft Red Winter'", 90, []Season{SeasonFall}, 0.4, 0.3, 25},
	CropSweetCorn: {CropSweetCorn, "Corn - Zea mays var. saccharata", 120, []Season{SeasonSpring}, 0.6, 0.5, 35},
	CropPotato:    {CropPotato, "Potato - Solanum tuberosum 'Russet Burbank'", 70, []Season{SeasonSpring}, 0.3, 0.4, 20},
	CropCarrot:    {CropCarrot, "Carrot - Daucus carota 'Imperator'", 60, []Season{SeasonSpring, SeasonSummer}, 0.2, 0.3, 15},
	CropSoybean:   {CropSoybean, "Soybean - Glycine max", 95, []Season{SeasonSpring, SeasonSummer}, -0.3, 0.4, 30},
	CropFieldCorn: {CropFieldCorn, "Field Corn - Zea mays var. indentata", 140, []Season{SeasonSpring}, 0.7, 0.6, 40},
	CropPumpkin:   {CropPumpkin, "Pumpkin - Cucurbita pepo 'Howden'", 110, []Season{SeasonSpring}, 0.5, 0.7, 28},
	CropTomato:    {CropTomato, "Tomato - Solanum lycopersicum 'Better Boy'", 75, []Season{SeasonSpring, SeasonSummer}, 0.6, 0.8, 45},
}

// Crop looks up a crop type by key.
func Crop(key CropKey) (CropType, bool) {
	c, ok := catalog[key]
	return c, ok
}

// CropsFor returns the crops plantable in s, in catalog order.
func CropsFor(s Season) []CropKey {
	var keys []CropKey
	for _, k := range CropOrder {
		if catalog[k].PlantableIn(s) {
			keys = append(keys, k)
		}
	}
	return keys
}
