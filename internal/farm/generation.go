// Initial soil generation using layered simplex noise, so neighbouring tiles
// carry correlated soil rather than independent random draws.
package farm

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenerateGrid creates the starting field for a location. The same seed
// always produces the same field.
func GenerateGrid(seed int64, loc Location) Grid {
	qualityNoise := opensimplex.NewNormalized(seed)
	moistureNoise := opensimplex.NewNormalized(seed + 1)
	nitrogenNoise := opensimplex.NewNormalized(seed + 2)

	p := loc.Profile()
	var g Grid
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			fx, fy := float64(x), float64(y)
			g.Tiles[y][x] = Tile{
				X:           x,
				Y:           y,
				SoilQuality: lerp(p.QualityMin, p.QualityMax, octaveNoise(qualityNoise, fx, fy, 3, 0.35, 0.5)),
				Moisture:    lerp(p.MoistureMin, p.MoistureMax, octaveNoise(moistureNoise, fx, fy, 2, 0.3, 0.5)),
				Nitrogen:    lerp(p.NitrogenMin, p.NitrogenMax, octaveNoise(nitrogenNoise, fx, fy, 2, 0.3, 0.5)),
			}
		}
	}
	return g
}

// octaveNoise samples multi-octave normalized noise in [0, 1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxAmp := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxAmp += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return Clamp01(total / maxAmp)
}

func lerp(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}
