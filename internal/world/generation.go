// Ore field generation using layered simplex noise.
// Only the sandbox referee uses it; live matches get their ore from the snapshot.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds ore field generation parameters.
type GenConfig struct {
	Width     int     // Grid width (30 in ranked matches)
	Height    int     // Grid height (15 in ranked matches)
	Seed      int64   // Random seed (0 = random)
	MinX      int     // No ore closer to the home column than this
	OreLevel  float64 // Noise threshold above which a cell holds ore (0.0–1.0)
	MaxOre    int     // Ore in the richest cell
	DepthBias float64 // How much deeper columns favour ore (0 = none)
}

// DefaultGenConfig returns a field close to what ranked matches look like.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:     30,
		Height:    15,
		MinX:      4,
		OreLevel:  0.62,
		MaxOre:    3,
		DepthBias: 0.15,
	}
}

// Generate creates a fully known map: every cell carries its true ore amount.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	oreNoise := opensimplex.NewNormalized(seed)
	richNoise := opensimplex.NewNormalized(seed + 1)

	m := NewMap(cfg.Width, cfg.Height)
	for _, cell := range m.Cells() {
		cell.Ore = 0
		if cell.X < cfg.MinX {
			continue
		}
		x, y := float64(cell.X), float64(cell.Y)

		// Veins: ore clusters where the noise peaks, a little richer deeper in.
		v := octaveNoise(oreNoise, x, y, 3, 0.18, 0.5)
		v += cfg.DepthBias * float64(cell.X) / float64(cfg.Width)
		if v < cfg.OreLevel {
			continue
		}

		richness := octaveNoise(richNoise, x, y, 2, 0.25, 0.5)
		amount := int(math.Ceil(richness * float64(cfg.MaxOre)))
		if amount < 1 {
			amount = 1
		}
		if amount > cfg.MaxOre {
			amount = cfg.MaxOre
		}
		cell.Ore = amount
	}
	return m
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TotalOre sums every known ore amount on the map.
func TotalOre(m *Map) int {
	total := 0
	for _, c := range m.Cells() {
		if c.Ore > 0 {
			total += c.Ore
		}
	}
	return total
}
