package density

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// NoiseConfig holds the parameters shared by the noise nodes. The zero value of each field is replaced with
// its default by withDefaults.
type NoiseConfig struct {
	// Frequency is the frequency of the first octave. Defaults to 1/64.
	Frequency float64
	// Amplitude scales the final value of the noise, which is in [-Amplitude, Amplitude]. Defaults to 1.
	Amplitude float64
	// Octaves is the amount of layers of noise summed. Defaults to 1.
	Octaves int
	// Persistence is the factor the amplitude of every next octave is multiplied with. Defaults to 0.5.
	Persistence float64
	// Lacunarity is the factor the frequency of every next octave is multiplied with. Defaults to 2.
	Lacunarity float64
	// Flat makes the noise two-dimensional, ignoring the Y component of positions.
	Flat bool
}

func (c NoiseConfig) withDefaults() NoiseConfig {
	if c.Frequency == 0 {
		c.Frequency = 1.0 / 64
	}
	if c.Amplitude == 0 {
		c.Amplitude = 1
	}
	if c.Octaves <= 0 {
		c.Octaves = 1
	}
	if c.Persistence == 0 {
		c.Persistence = 0.5
	}
	if c.Lacunarity == 0 {
		c.Lacunarity = 2
	}
	return c
}

func (c NoiseConfig) validate() error {
	if !finite(c.Frequency, c.Amplitude, c.Persistence, c.Lacunarity) {
		return ErrInvalidParameter
	}
	if c.Frequency < 0 || c.Persistence < 0 || c.Lacunarity < 0 {
		return fmt.Errorf("density: noise frequency, persistence and lacunarity must not be negative")
	}
	if c.Octaves > 16 {
		return fmt.Errorf("density: at most 16 noise octaves are supported, got %d", c.Octaves)
	}
	return nil
}

// Simplex is fractal OpenSimplex noise.
type Simplex struct {
	noise opensimplex.Noise
	conf  NoiseConfig
	norm  float64
}

// NewSimplex returns a Simplex noise node seeded with the seed passed.
func NewSimplex(seed int64, conf NoiseConfig) (*Simplex, error) {
	conf = conf.withDefaults()
	if err := conf.validate(); err != nil {
		return nil, err
	}
	var norm, amp float64 = 0, 1
	for i := 0; i < conf.Octaves; i++ {
		norm += amp
		amp *= conf.Persistence
	}
	return &Simplex{noise: opensimplex.New(seed), conf: conf, norm: norm}, nil
}

// Value ...
func (s *Simplex) Value(pos mgl64.Vec3) float64 {
	var v float64
	freq, amp := s.conf.Frequency, 1.0
	for i := 0; i < s.conf.Octaves; i++ {
		p := pos.Mul(freq)
		if s.conf.Flat {
			v += amp * s.noise.Eval2(p.X(), p.Z())
		} else {
			v += amp * s.noise.Eval3(p.X(), p.Y(), p.Z())
		}
		freq *= s.conf.Lacunarity
		amp *= s.conf.Persistence
	}
	return v / s.norm * s.conf.Amplitude
}

// Perlin is classic Perlin noise. Octaves are summed by the underlying implementation, using the inverse
// of Persistence as its alpha and Lacunarity as its beta.
type Perlin struct {
	noise *perlin.Perlin
	conf  NoiseConfig
}

// NewPerlin returns a Perlin noise node seeded with the seed passed.
func NewPerlin(seed int64, conf NoiseConfig) (*Perlin, error) {
	conf = conf.withDefaults()
	if err := conf.validate(); err != nil {
		return nil, err
	}
	if conf.Persistence == 0 {
		return nil, fmt.Errorf("density: perlin persistence must be greater than 0")
	}
	return &Perlin{noise: perlin.NewPerlin(1/conf.Persistence, conf.Lacunarity, int32(conf.Octaves), seed), conf: conf}, nil
}

// Value ...
func (p *Perlin) Value(pos mgl64.Vec3) float64 {
	q := pos.Mul(p.conf.Frequency)
	if p.conf.Flat {
		return p.noise.Noise2D(q.X(), q.Z()) * p.conf.Amplitude
	}
	return p.noise.Noise3D(q.X(), q.Y(), q.Z()) * p.conf.Amplitude
}
