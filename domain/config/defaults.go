package config

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

func defaultCores() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

func defaultSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.BigEndian.Uint64(buf[:]) & 0x7fffffffffffffff)
}

// Defaults holds the environment-driven knobs loaded before the
// caller's explicit SimulationConfig fields are applied.
type Defaults struct {
	NCores     int
	RandSeed   int64
	OutputRoot string
	CatalogDSN string
}

// LoadDefaults reads path (a .env-style file) via godotenv if it exists —
// absence is not an error — then reads EAMLAB_N_CORES, EAMLAB_RAND_SEED,
// EAMLAB_OUTPUT_ROOT and EAMLAB_CATALOG_DSN from the process environment.
func LoadDefaults(path string) (Defaults, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if loadErr := godotenv.Load(path); loadErr != nil {
				return Defaults{}, loadErr
			}
		}
	}
	d := Defaults{}
	if v := os.Getenv("EAMLAB_N_CORES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.NCores = n
		}
	}
	if v := os.Getenv("EAMLAB_RAND_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			d.RandSeed = n
		}
	}
	d.OutputRoot = os.Getenv("EAMLAB_OUTPUT_ROOT")
	d.CatalogDSN = os.Getenv("EAMLAB_CATALOG_DSN")
	return d, nil
}

// Apply fills any zero-valued knob in c from d, without overriding
// fields the caller already set explicitly.
func (d Defaults) Apply(c *SimulationConfig) {
	if c.NCores == 0 {
		c.NCores = d.NCores
	}
	if c.RandSeed == 0 {
		c.RandSeed = d.RandSeed
	}
}
