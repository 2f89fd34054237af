// Package config loads the arena configuration of a simulation.
//
// Values are layered: defaults, then the YAML file, then the .env file, then the
// process environment (PARTICLES_* variables). The result is validated.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/akmonengine/particles/arena"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "PARTICLES_"

// Load reads the configuration. An empty path skips the YAML file.
// envFiles default to ".env", missing env files are ignored.
func Load(path string, envFiles ...string) (arena.Config, error) {
	c := arena.Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return arena.Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		c, err = LoadYAML(f, c)
		if err != nil {
			return arena.Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	dotenv, err := readEnvFiles(envFiles...)
	if err != nil {
		return arena.Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok && value != ""
	}
	if err := applyEnv(&c, lookup); err != nil {
		return arena.Config{}, err
	}

	if err := c.Validate(); err != nil {
		return arena.Config{}, err
	}

	return c, nil
}

// LoadYAML decodes r over base. Unknown keys are rejected, an empty document keeps base.
func LoadYAML(r io.Reader, base arena.Config) (arena.Config, error) {
	c := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return arena.Config{}, err
	}
	return c, nil
}

func readEnvFiles(files ...string) (map[string]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	values := make(map[string]string)
	for _, file := range files {
		read, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", file, err)
		}
		// first file wins, as godotenv.Load does
		for k, v := range read {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}

	return values, nil
}

func applyEnv(c *arena.Config, lookup func(string) (string, bool)) error {
	floats := []struct {
		key   string
		value *float64
	}{
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"PARTICLE_RADIUS", &c.ParticleRadius},
		{"PIXELS_PER_METER", &c.PixelsPerMeter},
		{"GRAVITY", &c.Gravity},
		{"DYNAMIC_FRICTION", &c.DynamicFriction},
		{"BOUNCE_COEFFICIENT", &c.BounceCoefficient},
	}
	for _, f := range floats {
		raw, ok := lookup(EnvPrefix + f.key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parse %s%s: %w", EnvPrefix, f.key, err)
		}
		*f.value = v
	}

	if raw, ok := lookup(EnvPrefix + "MAX_BOUNCE_ITERATIONS"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %sMAX_BOUNCE_ITERATIONS: %w", EnvPrefix, err)
		}
		c.MaxBounceIterations = v
	}

	return nil
}
