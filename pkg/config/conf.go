// 14 Oct 2026

// Package config reads the yaml description of a binding model: which
// collections of sites go into it, with what weights, and the settings
// for scoring and classification.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/tfbind/pkg/model"
	"github.com/andrew-torda/tfbind/pkg/pwm"
)

const fileMode = 0600

// Source is one file of aligned binding sites and its weight.
type Source struct {
	File   string  `yaml:"file"`
	Weight float64 `yaml:"weight"`
	Name   string  `yaml:"name,omitempty"`
}

// Config is the model description. Zero values are replaced by
// defaults in Load, so a minimal file lists the collections and the
// prior.
type Config struct {
	Collections []Source           `yaml:"collections"`
	Background  map[string]float64 `yaml:"background,omitempty"`
	Pseudocount float64            `yaml:"pseudocount"`
	Alpha       *float64           `yaml:"alpha,omitempty"`
	Prior       float64            `yaml:"prior"`
	Precision   int                `yaml:"precision"`
	Strand      string             `yaml:"strand"`
}

// setDefaults fills in what was left out.
func (c *Config) setDefaults() {
	if c.Alpha == nil {
		a := model.DefaultAlpha
		c.Alpha = &a
	}
	if c.Precision == 0 {
		c.Precision = pwm.DefaultPrecision
	}
	if c.Strand == "" {
		c.Strand = model.RevCompStrand.String()
	}
	for i := range c.Collections {
		if c.Collections[i].Name == "" {
			base := filepath.Base(c.Collections[i].File)
			c.Collections[i].Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
}

// Validate checks the values, not whether the files exist.
func (c *Config) Validate() error {
	if len(c.Collections) == 0 {
		return errors.New("no collections")
	}
	var sum float64
	for i, s := range c.Collections {
		if s.File == "" {
			return errors.Errorf("collection %d has no file", i)
		}
		if s.Weight < 0 {
			return errors.Errorf("collection %s: negative weight %g", s.File, s.Weight)
		}
		sum += s.Weight
	}
	if sum <= 0 {
		return errors.New("collection weights sum to zero")
	}
	if c.Pseudocount < 0 {
		return errors.Errorf("negative pseudocount %g", c.Pseudocount)
	}
	if c.Alpha != nil && (*c.Alpha < 0 || *c.Alpha > 1) {
		return errors.Errorf("alpha %g not in [0, 1]", *c.Alpha)
	}
	if c.Prior == 0 {
		return errors.New("prior required")
	}
	if !(c.Prior > 0 && c.Prior < 1) {
		return errors.Errorf("prior %g not in (0, 1)", c.Prior)
	}
	if c.Precision < 0 {
		return errors.Errorf("precision %d", c.Precision)
	}
	if _, err := model.ParseStrand(c.Strand); err != nil {
		return err
	}
	if c.Background != nil {
		bg, err := c.background()
		if err != nil {
			return err
		}
		if err := bg.Check(pwm.DNA); err != nil {
			return errors.Wrap(err, "config")
		}
	}
	return nil
}

// background converts the yaml map, keyed by one letter strings.
func (c *Config) background() (pwm.Background, error) {
	bg := make(pwm.Background, len(c.Background))
	for k, v := range c.Background {
		if len(k) != 1 {
			return nil, errors.Errorf("background symbol %q is not one letter", k)
		}
		bg[strings.ToUpper(k)[0]] = v
	}
	return bg, nil
}

// Options returns the model options. Call after Validate.
func (c *Config) Options() *model.Options {
	opts := &model.Options{Precision: c.Precision}
	if c.Background != nil {
		opts.Background, _ = c.background()
	}
	opts.Strand, _ = model.ParseStrand(c.Strand)
	return opts
}

// Weights returns the collection weights in order.
func (c *Config) Weights() []float64 {
	w := make([]float64, len(c.Collections))
	for i, s := range c.Collections {
		w[i] = s.Weight
	}
	return w
}

// Parse reads a config from r. Relative file names are joined to dir.
func Parse(r io.Reader, dir string) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty config")
		}
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i, s := range c.Collections {
		if !filepath.IsAbs(s.File) {
			c.Collections[i].File = filepath.Join(dir, s.File)
		}
	}
	return &c, nil
}

// Load reads and checks the config file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file required")
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer fp.Close()
	c, err := Parse(fp, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	log.Debug().Str("path", path).Int("ncollection", len(c.Collections)).Msg("read config")
	return c, nil
}

// Save writes c as yaml.
func Save(path string, c *Config) error {
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}
