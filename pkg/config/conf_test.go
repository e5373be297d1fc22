// 14 Oct 2026

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/tfbind/pkg/model"
	"github.com/andrew-torda/tfbind/pkg/pwm"
)

const minimal = `
collections:
  - file: sites/lexA_ecoli.fa
    weight: 2
  - file: /data/lexA_bsub.fa
    weight: 1
prior: 0.01
`

func TestDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(minimal), "/work")
	require.NoError(t, err)
	require.Len(t, c.Collections, 2)
	assert.Equal(t, "/work/sites/lexA_ecoli.fa", c.Collections[0].File)
	assert.Equal(t, "/data/lexA_bsub.fa", c.Collections[1].File)
	assert.Equal(t, "lexA_ecoli", c.Collections[0].Name)
	assert.Equal(t, []float64{2, 1}, c.Weights())
	require.NotNil(t, c.Alpha)
	assert.Equal(t, model.DefaultAlpha, *c.Alpha)
	assert.Equal(t, 0.01, c.Prior)
	assert.Equal(t, pwm.DefaultPrecision, c.Precision)

	opts := c.Options()
	assert.Nil(t, opts.Background)
	assert.Equal(t, model.RevCompStrand, opts.Strand)
}

func TestFull(t *testing.T) {
	const full = `
collections:
  - file: a.fa
    weight: 1
background: {A: 0.3, c: 0.2, G: 0.2, T: 0.3}
pseudocount: 0.5
alpha: 0
prior: 0.2
precision: 100
strand: complement
`
	c, err := Parse(strings.NewReader(full), ".")
	require.NoError(t, err)
	assert.Equal(t, 0.0, *c.Alpha, "explicit zero alpha is kept")
	assert.Equal(t, 0.5, c.Pseudocount)
	opts := c.Options()
	assert.Equal(t, pwm.Background{'A': 0.3, 'C': 0.2, 'G': 0.2, 'T': 0.3}, opts.Background)
	assert.Equal(t, model.ComplementStrand, opts.Strand)
	assert.Equal(t, 100, opts.Precision)
}

func TestBad(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"no collection": `prior: 0.1`,
		"no file":       "collections:\n  - weight: 1\n",
		"neg weight":    "collections:\n  - {file: a.fa, weight: -1}\nprior: 0.1\n",
		"zero weights":  "collections:\n  - {file: a.fa, weight: 0}\nprior: 0.1\n",
		"prior":         "collections:\n  - {file: a.fa, weight: 1}\nprior: 1\n",
		"no prior":      "collections:\n  - {file: a.fa, weight: 1}\n",
		"alpha":         minimal + "alpha: 1.5\n",
		"strand":        minimal + "strand: sideways\n",
		"background":    minimal + "background: {A: 0.5, C: 0.5}\n",
		"long symbol":   minimal + "background: {AC: 0.25, G: 0.25, T: 0.25, A: 0.25}\n",
		"pseudocount":   minimal + "pseudocount: -1\n",
		"unknown key":   minimal + "weights: [1, 2]\n",
		"not yaml":      "collections: [",
	}
	for name, s := range cases {
		_, err := Parse(strings.NewReader(s), ".")
		assert.Error(t, err, name)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	c1, err := Parse(strings.NewReader(minimal), dir)
	require.NoError(t, err)
	c1.Prior = 0.05
	c1.Strand = "complement"
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, Save(path, c1))

	c2, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	_, err = Load("")
	assert.Error(t, err)
	assert.Error(t, Save(path, nil))
}

func TestLoadRelative(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), fileMode))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sites", "lexA_ecoli.fa"), c.Collections[0].File)
}
