package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	citybuf "github.com/tingold/orb-citybuf"
)

const sequence = `{"type":"CityJSON","version":"2.0","transform":{"scale":[0.01,0.01,0.01],"translate":[0,0,0]},"metadata":{"referenceSystem":"https://www.opengis.net/def/crs/EPSG/0/7415"}}
{"type":"CityJSONFeature","id":"f1","CityObjects":{"b1":{"type":"Building","attributes":{"name":"A","height":null},"geographicalExtent":[0,0,0,1,1,1],"geometry":[{"type":"MultiSurface","lod":"1","boundaries":[[[0,1,2]]]}]}},"vertices":[[0,0,0],[100,0,0],[0,100,0]]}
`

func writeInput(t *testing.T, content string) (dir, in string) {
	t.Helper()
	dir = t.TempDir()
	in = filepath.Join(dir, "input.city.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))
	return dir, in
}

func TestConvertAndInspect(t *testing.T) {
	dir, in := writeInput(t, sequence)
	out := filepath.Join(dir, "output.city.fcb")
	metrics := filepath.Join(dir, "metrics.prom")

	err := newApp().Run([]string{"cjseq2cb",
		"--schema", "name:text",
		"--skip-null-attributes",
		"--workers", "2",
		"--metrics-file", metrics,
		"--log-level", "error",
		in, out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, citybuf.Magic[:], data[:8])

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "citybuf_features 1")
	assert.Contains(t, string(prom), "citybuf_schema_columns 2")

	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	require.NoError(t, app.Run([]string{"cjseq2cb", "inspect", out}))

	printed := stdout.String()
	assert.Contains(t, printed, "version:   0.4")
	assert.Contains(t, printed, "features:  1")
	assert.Contains(t, printed, "crs:       EPSG:7415 (version 0)")
	assert.Contains(t, printed, "columns:   2")
	assert.Contains(t, printed, "height")
}

func TestConvert_FailureLeavesNoOutput(t *testing.T) {
	dir, in := writeInput(t, `{"type":"CityJSON","version":"2.0"}`+"\n")
	out := filepath.Join(dir, "output.city.fcb")

	err := newApp().Run([]string{"cjseq2cb", "--log-level", "error", in, out})
	require.ErrorIs(t, err, citybuf.ErrMissingTransform)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "input.city.jsonl", entries[0].Name())
}

func TestConvert_InvalidFlags(t *testing.T) {
	dir, in := writeInput(t, sequence)
	out := filepath.Join(dir, "output.city.fcb")

	err := newApp().Run([]string{"cjseq2cb", "--schema", "name:complex", in, out})
	require.ErrorIs(t, err, citybuf.ErrInvalidSchemaOverride)

	err = newApp().Run([]string{"cjseq2cb", "--log-level", "verbose", in, out})
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestInspect_NotCityBuf(t *testing.T) {
	_, in := writeInput(t, sequence)

	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	err := app.Run([]string{"cjseq2cb", "inspect", in})
	require.ErrorIs(t, err, citybuf.ErrInvalidMagic)
}
