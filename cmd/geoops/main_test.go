package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoops/internal/ops"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		_ = runCmd.Flags().Set("param", "")
		for _, name := range []string{"config", "log-level", "log-file"} {
			_ = rootCmd.PersistentFlags().Set(name, "")
		}
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeLine(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "line.wkt")
	require.NoError(t, os.WriteFile(p, []byte("LINESTRING (0 0, 1 0.01, 2 0, 3 5, 4 0)"), 0o644))
	return p
}

func TestRunSimplify(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "geoops.log")
	out, err := execute(t, "run", ops.SimplifyName, writeLine(t), "--param", "0.1", "--log-file", logFile)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	c, ok := fc.Features[0].Geometry.(orb.Collection)
	require.True(t, ok)
	assert.Equal(t, orb.Collection{orb.LineString{{0, 0}, {2, 0}, {3, 5}, {4, 0}}}, c)

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "operation done")
}

func TestRunInvalidParam(t *testing.T) {
	_, err := execute(t, "run", ops.SimplifyName, writeLine(t), "--param", "abc", "--log-level", "error")
	assert.ErrorIs(t, err, ops.ErrNotCommitted)
}

func TestRunUnknownOperation(t *testing.T) {
	_, err := execute(t, "run", "Buffer", writeLine(t), "--log-level", "error")
	assert.ErrorIs(t, err, ops.ErrUnknownOperation)
}

func TestOpsCommand(t *testing.T) {
	out, err := execute(t, "ops", writeLine(t), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "kinds: LineString")
	assert.Contains(t, out, ops.SimplifyName)
	assert.Contains(t, out, ops.BoundingRectName)
}
