package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_HOST", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		nearbyCategories = nil
		nearbyRadius = 0
		nearbySort = "distance"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNearbyAgainstSeedData(t *testing.T) {
	out, err := execute(t, "nearby", "--lat", "43.6532", "--lng", "-79.3832", "--radius", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "DISTANCE")
	assert.Contains(t, out, "26 of 26 within 500.0 km")
}

func TestNearbyValidation(t *testing.T) {
	_, err := execute(t, "nearby", "--lat", "95", "--lng", "-79.38")
	assert.Error(t, err)

	_, err = execute(t, "nearby", "--lat", "43.6", "--lng", "-79.38", "--category", "bogus")
	assert.ErrorContains(t, err, "unknown category")

	_, err = execute(t, "nearby", "--lat", "43.6", "--lng", "-79.38", "--sort", "rating")
	assert.Error(t, err)
}

func TestResolveStaticCode(t *testing.T) {
	out, err := execute(t, "resolve", "M5H 2N2")
	require.NoError(t, err)
	assert.Equal(t, "43.653400,-79.383900\n", out)
}

func TestSeedRequiresDatabase(t *testing.T) {
	_, err := execute(t, "seed")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
