package format_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fixtureCase struct {
	Name   string   `yaml:"name"`
	Input  string   `yaml:"input"`
	Want   []string `yaml:"want"`
	Forbid []string `yaml:"forbid"`
}

type fixtureFile struct {
	Cases []fixtureCase `yaml:"cases"`
}

func TestFormatFixtures(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/cases.yaml")
	require.NoError(t, err)

	var fixtures fixtureFile
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	require.NotEmpty(t, fixtures.Cases)

	for _, tc := range fixtures.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			got := formatZeek(t, tc.Input)

			for _, want := range tc.Want {
				assert.Contains(t, got, want)
			}

			for _, forbid := range tc.Forbid {
				assert.NotContains(t, got, forbid)
			}
		})
	}
}
