package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		listOutputFormat, describeOutputFormat = "table", "table"
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "classmeta v"+version+"\n", out)
}

func TestList_JSON(t *testing.T) {
	out, err := run(t, "list", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Types []typeregistry.Descriptor `json:"types"`
		Count int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "Party", got.Types[0].Alias)
}

func TestList_Table(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog.Customer")
}

func TestList_BadFormat(t *testing.T) {
	_, err := run(t, "list", "--format", "yaml")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "Customer")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog.Party")

	out, err = run(t, "describe", "Order", "-f", "json")
	require.NoError(t, err)
	var d typeregistry.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "catalog.Order", d.Class)

	_, err = run(t, "describe", "Nope")
	assert.Error(t, err)
}
