package view_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/classmeta/internal/typeregistry"
	"github.com/nfrund/classmeta/internal/view"
)

func TestSortByAlias(t *testing.T) {
	in := []typeregistry.Descriptor{
		{Alias: "order10", Class: "a"},
		{Alias: "Customer", Class: "b"},
		{Alias: "order2", Class: "c"},
		{Alias: "customer", Class: "a"},
	}

	got := view.SortByAlias(in)

	aliases := make([]string, len(got))
	for i, d := range got {
		aliases[i] = d.Alias
	}
	assert.Equal(t, []string{"customer", "Customer", "order2", "order10"}, aliases)
	assert.Equal(t, "order10", in[0].Alias, "input must not be reordered")
}

func TestCatalogTable(t *testing.T) {
	var b strings.Builder
	err := view.CatalogTable([]typeregistry.Descriptor{
		{Alias: "Order", Class: "catalog.Order", Sequence: 3,
			Fields: []typeregistry.FieldDescriptor{{Name: "region", Type: "string"}}},
		{Alias: "Party", Class: "catalog.Party", Abstract: true, Sequence: 1},
	}).Render(&b)
	require.NoError(t, err)
	out := b.String()

	assert.Contains(t, out, `hx-get="/fragments/types"`)
	assert.Contains(t, out, `hx-swap="outerHTML"`)
	assert.Contains(t, out, "region string")
	assert.Contains(t, out, "abstract")
	assert.Less(t, strings.Index(out, `data-alias="Order"`), strings.Index(out, `data-alias="Party"`))
}

func TestCatalogTable_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, view.CatalogTable(nil).Render(&b))
	assert.Contains(t, b.String(), "No classes registered.")
	assert.NotContains(t, b.String(), "<table")
}

func TestCatalogPage(t *testing.T) {
	var b strings.Builder
	require.NoError(t, view.CatalogPage("Registered classes", nil).Render(&b))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Registered classes</title>")
	assert.Contains(t, out, "htmx.org")
}
