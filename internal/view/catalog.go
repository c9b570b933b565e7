// Package view renders the HTML catalogue of registered classes.
package view

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

// FragmentPath serves the catalogue table on its own for htmx polling.
const FragmentPath = "/fragments/types"

const htmxURL = "https://unpkg.com/htmx.org@2.0.4"

// RefreshInterval is how often the page polls for new classes.
var RefreshInterval = "every 5s"

// SortByAlias returns the descriptors ordered by alias using locale-aware
// collation, with ties broken by class name. The input is not modified.
func SortByAlias(types []typeregistry.Descriptor) []typeregistry.Descriptor {
	sorted := slices.Clone(types)
	col := collate.New(language.English, collate.IgnoreCase, collate.Numeric)
	slices.SortStableFunc(sorted, func(a, b typeregistry.Descriptor) int {
		if c := col.CompareString(a.Alias, b.Alias); c != 0 {
			return c
		}
		return strings.Compare(a.Class, b.Class)
	})
	return sorted
}

// CatalogPage is the full catalogue document.
func CatalogPage(title string, types []typeregistry.Descriptor) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			html.Script(html.Src(htmxURL)),
		},
		Body: []g.Node{
			html.Main(
				html.Class("container mx-auto p-8"),
				html.H1(html.Class("text-2xl font-bold mb-4"), g.Text(title)),
				CatalogTable(types),
			),
		},
	})
}

// CatalogTable lists the registered classes. It replaces itself with a
// fresh copy on every refresh tick.
func CatalogTable(types []typeregistry.Descriptor) g.Node {
	sorted := SortByAlias(types)
	return html.Div(
		html.ID("catalog"),
		hx.Get(FragmentPath),
		hx.Trigger(RefreshInterval),
		hx.Swap("outerHTML"),
		g.If(len(sorted) == 0,
			html.P(html.Class("text-gray-500"), g.Text("No classes registered.")),
		),
		g.If(len(sorted) > 0,
			html.Table(
				html.Class("min-w-full text-sm"),
				html.THead(html.Tr(
					html.Th(g.Text("Alias")),
					html.Th(g.Text("Class")),
					html.Th(g.Text("Superclass")),
					html.Th(g.Text("Fields")),
					html.Th(g.Text("Seq")),
				)),
				html.TBody(g.Map(sorted, typeRow)),
			),
		),
	)
}

func typeRow(d typeregistry.Descriptor) g.Node {
	fields := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = f.Name + " " + f.Type
	}
	return html.Tr(
		g.Attr("data-alias", d.Alias),
		html.Td(
			html.A(html.Href("/api/types/"+d.Alias), g.Text(d.Alias)),
			g.If(d.Abstract, html.Span(html.Class("ml-2 text-xs italic"), g.Text("abstract"))),
		),
		html.Td(g.Text(d.Class)),
		html.Td(g.Text(d.Superclass)),
		html.Td(g.Text(strings.Join(fields, ", "))),
		html.Td(g.Text(strconv.FormatUint(d.Sequence, 10))),
	)
}
