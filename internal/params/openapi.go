package params

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"git.home.luguber.info/inful/docsite/internal/routes"
)

// SchemaRoutes parses the OpenAPI document at specPath and derives one route
// per named schema under the schemas section, plus the bare schemas index
// route. Schema names are lower-cased with dashes mapped to underscores.
func SchemaRoutes(specPath string) ([]routes.Route, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("load api specification %s: %w", specPath, err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("api specification %s has no schema definitions", specPath)
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, normalizeSchemaName(name))
	}
	sort.Strings(names)

	out := make([]routes.Route, 0, len(names)+1)
	out = append(out, routes.SchemaPrefix.Clone())
	for _, name := range names {
		out = append(out, schemaRoute(name))
	}
	return out, nil
}

func normalizeSchemaName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

func schemaRoute(name string) routes.Route {
	return append(routes.SchemaPrefix.Clone(), "schemas", name)
}
