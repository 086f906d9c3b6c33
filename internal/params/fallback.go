package params

import "git.home.luguber.info/inful/docsite/internal/routes"

// fallbackSchemaNames is the hand-maintained list of schema pages used when
// the API specification cannot be read. Keep in sync with the published
// schemas section when new schemas ship.
var fallbackSchemaNames = []string{
	"ingredient",
	"nutrient",
	"product_attribute_groups",
	"product_base",
	"product_ecoscore",
	"product_environmental_score",
	"product_extended",
	"product_images",
	"product_knowledge_panels",
	"product_languages_codes",
	"product_metadata",
	"product_misc",
	"product_nutriscore",
	"product_nutrition",
	"product_packagings",
	"product_quality",
	"product_tags",
	"product_taxonomies",
}

// FallbackSchemaRoutes returns the static schema route list, bare index
// first. Always non-empty so enumeration can never lose the schema section.
func FallbackSchemaRoutes() []routes.Route {
	out := make([]routes.Route, 0, len(fallbackSchemaNames)+1)
	out = append(out, routes.SchemaPrefix.Clone())
	for _, name := range fallbackSchemaNames {
		out = append(out, schemaRoute(name))
	}
	return out
}
