package routes

import (
	"regexp"
	"strings"
)

// Namespace is the mutually exclusive content category a route belongs to.
type Namespace string

const (
	NamespaceReport       Namespace = "report"
	NamespaceSchema       Namespace = "schema"
	NamespaceAPIReference Namespace = "api-reference"
	NamespaceGeneralDoc   Namespace = "general-doc"
)

// Fixed namespace markers inherited from the upstream content layout.
var (
	// ReportPrefix routes migrated infrastructure report posts.
	ReportPrefix = Route{"Infra", "reports"}
	// SchemaPrefix routes schema pages derived from the OpenAPI document.
	SchemaPrefix = Route{"Product-Opener", "api", "schemas"}
)

var (
	// Generated API-reference leaves are named after the HTTP operation,
	// either verb-prefixed (get-price) or verb-suffixed (price-get).
	httpVerbPrefixRe = regexp.MustCompile(`^(get|post|patch|delete|put)-`)
	httpVerbSuffixRe = regexp.MustCompile(`-(get|post|patch|delete|put)$`)

	// Some upstream generators name operations after the action instead.
	actionVerbRe = regexp.MustCompile(`^(predict|extract|generate|create|update|delete|retrieve|list|destroy|partial_update|stats)`)
)

// apiReferenceMarkers are substrings that only occur in generated reference
// leaves (auth flows, knowledge panel endpoints).
var apiReferenceMarkers = []string{"auth", "knowledge-panel"}

// apiReferencePairs lists (namespace, sub-namespace) segment pairs whose
// co-occurrence anywhere in a route marks a generated API-reference page.
// Order within the route is not required, only co-occurrence.
var apiReferencePairs = [][2]string{
	{"Product-Opener", "v2"},
	{"Open-prices", "prices"},
	{"Robotoff", "predictions"},
}

// rule is one entry of the ordered classification table. Keeping rules as
// data makes new upstream naming conventions additive rather than invasive.
type rule struct {
	name      string
	namespace Namespace
	matches   func(Route) bool
}

var classificationRules = []rule{
	{
		name:      "report-prefix",
		namespace: NamespaceReport,
		matches: func(r Route) bool {
			return r.HasPrefix(ReportPrefix...) && len(r) > len(ReportPrefix)
		},
	},
	{
		name:      "api-reference-heuristics",
		namespace: NamespaceAPIReference,
		matches:   matchesAPIReference,
	},
	{
		name:      "schema-prefix",
		namespace: NamespaceSchema,
		matches: func(r Route) bool {
			return r.HasPrefix(SchemaPrefix...)
		},
	},
}

// Classify assigns exactly one namespace to the route. The rule table is
// evaluated in order, first match wins; anything unmatched is a general doc.
func Classify(r Route) Namespace {
	for _, rule := range classificationRules {
		if rule.matches(r) {
			return rule.namespace
		}
	}
	return NamespaceGeneralDoc
}

func matchesAPIReference(r Route) bool {
	for _, seg := range r {
		if httpVerbPrefixRe.MatchString(seg) || httpVerbSuffixRe.MatchString(seg) {
			return true
		}
		if actionVerbRe.MatchString(seg) {
			return true
		}
		for _, marker := range apiReferenceMarkers {
			if strings.Contains(seg, marker) {
				return true
			}
		}
	}
	for _, pair := range apiReferencePairs {
		if r.Contains(pair[0]) && r.Contains(pair[1]) {
			return true
		}
	}
	return false
}
