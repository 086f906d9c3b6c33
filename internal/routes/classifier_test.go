package routes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_ReportRoutes(t *testing.T) {
	require.Equal(t, NamespaceReport, Classify(Route{"Infra", "reports", "2024-01-outage"}))
	require.Equal(t, NamespaceReport, Classify(Route{"Infra", "reports", "2023", "postmortem"}))
}

func TestClassify_ReportPrefixAloneIsNotAReport(t *testing.T) {
	// The bare namespace index is a general doc page, not a report post.
	require.Equal(t, NamespaceGeneralDoc, Classify(Route{"Infra", "reports"}))
	require.Equal(t, NamespaceGeneralDoc, Classify(Route{"Infra"}))
}

func TestClassify_APIReferenceByVerbPrefix(t *testing.T) {
	require.Equal(t, NamespaceAPIReference, Classify(Route{"Open-prices", "prices", "get-list"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"api", "post-product"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"api", "patch-price"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"api", "delete-session"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"api", "put-image"}))
}

func TestClassify_APIReferenceByVerbSuffix(t *testing.T) {
	require.Equal(t, NamespaceAPIReference, Classify(Route{"api", "prices-get"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"api", "product-delete"}))
}

func TestClassify_APIReferenceByActionVerb(t *testing.T) {
	for _, seg := range []string{
		"predict-category", "extract-ingredients", "generate-insights",
		"create", "update-price", "delete", "retrieve-product", "list",
		"destroy", "partial_update", "stats",
	} {
		require.Equal(t, NamespaceAPIReference, Classify(Route{"Robotoff", "ann", seg}), "segment %q", seg)
	}
}

func TestClassify_APIReferenceByMarkerSubstring(t *testing.T) {
	require.Equal(t, NamespaceAPIReference, Classify(Route{"Open-prices", "auth-cookie"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"Product-Opener", "knowledge-panels-for-product"}))
}

func TestClassify_APIReferenceByPairCoOccurrence(t *testing.T) {
	require.Equal(t, NamespaceAPIReference, Classify(Route{"Product-Opener", "v2", "read"}))
	require.Equal(t, NamespaceAPIReference, Classify(Route{"Robotoff", "predictions"}))
	// Order within the route does not matter, only co-occurrence.
	require.Equal(t, NamespaceAPIReference, Classify(Route{"v2", "something", "Product-Opener"}))
}

func TestClassify_SchemaRoutes(t *testing.T) {
	require.Equal(t, NamespaceSchema, Classify(Route{"Product-Opener", "api", "schemas"}))
	require.Equal(t, NamespaceSchema, Classify(Route{"Product-Opener", "api", "schemas", "schemas", "product"}))
}

func TestClassify_GeneralDocDefault(t *testing.T) {
	require.Equal(t, NamespaceGeneralDoc, Classify(Route{}))
	require.Equal(t, NamespaceGeneralDoc, Classify(Route{"Product-Opener", "dev", "setup"}))
	require.Equal(t, NamespaceGeneralDoc, Classify(Route{"contribute"}))
}

func TestClassify_IsTotal(t *testing.T) {
	known := map[Namespace]bool{
		NamespaceReport:       true,
		NamespaceSchema:       true,
		NamespaceAPIReference: true,
		NamespaceGeneralDoc:   true,
	}
	samples := []Route{
		{},
		{"Infra", "reports", "x"},
		{"Product-Opener", "api", "schemas"},
		{"Open-prices", "prices", "get-list"},
		{"anything", "else"},
		{"Infra"},
	}
	for _, r := range samples {
		require.True(t, known[Classify(r)], "route %v", r)
	}
}
