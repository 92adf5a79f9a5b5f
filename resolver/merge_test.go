package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRefsReplacesInPlace(t *testing.T) {
	doc := map[string]interface{}{
		"properties": map[string]interface{}{
			"unit": map[string]interface{}{
				"$ref": "#/components/schemas/VolumeUnit",
			},
		},
	}
	subSchemas := []SubSchema{
		{
			Ref: "#/components/schemas/VolumeUnit",
			Schema: map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"KG", "MT", "LB"},
			},
		},
	}

	MergeRefs(doc, subSchemas, nil, nil)

	unit := doc["properties"].(map[string]interface{})["unit"].(map[string]interface{})
	assert.NotContains(t, unit, "$ref")
	assert.Equal(t, "string", unit["type"])
	assert.Equal(t, []interface{}{"KG", "MT", "LB"}, unit["enum"])
}

func TestMergeRefsPreservesProperties(t *testing.T) {
	doc := map[string]interface{}{
		"amount": map[string]interface{}{
			"$ref":        "#/components/schemas/Amount",
			"nullable":    true,
			"title":       "Net amount",
			"description": "Amount after fees",
			"x-virtual":   true,
			"format":      "decimal",
		},
	}
	subSchemas := []SubSchema{
		{
			Ref:    "#/components/schemas/Amount",
			Schema: map[string]interface{}{"type": "number", "title": "Amount"},
		},
	}

	MergeRefs(doc, subSchemas, nil, []string{"nullable", "title", "description", "x-virtual", "format"})

	amount := doc["amount"].(map[string]interface{})
	assert.Equal(t, "number", amount["type"])
	// The replaced object's fields win over the sub-schema's
	assert.Equal(t, "Net amount", amount["title"])
	assert.Equal(t, true, amount["nullable"])
	assert.Equal(t, "Amount after fees", amount["description"])
	assert.Equal(t, true, amount["x-virtual"])
	assert.Equal(t, "decimal", amount["format"])
}

func TestMergeRefsDropsEmptyPreservedValues(t *testing.T) {
	doc := map[string]interface{}{
		"amount": map[string]interface{}{
			"$ref":     "#/components/schemas/Amount",
			"nullable": false,
			"title":    "",
		},
	}
	subSchemas := []SubSchema{
		{
			Ref:    "#/components/schemas/Amount",
			Schema: map[string]interface{}{"type": "number"},
		},
	}

	MergeRefs(doc, subSchemas, nil, []string{"nullable", "title"})

	amount := doc["amount"].(map[string]interface{})
	assert.NotContains(t, amount, "nullable")
	assert.NotContains(t, amount, "title")
}

func TestMergeRefsKeepKeys(t *testing.T) {
	doc := map[string]interface{}{
		"customer": map[string]interface{}{
			"$ref":                "#/components/schemas/Customer",
			"i6RefCollectionName": "customer-accounts",
		},
	}
	subSchemas := []SubSchema{
		{
			Ref:    "#/components/schemas/Customer",
			Schema: map[string]interface{}{"type": "object"},
		},
	}

	MergeRefs(doc, subSchemas, []string{"i6RefCollectionName"}, nil)

	customer := doc["customer"].(map[string]interface{})
	assert.Equal(t, "object", customer["type"])
	assert.Equal(t, "customer-accounts", customer["i6RefCollectionName"])
}

func TestMergeRefsKeepKeyObjectValuesMergeEntries(t *testing.T) {
	doc := map[string]interface{}{
		"customer": map[string]interface{}{
			"$ref": "#/components/schemas/Customer",
			"x-source": map[string]interface{}{
				"collection": "customer-accounts",
				"database":   "crm",
			},
		},
	}
	subSchemas := []SubSchema{
		{
			Ref:    "#/components/schemas/Customer",
			Schema: map[string]interface{}{"type": "object"},
		},
	}

	MergeRefs(doc, subSchemas, []string{"x-source"}, nil)

	customer := doc["customer"].(map[string]interface{})
	assert.Equal(t, "customer-accounts", customer["collection"])
	assert.Equal(t, "crm", customer["database"])
}

func TestMergeRefsLeavesUnmatchedRefs(t *testing.T) {
	doc := map[string]interface{}{
		"pending": map[string]interface{}{
			"$ref": "../other.json#/components/schemas/Other",
		},
	}

	MergeRefs(doc, nil, nil, nil)

	pending := doc["pending"].(map[string]interface{})
	assert.Equal(t, "../other.json#/components/schemas/Other", pending["$ref"])
}

func TestMergeRefsWalksLists(t *testing.T) {
	doc := map[string]interface{}{
		"allOf": []interface{}{
			map[string]interface{}{"$ref": "#/a"},
			map[string]interface{}{"$ref": "#/b"},
		},
	}
	subSchemas := []SubSchema{
		{Ref: "#/a", Schema: map[string]interface{}{"type": "string"}},
		{Ref: "#/b", Schema: map[string]interface{}{"type": "number"}},
	}

	MergeRefs(doc, subSchemas, nil, nil)

	members := doc["allOf"].([]interface{})
	assert.Equal(t, "string", members[0].(map[string]interface{})["type"])
	assert.Equal(t, "number", members[1].(map[string]interface{})["type"])
}

func TestMergeRefsDoesNotAliasSubSchemas(t *testing.T) {
	shared := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"name": map[string]interface{}{"type": "string"}},
	}
	doc := map[string]interface{}{
		"first":  map[string]interface{}{"$ref": "#/shared"},
		"second": map[string]interface{}{"$ref": "#/shared"},
	}
	subSchemas := []SubSchema{{Ref: "#/shared", Schema: shared}}

	MergeRefs(doc, subSchemas, nil, nil)

	first := doc["first"].(map[string]interface{})
	second := doc["second"].(map[string]interface{})
	require.Equal(t, first, second)

	// Mutating one merged site must not leak into the other or the source
	first["properties"].(map[string]interface{})["name"].(map[string]interface{})["type"] = "number"
	assert.Equal(t, "string", second["properties"].(map[string]interface{})["name"].(map[string]interface{})["type"])
	assert.Equal(t, "string", shared["properties"].(map[string]interface{})["name"].(map[string]interface{})["type"])
}
