package resolver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lokitools/schema/errors"
	"github.com/lokitools/schema/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	r, err := New(opts)
	require.NoError(t, err)
	return r
}

func TestRunResolvesInternalRefs(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSON(t, dir, "contract.json", map[string]interface{}{
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"CustomerType": map[string]interface{}{
					"type": "string",
					"enum": []interface{}{"B2B", "B2C"},
				},
			},
		},
		"properties": map[string]interface{}{
			"customerType": map[string]interface{}{
				"$ref": "#/components/schemas/CustomerType",
			},
		},
	})

	r := newTestResolver(t, Options{})
	require.NoError(t, r.Run(context.Background(), dir))

	doc := testutil.ReadJSON(t, path)
	assert.Empty(t, CollectRefs(doc))

	customerType := doc["properties"].(map[string]interface{})["customerType"].(map[string]interface{})
	assert.Equal(t, "string", customerType["type"])
	assert.Equal(t, []interface{}{"B2B", "B2C"}, customerType["enum"])
}

func TestRunResolvesExternalInternalRefs(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteJSON(t, dir, filepath.Join("enums", "unit.enum.json"), map[string]interface{}{
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"VolumeUnit": map[string]interface{}{
					"type": "string",
					"enum": []interface{}{"KG", "MT", "LB"},
				},
			},
		},
	})
	entityPath := testutil.WriteJSON(t, dir, filepath.Join("entities", "fee.json"), map[string]interface{}{
		"properties": map[string]interface{}{
			"unit": map[string]interface{}{
				"$ref":     "../enums/unit.enum.json#/components/schemas/VolumeUnit",
				"nullable": true,
			},
		},
	})

	r := newTestResolver(t, Options{})
	require.NoError(t, r.Run(context.Background(), dir))

	doc := testutil.ReadJSON(t, entityPath)
	assert.Empty(t, CollectRefs(doc))

	unit := doc["properties"].(map[string]interface{})["unit"].(map[string]interface{})
	assert.Equal(t, "string", unit["type"])
	assert.Equal(t, []interface{}{"KG", "MT", "LB"}, unit["enum"])
	assert.Equal(t, true, unit["nullable"])
}

func TestRunDefersUntilDependencyResolves(t *testing.T) {
	dir := t.TempDir()

	// base.json carries an internal ref of its own, so entity.json must wait
	// for a later pass.
	basePath := testutil.WriteJSON(t, dir, "base.json", map[string]interface{}{
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"Code": map[string]interface{}{"type": "string"},
				"Status": map[string]interface{}{
					"$ref": "#/components/schemas/Code",
				},
			},
		},
	})
	entityPath := testutil.WriteJSON(t, dir, "entity.json", map[string]interface{}{
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"$ref": "./base.json#/components/schemas/Status",
			},
		},
	})

	r := newTestResolver(t, Options{})
	require.NoError(t, r.Run(context.Background(), dir))

	base := testutil.ReadJSON(t, basePath)
	entity := testutil.ReadJSON(t, entityPath)
	assert.Empty(t, CollectRefs(base))
	assert.Empty(t, CollectRefs(entity))

	status := entity["properties"].(map[string]interface{})["status"].(map[string]interface{})
	assert.Equal(t, "string", status["type"])
}

func TestRunReportsCycles(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteJSON(t, dir, "a.json", map[string]interface{}{
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"A": map[string]interface{}{"$ref": "./b.json#/components/schemas/B"},
			},
		},
	})
	testutil.WriteJSON(t, dir, "b.json", map[string]interface{}{
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"B": map[string]interface{}{"$ref": "./a.json#/components/schemas/A"},
			},
		},
	})

	r := newTestResolver(t, Options{})
	err := r.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeResolveCycle, errors.GetCode(err))
}

func TestRunEmptyTarget(t *testing.T) {
	r := newTestResolver(t, Options{})
	assert.NoError(t, r.Run(context.Background(), t.TempDir()))
}

func TestRunMissingTarget(t *testing.T) {
	r := newTestResolver(t, Options{})
	err := r.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTargetInvalid, errors.GetCode(err))
}

func TestRunHonorsExcludePatterns(t *testing.T) {
	dir := t.TempDir()

	excludedPath := testutil.WriteJSON(t, dir, filepath.Join("vendored", "ext.json"), map[string]interface{}{
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"$ref": "#/definitions/X"},
		},
		"definitions": map[string]interface{}{
			"X": map[string]interface{}{"type": "string"},
		},
	})
	original, err := os.ReadFile(excludedPath)
	require.NoError(t, err)

	r := newTestResolver(t, Options{Exclude: []string{"vendored"}})
	require.NoError(t, r.Run(context.Background(), dir))

	after, err := os.ReadFile(excludedPath)
	require.NoError(t, err)
	assert.Equal(t, original, after, "excluded documents must not be rewritten")
}

func TestRunRejectsMalformedRef(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteJSON(t, dir, "bad.json", map[string]interface{}{
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"$ref": "nota$reflink"},
		},
	})

	r := newTestResolver(t, Options{})
	err := r.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefInvalid, errors.GetCode(err))
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "spec.json", "{\"b\":1,\n      \"a\":   {\"c\":2}}")

	r := newTestResolver(t, Options{})
	count, err := r.Reset(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	normalized := string(data)
	assert.True(t, strings.HasSuffix(normalized, "\n"))
	assert.Contains(t, normalized, "  \"a\": {")

	// A second pass must be a no-op
	_, err = r.Reset(dir)
	require.NoError(t, err)
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestResetMissingTarget(t *testing.T) {
	r := newTestResolver(t, Options{})
	_, err := r.Reset(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTargetInvalid, errors.GetCode(err))
}

func TestExtractSchema(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteJSON(t, dir, "spec.json", map[string]interface{}{
		"info": map[string]interface{}{"title": "Fees"},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"Fee": map[string]interface{}{"type": "object"},
			},
		},
	})

	// Key matched case-insensitively at any depth
	schema, doc, err := ExtractSchema(path, "SCHEMAS")
	require.NoError(t, err)
	require.NotNil(t, doc)
	schemas, ok := schema.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, schemas, "Fee")

	// Empty key returns the whole document
	schema, doc, err = ExtractSchema(path, "")
	require.NoError(t, err)
	assert.Nil(t, schema)
	assert.Contains(t, doc, "info")

	// Missing key carries a coded error with the searched key
	_, _, err = ExtractSchema(path, "paths")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaKeyNotFound, errors.GetCode(err))
}

func TestFindFilesWithExtension(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteJSON(t, dir, "a.json", map[string]interface{}{})
	testutil.WriteJSON(t, dir, filepath.Join("nested", "deep", "b.json"), map[string]interface{}{})
	testutil.WriteFile(t, dir, "note.txt", "not json")

	files, err := FindFilesWithExtension(dir, ".json")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], "a.json"))
	assert.True(t, strings.HasSuffix(files[1], filepath.Join("nested", "deep", "b.json")))

	_, err = FindFilesWithExtension(filepath.Join(dir, "missing"), ".json")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTargetInvalid, errors.GetCode(err))
}
