package resolver

import (
	"testing"

	"github.com/lokitools/schema/errors"
	"github.com/stretchr/testify/assert"
)

func fetchFixture() map[string]interface{} {
	return map[string]interface{}{
		"key1": map[string]interface{}{
			"nested_key1": map[string]interface{}{
				"deep_key1": map[string]interface{}{"inner_key1": "value1"},
			},
			"nested_key2": map[string]interface{}{
				"deep_key2": map[string]interface{}{"inner_key2": "value2"},
			},
		},
		"key2": map[string]interface{}{
			"nested_key3": map[string]interface{}{
				"deep_key3": map[string]interface{}{"inner_key3": []interface{}{"a", "b"}},
			},
			"nested_key4": map[string]interface{}{
				"enum": []interface{}{"KG", "MT", "LB"},
				"type": "string",
			},
		},
	}
}

func TestFetchValue(t *testing.T) {
	doc := fetchFixture()

	// Must start with '#'
	_, err := FetchValue("nota$reflink", doc)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefInvalid, errors.GetCode(err))

	// Plain nested value
	value, err := FetchValue("#/key1/nested_key2/deep_key2/inner_key2", doc)
	assert.NoError(t, err)
	assert.Equal(t, "value2", value)

	// Special trailing character
	_, err = FetchValue("#/key1/nested_key2/deep_key2/inner_key2/&", doc)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefInvalid, errors.GetCode(err))

	// List member by index
	value, err = FetchValue("#/key2/nested_key3/deep_key3/inner_key3/0", doc)
	assert.NoError(t, err)
	assert.Equal(t, "a", value)

	// Index out of bounds
	_, err = FetchValue("#/key2/nested_key3/deep_key3/inner_key3/7", doc)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefUnresolved, errors.GetCode(err))

	// Not a string
	_, err = FetchValue(420, doc)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefInvalid, errors.GetCode(err))

	// Enum member promotes to a single-value enum schema
	value, err = FetchValue("#/key2/nested_key4/enum/0", doc)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"enum": []interface{}{"KG"},
		"type": "string",
	}, value)
}

func TestFetchValueNumericEnum(t *testing.T) {
	doc := map[string]interface{}{
		"codes": map[string]interface{}{
			"enum": []interface{}{float64(1), float64(2), float64(3)},
		},
	}

	value, err := FetchValue("#/codes/enum/1", doc)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"enum": []interface{}{float64(2)},
		"type": "number",
	}, value)
}

func TestFetchValueMixedEnumStaysString(t *testing.T) {
	doc := map[string]interface{}{
		"codes": map[string]interface{}{
			"enum": []interface{}{float64(1), "two"},
		},
	}

	value, err := FetchValue("#/codes/enum/0", doc)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"enum": []interface{}{float64(1)},
		"type": "string",
	}, value)
}

func TestFetchValueMissingKey(t *testing.T) {
	_, err := FetchValue("#/key1/no_such_key", fetchFixture())
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefUnresolved, errors.GetCode(err))
}
