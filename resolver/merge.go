package resolver

// SubSchema pairs a reference value with the schema fetched for it.
type SubSchema struct {
	Ref    string
	Schema interface{}
}

func findSubSchema(subSchemas []SubSchema, ref string) interface{} {
	for _, each := range subSchemas {
		if each.Ref == ref {
			return each.Schema
		}
	}
	return nil
}

// cacheProperties extracts the preserve fields from an object about to be
// replaced. Fields are searched depth-first (a nested title counts) and only
// non-empty values survive the merge.
func cacheProperties(doc map[string]interface{}, preserve []string) map[string]interface{} {
	cached := make(map[string]interface{})
	for _, field := range preserve {
		_, value, err := WalkKey(doc, field)
		if err != nil {
			continue
		}
		if truthy(value) {
			cached[field] = deepCopy(value)
		}
	}
	if len(cached) == 0 {
		return nil
	}
	return cached
}

func truthy(value interface{}) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case float64:
		return typed != 0
	case []interface{}:
		return len(typed) > 0
	case map[string]interface{}:
		return len(typed) > 0
	}
	return true
}

// MergeRefs replaces every $ref object in the document with its matching
// sub-schema, in place. The preserve fields of the replaced object are
// re-applied on top of the substituted schema, then the keep keys: object
// values are merged entry by entry, anything else is re-applied under its own
// key. Unmatched references are left untouched for a later pass.
func MergeRefs(doc interface{}, subSchemas []SubSchema, keepKeys, preserve []string) interface{} {
	node, ok := doc.(map[string]interface{})
	if !ok {
		return doc
	}

	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}

	for _, key := range keys {
		value := node[key]
		if key == "$ref" {
			refValue, ok := value.(string)
			if !ok {
				continue
			}
			replacement, ok := findSubSchema(subSchemas, refValue).(map[string]interface{})
			if !ok {
				continue
			}

			cached := cacheProperties(node, preserve)

			kept := make(map[string]interface{})
			for _, keepKey := range keepKeys {
				keepValue, found := node[keepKey]
				if !found {
					continue
				}
				if keepObject, isObject := keepValue.(map[string]interface{}); isObject {
					for k, v := range keepObject {
						kept[k] = deepCopy(v)
					}
				} else {
					kept[keepKey] = deepCopy(keepValue)
				}
			}

			clear(node)
			for k, v := range replacement {
				node[k] = deepCopy(v)
			}
			for k, v := range kept {
				node[k] = v
			}
			for k, v := range cached {
				node[k] = v
			}
			continue
		}

		switch typed := value.(type) {
		case map[string]interface{}:
			MergeRefs(typed, subSchemas, keepKeys, preserve)
		case []interface{}:
			for _, each := range typed {
				MergeRefs(each, subSchemas, keepKeys, preserve)
			}
		}
	}

	return doc
}

// deepCopy clones a JSON-shaped value so merged sub-schemas never alias the
// documents they were fetched from.
func deepCopy(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		copied := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			copied[k] = deepCopy(v)
		}
		return copied
	case []interface{}:
		copied := make([]interface{}, len(typed))
		for i, v := range typed {
			copied[i] = deepCopy(v)
		}
		return copied
	}
	return value
}
