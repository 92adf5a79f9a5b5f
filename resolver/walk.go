package resolver

import (
	"sort"
	"strings"

	"github.com/lokitools/schema/errors"
)

// WalkKey searches a document depth-first for a key matching target,
// case-insensitively. It returns the dotted path to the first match and its
// value. Keys are visited in sorted order at every level so lookups are
// deterministic.
func WalkKey(doc interface{}, target string) (string, interface{}, error) {
	typed, ok := doc.(map[string]interface{})
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "input must be an object").
			WithDetail("target", target)
	}

	path, value, found := walkKeyHelper(typed, target, "")
	if !found {
		return "", nil, errors.SchemaKeyNotFound(target, "document")
	}
	return path, value, nil
}

func walkKeyHelper(doc map[string]interface{}, target, path string) (string, interface{}, bool) {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		currentPath := key
		if path != "" {
			currentPath = path + "." + key
		}
		if strings.EqualFold(key, target) {
			return currentPath, doc[key], true
		}

		if nested, ok := doc[key].(map[string]interface{}); ok {
			if matchPath, matchValue, found := walkKeyHelper(nested, target, currentPath); found {
				return matchPath, matchValue, true
			}
		}
	}

	return "", nil, false
}
