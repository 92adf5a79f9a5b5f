package resolver

import (
	"strings"

	"github.com/lokitools/schema/errors"
)

// RefKind classifies where a $ref points.
type RefKind int

const (
	// RefInternal targets a location inside the same document (#/...).
	RefInternal RefKind = iota + 1
	// RefExternal targets another document as a whole (../file.json).
	RefExternal
	// RefExternalInternal targets a location inside another document
	// (../file.json#/...).
	RefExternalInternal
)

func (k RefKind) String() string {
	switch k {
	case RefInternal:
		return "internal"
	case RefExternal:
		return "external"
	case RefExternalInternal:
		return "external-internal"
	}
	return "unknown"
}

// EvaluateRef classifies a $ref value. Values that are not strings, or strings
// that neither start with '.' nor '#', cannot be classified.
func EvaluateRef(ref interface{}) (RefKind, error) {
	value, ok := ref.(string)
	if !ok {
		return 0, errors.New(errors.ErrCodeRefInvalid, "reference is not a string").
			WithDetail("ref", ref)
	}
	if value == "" {
		return 0, errors.RefInvalid(value)
	}

	switch {
	case strings.HasPrefix(value, ".") && strings.Contains(value, "#"):
		return RefExternalInternal, nil
	case strings.HasPrefix(value, "."):
		return RefExternal, nil
	case strings.HasPrefix(value, "#"):
		return RefInternal, nil
	}
	return 0, errors.RefInvalid(value)
}

// CollectRefs gathers every $ref value in the document, descending into nested
// objects and into lists whose members are all objects. Values are returned
// untyped so malformed (non-string) references surface as classification
// errors instead of being silently dropped.
func CollectRefs(doc map[string]interface{}) []interface{} {
	var output []interface{}
	for key, value := range doc {
		if key == "$ref" {
			output = append(output, value)
			continue
		}
		switch typed := value.(type) {
		case map[string]interface{}:
			output = append(output, CollectRefs(typed)...)
		case []interface{}:
			allObjects := len(typed) > 0
			for _, each := range typed {
				if _, ok := each.(map[string]interface{}); !ok {
					allObjects = false
					break
				}
			}
			if allObjects {
				for _, each := range typed {
					output = append(output, CollectRefs(each.(map[string]interface{}))...)
				}
			}
		}
	}
	return output
}
