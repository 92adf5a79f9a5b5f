package resolver

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lokitools/schema/errors"
)

// lastCharRegex flags trailing characters that can never terminate a valid
// pointer-style reference.
var lastCharRegex = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// FetchValue resolves a pointer-style reference ('#' root, '/'-separated keys)
// inside a document. A trailing integer segment selects a list index.
// References addressing an enum member return a single-value enum schema
// instead of the bare value, typed "number" when every member is an integer
// and "string" otherwise.
func FetchValue(ref interface{}, doc map[string]interface{}) (interface{}, error) {
	refString, ok := ref.(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeRefInvalid, "reference must be a string").
			WithDetail("ref", ref)
	}
	if !strings.HasPrefix(refString, "#") {
		return nil, errors.New(errors.ErrCodeRefInvalid,
			fmt.Sprintf("reference '%s' must start with '#'", refString)).
			WithDetail("ref", refString)
	}
	runes := []rune(refString)
	if last := string(runes[len(runes)-1]); lastCharRegex.MatchString(last) {
		return nil, errors.New(errors.ErrCodeRefInvalid,
			fmt.Sprintf("reference '%s' ends with special character '%s'", refString, last)).
			WithDetail("ref", refString)
	}

	rest := ""
	if len(refString) > 2 {
		rest = refString[2:]
	}
	keys := strings.Split(rest, "/")

	listIndex := trimListIndex(&keys)

	var current interface{} = doc
	for _, key := range keys {
		if _, isList := current.([]interface{}); isList && listIndex != nil {
			continue
		}
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, errors.RefUnresolved(refString,
				fmt.Sprintf("segment '%s' addresses a non-object value", key))
		}
		next, ok := node[key]
		if !ok {
			return nil, errors.RefUnresolved(refString, fmt.Sprintf("key '%s' not found", key))
		}
		current = next
	}

	if strings.Contains(strings.ToLower(refString), "/enum/") && listIndex != nil {
		members, ok := current.([]interface{})
		if !ok {
			return nil, errors.RefUnresolved(refString,
				fmt.Sprintf("expected enum to be a list but got: %v", current))
		}
		if *listIndex < 0 || *listIndex >= len(members) {
			return nil, errors.RefUnresolved(refString,
				fmt.Sprintf("enum index %d out of range (%d members)", *listIndex, len(members)))
		}
		enumType := "string"
		if allIntegers(members) {
			enumType = "number"
		}
		return map[string]interface{}{
			"enum": []interface{}{members[*listIndex]},
			"type": enumType,
		}, nil
	}

	if listIndex != nil {
		members, ok := current.([]interface{})
		if !ok {
			return nil, errors.RefUnresolved(refString,
				fmt.Sprintf("index %d applied to a non-list value", *listIndex))
		}
		if *listIndex < 0 || *listIndex >= len(members) {
			return nil, errors.RefUnresolved(refString,
				fmt.Sprintf("index %d out of range (%d members)", *listIndex, len(members)))
		}
		return members[*listIndex], nil
	}

	return current, nil
}

// trimListIndex strips a trailing integer segment from the key path and
// returns it, or nil when the reference does not target a list member.
func trimListIndex(keys *[]string) *int {
	if len(*keys) == 0 {
		return nil
	}
	last := (*keys)[len(*keys)-1]
	index, err := strconv.Atoi(last)
	if err != nil {
		return nil
	}
	*keys = (*keys)[:len(*keys)-1]
	return &index
}

// allIntegers reports whether every member is a whole number. JSON numbers
// arrive as float64.
func allIntegers(members []interface{}) bool {
	for _, member := range members {
		value, ok := member.(float64)
		if !ok || value != math.Trunc(value) {
			return false
		}
	}
	return true
}
