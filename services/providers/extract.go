package providers

import (
	"encoding/json"
	"strings"
)

// Extraction is one attempt at locating response text in a decoded JSON document
type Extraction func(doc interface{}) (string, bool)

// DecodeDocument parses a provider response body into a generic JSON document
func DecodeDocument(label string, body []byte) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, NewProviderError(label, "Failed to parse "+label+" response", 0, err)
	}
	return doc, nil
}

// FirstContent runs attempts in order; the first one that yields a string wins
func FirstContent(doc interface{}, attempts ...Extraction) (string, bool) {
	for _, attempt := range attempts {
		if content, ok := attempt(doc); ok {
			return content, true
		}
	}
	return "", false
}

// StringAt extracts the string found at path. Path elements are object keys
// (string) or array indices (int).
func StringAt(path ...interface{}) Extraction {
	return func(doc interface{}) (string, bool) {
		v, ok := Lookup(doc, path...)
		if !ok {
			return "", false
		}
		s, ok := v.(string)
		return s, ok
	}
}

// ConcatTextAt joins the "text" field of every element of the array at path.
// It fails when the array is missing or the joined text is empty.
func ConcatTextAt(path ...interface{}) Extraction {
	return func(doc interface{}) (string, bool) {
		parts, ok := ArrayAt(doc, path...)
		if !ok {
			return "", false
		}
		var sb strings.Builder
		for _, part := range parts {
			if text, ok := StringAt("text")(part); ok {
				sb.WriteString(text)
			}
		}
		if sb.Len() == 0 {
			return "", false
		}
		return sb.String(), true
	}
}

// ArrayAt returns the JSON array found at path
func ArrayAt(doc interface{}, path ...interface{}) ([]interface{}, bool) {
	v, ok := Lookup(doc, path...)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]interface{})
	return arr, ok
}

// Lookup walks doc along path; missing keys, out-of-range indices and type
// mismatches all report false
func Lookup(doc interface{}, path ...interface{}) (interface{}, bool) {
	cur := doc
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]interface{})
			if !ok {
				return nil, false
			}
			next, exists := obj[key]
			if !exists {
				return nil, false
			}
			cur = next
		case int:
			arr, ok := cur.([]interface{})
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}
