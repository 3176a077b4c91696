package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultDataType is used when a process request omits "type"
const DefaultDataType = "text"

// ProcessRequest is the body accepted by the process endpoint
type ProcessRequest struct {
	Data     interface{}
	Type     string
	Metadata interface{}
}

// ParseBody decodes a JSON request body into a generic object. An empty body
// yields an empty object. Numbers are kept as json.Number. Anything after the
// first JSON value other than whitespace makes the body invalid.
func ParseBody(body []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}

	var decoded interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, NewValidationError(InvalidBody, "", "Invalid JSON in request body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, NewValidationError(InvalidBody, "", "Invalid JSON in request body")
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return obj, nil
}

// NewProcessRequest validates a decoded body: "data" must be present and
// non-empty, "type" defaults to text and must be a known data type.
func NewProcessRequest(body map[string]interface{}) (*ProcessRequest, error) {
	data, ok := body["data"]
	if !ok {
		return nil, NewValidationError(MissingField, "data", `Request body must contain "data" field`)
	}
	if IsEmptyValue(data) {
		return nil, NewValidationError(MissingField, "data", "Data cannot be empty")
	}

	dataType := DefaultDataType
	if raw, present := body["type"]; present {
		s, isString := raw.(string)
		if !isString {
			return nil, ValidateEnum(fmt.Sprint(raw), "type", "data type", DataTypes)
		}
		dataType = s
	}
	if err := ValidateEnum(dataType, "type", "data type", DataTypes); err != nil {
		return nil, err
	}

	metadata, ok := body["metadata"]
	if !ok {
		metadata = map[string]interface{}{}
	}

	return &ProcessRequest{Data: data, Type: dataType, Metadata: metadata}, nil
}

// IsEmptyValue reports whether v counts as empty input: null, false, zero,
// a blank string, or an empty array or object
func IsEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return IsBlank(val)
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	case float64:
		return val == 0
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	}
	return false
}

// DataSize returns the character length of the stringified data. Strings are
// measured as-is; everything else by its compact JSON encoding.
func DataSize(data interface{}) int {
	if s, ok := data.(string); ok {
		return utf8.RuneCountInString(s)
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return utf8.RuneCountInString(fmt.Sprint(data))
	}
	return utf8.RuneCount(encoded)
}

// Summarize computes the processing result stored on a completed job
func Summarize(data interface{}, dataType, timestamp string) map[string]interface{} {
	result := map[string]interface{}{
		"processed": true,
		"timestamp": timestamp,
		"type":      dataType,
	}

	switch val := data.(type) {
	case string:
		result["original_length"] = utf8.RuneCountInString(val)
		result["word_count"] = len(strings.Fields(val))
	case map[string]interface{}:
		result["key_count"] = len(val)
	case []interface{}:
		result["item_count"] = len(val)
	default:
		result["data_type"] = TypeName(val)
	}
	return result
}

// TypeName returns a short name for the dynamic type of a decoded JSON value
func TypeName(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return "int"
		}
		return "float"
	case float64:
		return "float"
	}
	return fmt.Sprintf("%T", v)
}

// ProcessedDataView is the summary returned to API callers after processing
type ProcessedDataView struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	ProcessedAt string `json:"processed_at"`
	Size        int    `json:"size"`
}
