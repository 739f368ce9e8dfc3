// Package utils holds small shared helpers: lenient parsing of
// model-produced JSON and markdown validation for run summaries.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON defects in model output: single
// quotes, unquoted keys, trailing commas, stray markdown fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// SmartParse tries multiple strategies to decode model output into schema:
// strict JSON first, then repaired JSON, then Hjson as the most lenient
// reading. Returns the JSON that ultimately decoded.
func SmartParse(input string, schema interface{}) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("SMART_PARSE_FAILED: empty input")
	}

	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		normalized, merr := json.Marshal(schema)
		if merr != nil {
			return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", merr)
		}
		return string(normalized), nil
	}

	return "", fmt.Errorf("SMART_PARSE_FAILED: input is not valid JSON, repairable JSON, or Hjson")
}
