package gateway

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	jsonRe              = regexp.MustCompile("(?is)```(?:json[c5]?|json5)?\\s*([{\\[].*?[}\\]])\\s*```")
	trailingArrayComma  = regexp.MustCompile(`,\s*\]`)
	trailingObjectComma = regexp.MustCompile(`,\s*\}`)
	backtickStringRe    = regexp.MustCompile("`([^`\\\\]*(?:\\\\.[^`\\\\]*)*)`")
)

// extractJSON finds the first JSON object or array in a model reply,
// handling optional markdown fences and common syntax slips.
func extractJSON(raw string) ([]byte, error) {
	candidate := raw
	if matches := jsonRe.FindStringSubmatch(raw); len(matches) > 1 {
		candidate = matches[1]
	} else {
		start := strings.IndexAny(raw, "[{")
		if start == -1 {
			return nil, errors.New("no JSON object or array found")
		}
		end := strings.LastIndexAny(raw, "}]")
		if end == -1 || end < start {
			return nil, errors.New("no JSON object or array found")
		}
		candidate = raw[start : end+1]
	}

	jsonStr := strings.TrimSpace(candidate)
	if jsonStr == "" {
		return nil, errors.New("empty JSON payload")
	}
	if json.Valid([]byte(jsonStr)) {
		return []byte(jsonStr), nil
	}

	jsonStr = trailingArrayComma.ReplaceAllString(jsonStr, "]")
	jsonStr = trailingObjectComma.ReplaceAllString(jsonStr, "}")

	// Backticks inside valid strings are code spans and must survive, so
	// they are only rewritten as quotes when the payload is still invalid.
	if !json.Valid([]byte(jsonStr)) && strings.Contains(jsonStr, "`") {
		jsonStr = backtickStringRe.ReplaceAllString(jsonStr, "\"$1\"")
	}

	first := jsonStr[0]
	if first != '{' && first != '[' {
		return nil, errors.New("response did not contain JSON object or array")
	}
	return []byte(jsonStr), nil
}
