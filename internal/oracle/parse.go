package oracle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencePrefix = regexp.MustCompile("^```(?:json)?\\s*")
	fenceSuffix = regexp.MustCompile("\\s*```$")
	jsonObject  = regexp.MustCompile(`\{[\s\S]*\}`)
	whitespace  = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
	nonDigits   = regexp.MustCompile(`[^0-9]`)
)

// parseJSON decodes a model response that should be a JSON object.
//
// Markdown fences are removed. If the text still does not decode, the outermost
// braces are extracted and decoded.
func parseJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyResponse
	}

	clean := fencePrefix.ReplaceAllString(text, "")
	clean = fenceSuffix.ReplaceAllString(clean, "")
	clean = whitespace.Replace(strings.TrimSpace(clean))

	err := json.Unmarshal([]byte(clean), v)
	if err == nil {
		return nil
	}

	match := jsonObject.FindString(text)
	if match == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if err := json.Unmarshal([]byte(whitespace.Replace(match)), v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// parseDistrictID extracts a 7 digit id from a model response.
func parseDistrictID(text string) (string, error) {
	id := nonDigits.ReplaceAllString(strings.TrimSpace(text), "")
	if len(id) != 7 {
		return "", fmt.Errorf("%w: %q is not a district id", ErrInvalidResponse, text)
	}
	return id, nil
}
