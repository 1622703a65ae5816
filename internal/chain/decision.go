package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"NutriGini/internal/prompts"
)

// ErrInvalidDecision indicates the router's reply could not be decoded.
var ErrInvalidDecision = errors.New("invalid router decision")

// Decision is the router's choice for one request.
type Decision struct {
	// Destination is a registered template name or prompts.DefaultDestination.
	Destination string `json:"destination"`

	// NextInput is the text for the chosen chain. Empty means "use the original input".
	NextInput string `json:"next_inputs"`
}

// IsDefault reports whether the router asked for the default chain.
func (d Decision) IsDefault() bool {
	return d.Destination == prompts.DefaultDestination
}

// InputOr returns NextInput, or original when the router supplied none.
func (d Decision) InputOr(original string) string {
	if strings.TrimSpace(d.NextInput) == "" {
		return original
	}
	return d.NextInput
}

type rawDecision struct {
	Destination *string         `json:"destination"`
	NextInputs  json.RawMessage `json:"next_inputs"`
}

// ParseDecision decodes the router's reply. The reply is expected to carry a
// fenced JSON object with "destination" and "next_inputs"; surrounding prose,
// a missing fence and comment tails are tolerated.
func ParseDecision(raw string) (Decision, error) {
	body := fencedBlock(raw)
	obj := firstObject(body)
	if obj == "" && body != raw {
		obj = firstObject(raw)
	}
	if obj == "" {
		return Decision{}, fmt.Errorf("%w: no JSON object found in response", ErrInvalidDecision)
	}
	obj = stripComments(obj)

	var rd rawDecision
	if err := json.Unmarshal([]byte(obj), &rd); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrInvalidDecision, err)
	}
	if rd.Destination == nil {
		return Decision{}, fmt.Errorf("%w: missing \"destination\"", ErrInvalidDecision)
	}

	next, err := decodeNextInputs(rd.NextInputs)
	if err != nil {
		return Decision{}, err
	}

	dest := strings.TrimSpace(*rd.Destination)
	if dest == "" || strings.EqualFold(dest, prompts.DefaultDestination) {
		dest = prompts.DefaultDestination
	}
	return Decision{Destination: dest, NextInput: next}, nil
}

// decodeNextInputs accepts a string or an {"input": "..."} object.
func decodeNextInputs(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var obj struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Input, nil
	}
	return "", fmt.Errorf("%w: \"next_inputs\" must be a string", ErrInvalidDecision)
}

// fencedBlock returns the contents of the first ``` fence, or s when there is none.
func fencedBlock(s string) string {
	start := strings.Index(s, "```")
	if start == -1 {
		return s
	}
	rest := s[start+3:]
	// Skip the info string, e.g. "json".
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end != -1 {
		return rest[:end]
	}
	return rest
}

// firstObject finds the first balanced { ... } block in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripComments drops "// ..." and "\ ..." line tails outside string values.
// The formatting example in the router prompt uses the backslash form, and
// models sometimes copy it.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}

		if c == '\\' || (c == '/' && i+1 < len(s) && s[i+1] == '/') {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}

		b.WriteByte(c)
	}
	return b.String()
}
