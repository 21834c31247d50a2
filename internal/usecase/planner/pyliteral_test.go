package planner

import (
	"encoding/json"
	"testing"
)

func TestNormalizeLiteral_SingleQuotes(t *testing.T) {
	out, err := normalizeLiteral(`{'key': 'value'}`)
	if err != nil {
		t.Fatalf("normalizeLiteral failed: %v", err)
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("Result is not valid JSON: %v (%s)", err, out)
	}
	if value["key"] != "value" {
		t.Errorf("Expected value, got %v", value["key"])
	}
}

func TestNormalizeLiteral_PythonConstants(t *testing.T) {
	out, err := normalizeLiteral(`{'a': True, 'b': False, 'c': None}`)
	if err != nil {
		t.Fatalf("normalizeLiteral failed: %v", err)
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("Result is not valid JSON: %v (%s)", err, out)
	}
	if value["a"] != true || value["b"] != false || value["c"] != nil {
		t.Errorf("Constants not converted: %v", value)
	}
}

func TestNormalizeLiteral_TrailingCommas(t *testing.T) {
	out, err := normalizeLiteral(`{"list": [1, 2, 3,], "x": 1,}`)
	if err != nil {
		t.Fatalf("normalizeLiteral failed: %v", err)
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("Result is not valid JSON: %v (%s)", err, out)
	}
}

func TestNormalizeLiteral_EscapedQuoteInString(t *testing.T) {
	out, err := normalizeLiteral(`{'msg': 'it\'s fine'}`)
	if err != nil {
		t.Fatalf("normalizeLiteral failed: %v", err)
	}

	var value map[string]string
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("Result is not valid JSON: %v (%s)", err, out)
	}
	if value["msg"] != "it's fine" {
		t.Errorf("Expected it's fine, got %q", value["msg"])
	}
}

func TestNormalizeLiteral_DoubleQuoteInsideSingleQuoted(t *testing.T) {
	out, err := normalizeLiteral(`{'msg': 'say "hi"'}`)
	if err != nil {
		t.Fatalf("normalizeLiteral failed: %v", err)
	}

	var value map[string]string
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("Result is not valid JSON: %v (%s)", err, out)
	}
	if value["msg"] != `say "hi"` {
		t.Errorf("Inner quotes mangled: %q", value["msg"])
	}
}

func TestNormalizeLiteral_WordsInsideStringsUntouched(t *testing.T) {
	out, err := normalizeLiteral(`{'msg': 'True story about None'}`)
	if err != nil {
		t.Fatalf("normalizeLiteral failed: %v", err)
	}

	var value map[string]string
	if err := json.Unmarshal([]byte(out), &value); err != nil {
		t.Fatalf("Result is not valid JSON: %v (%s)", err, out)
	}
	if value["msg"] != "True story about None" {
		t.Errorf("String content rewritten: %q", value["msg"])
	}
}

func TestNormalizeLiteral_Unterminated(t *testing.T) {
	if _, err := normalizeLiteral(`{'msg': 'oops`); err == nil {
		t.Error("Expected error for unterminated string")
	}
}
