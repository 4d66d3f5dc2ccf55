package sexp

import (
	"fmt"
	"strconv"
)

// S-expression navigation helpers

// items returns the elements of a list node, or nil for atoms
func items(s Sexp) []Sexp {
	if list, ok := s.(*List); ok {
		return list.Items()
	}
	return nil
}

// FindNode searches for a child node with the given key (first symbol).
// Example: FindNode(sexp, "at") finds (at 100 50) in a list.
func FindNode(s Sexp, key string) (Sexp, bool) {
	for _, item := range items(s) {
		if item == nil {
			continue
		}

		if item.IsLeaf() {
			if sym, ok := item.(Symbol); ok && string(sym) == key {
				return item, true
			}
			continue
		}

		subItems := items(item)
		if len(subItems) > 0 {
			if sym, ok := subItems[0].(Symbol); ok && string(sym) == key {
				return item, true
			}
		}
	}

	return nil, false
}

// FindAllNodes finds all direct child nodes with the given key
func FindAllNodes(s Sexp, key string) []Sexp {
	var results []Sexp

	for _, item := range items(s) {
		if item == nil || item.IsLeaf() {
			continue
		}

		subItems := items(item)
		if len(subItems) > 0 {
			if sym, ok := subItems[0].(Symbol); ok && string(sym) == key {
				results = append(results, item)
			}
		}
	}

	return results
}

// Typed value extraction helpers

// GetString extracts a string value at the given index in a list.
// Index 0 is the key, 1 is the first value, etc.
func GetString(s Sexp, index int) (string, error) {
	elems := items(s)
	if elems == nil {
		return "", fmt.Errorf("expected list, got leaf")
	}

	if index < 0 || index >= len(elems) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(elems))
	}

	if sym, ok := elems[index].(Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at index %d, got %T", index, elems[index])
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// HasSymbol checks if a list contains a specific bare symbol
func HasSymbol(s Sexp, symbol string) bool {
	for _, item := range items(s) {
		if sym, ok := item.(Symbol); ok && string(sym) == symbol {
			return true
		}
	}

	return false
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s Sexp) (string, error) {
	if s.IsLeaf() {
		if sym, ok := s.(Symbol); ok {
			return string(sym), nil
		}
		return "", fmt.Errorf("expected symbol leaf")
	}

	elems := items(s)
	if len(elems) > 0 {
		if sym, ok := elems[0].(Symbol); ok {
			return string(sym), nil
		}
	}

	return "", fmt.Errorf("expected symbol at head of list")
}

// GetUUID extracts a UUID from a (uuid "...") node
func GetUUID(s Sexp) (UUID, error) {
	key, err := GetString(s, 0)
	if err != nil || key != "uuid" {
		return "", fmt.Errorf("expected 'uuid' node")
	}

	uuidStr, err := GetString(s, 1)
	if err != nil {
		return "", err
	}

	return UUID(uuidStr), nil
}

// GetProperty extracts a property from a (property "key" "value" ...) node
func GetProperty(s Sexp) (Property, error) {
	prop := Property{}

	key, err := GetString(s, 1)
	if err != nil {
		return prop, fmt.Errorf("failed to parse property key: %w", err)
	}
	prop.Key = key

	// Value can be empty or missing
	value, err := GetString(s, 2)
	if err != nil {
		value = ""
	}
	prop.Value = value

	return prop, nil
}
