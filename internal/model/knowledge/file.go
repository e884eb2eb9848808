package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidDocument reports a knowledge file that cannot back the responder.
var ErrInvalidDocument = errors.New("invalid knowledge document")

// Document is the JSON layout accepted by LoadFile.
type Document struct {
	Dos      []string `json:"dos"`
	Donts    []string `json:"donts"`
	DietTips []string `json:"diet_tips"`
	Plans    []Plan   `json:"plans"`
	Fallback string   `json:"fallback"`
}

// LoadFile reads a knowledge base from a JSON document on disk.
func LoadFile(path string) (*Base, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge file %s: %w", path, err)
	}

	return FromDocument(doc)
}

// FromDocument validates a decoded document and builds a Base from it.
func FromDocument(doc Document) (*Base, error) {
	if strings.TrimSpace(doc.Fallback) == "" {
		return nil, fmt.Errorf("%w: fallback is required", ErrInvalidDocument)
	}

	seen := make(map[string]bool, len(doc.Plans))
	for i, plan := range doc.Plans {
		name := strings.ToLower(strings.TrimSpace(plan.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: plan %d has no name", ErrInvalidDocument, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate plan %q", ErrInvalidDocument, name)
		}
		seen[name] = true
		for _, slot := range Slots {
			if strings.TrimSpace(plan.Meals[slot]) == "" {
				return nil, fmt.Errorf("%w: plan %q is missing %s", ErrInvalidDocument, name, slot)
			}
		}
	}

	return New(map[Category][]string{
		Dos:      doc.Dos,
		Donts:    doc.Donts,
		DietTips: doc.DietTips,
	}, doc.Plans, doc.Fallback), nil
}
