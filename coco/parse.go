package coco

import (
	"encoding/json"
	"fmt"
	"io"
)

// ParseDocument parses a server-shaped CoCo JSON document and validates its
// structure. The returned document is ready to hand to the transformation
// engine.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse CoCo document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeDocument reads and parses a server-shaped CoCo JSON document from r.
func DecodeDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CoCo document: %w", err)
	}
	return ParseDocument(data)
}
