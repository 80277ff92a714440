// Package modeljson persists parsed models as interchange documents: plain
// JSON for human inspection, gob for fast intermediate storage, and
// LZ4-compressed JSON for large model libraries.
package modeljson

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// File extensions for supported codecs.
const (
	jsonExtension = ".json"
	gobExtension  = ".gob"
	lz4Extension  = ".json.lz4"
)

// Default indentation for pretty-printed JSON.
const defaultIndent = "  "

// Codec defines how a model document is serialized and deserialized.
type Codec interface {
	// Encode writes the document to the writer.
	Encode(w io.Writer, doc any) error
	// Decode reads the document from the reader.
	Decode(r io.Reader, doc any) error
	// Extension returns the file extension for this codec.
	Extension() string
}

// JSONCodec implements Codec using JSON encoding with optional indentation.
type JSONCodec struct {
	// Indent specifies the indentation string. Empty string means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with pretty-printing (2-space indent).
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.Encode using JSON encoding.
func (c *JSONCodec) Encode(w io.Writer, doc any) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	err := encoder.Encode(doc)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode using JSON decoding.
func (c *JSONCodec) Decode(r io.Reader, doc any) error {
	decoder := json.NewDecoder(r)

	err := decoder.Decode(doc)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension for JSON files.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// GobCodec implements Codec using gob encoding.
type GobCodec struct{}

// NewGobCodec creates a gob codec.
func NewGobCodec() *GobCodec {
	return &GobCodec{}
}

// Encode implements Codec.Encode using gob encoding.
func (c *GobCodec) Encode(w io.Writer, doc any) error {
	encoder := gob.NewEncoder(w)

	err := encoder.Encode(doc)
	if err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode using gob decoding.
func (c *GobCodec) Decode(r io.Reader, doc any) error {
	decoder := gob.NewDecoder(r)

	err := decoder.Decode(doc)
	if err != nil {
		return fmt.Errorf("gob decode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension for gob files.
func (c *GobCodec) Extension() string {
	return gobExtension
}

// LZ4Codec implements Codec as compact JSON inside an LZ4 frame. Large model
// libraries are highly repetitive (qualified IDs share long prefixes), which
// LZ4 exploits well.
type LZ4Codec struct{}

// NewLZ4Codec creates an LZ4-compressed JSON codec.
func NewLZ4Codec() *LZ4Codec {
	return &LZ4Codec{}
}

// Encode implements Codec.Encode: compact JSON through an LZ4 frame writer.
func (c *LZ4Codec) Encode(w io.Writer, doc any) error {
	zw := lz4.NewWriter(w)

	encodeErr := json.NewEncoder(zw).Encode(doc)
	if encodeErr != nil {
		return fmt.Errorf("lz4 json encode: %w", encodeErr)
	}

	err := zw.Close()
	if err != nil {
		return fmt.Errorf("lz4 flush: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode for LZ4-compressed JSON.
func (c *LZ4Codec) Decode(r io.Reader, doc any) error {
	err := json.NewDecoder(lz4.NewReader(r)).Decode(doc)
	if err != nil {
		return fmt.Errorf("lz4 json decode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension for LZ4-compressed JSON files.
func (c *LZ4Codec) Extension() string {
	return lz4Extension
}
