// Package sle defines the serialized ledger entries that make up the
// engine's state, together with their wire codec.
//
// Entries are encoded as canonical CBOR: struct fields are emitted as a
// fixed-order array (ToArray), so equal entries always serialize to equal
// bytes — the apply-state table relies on that for change detection.
package sle

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	h.StructToArray = true
	return h
}()

// Marshal encodes an entry to its canonical byte form.
func Marshal(v any) ([]byte, error) {
	var b []byte
	enc := codec.NewEncoderBytes(&b, cborHandle)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("sle: encode %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal decodes an entry previously produced by Marshal.
func Unmarshal(data []byte, v any) error {
	dec := codec.NewDecoderBytes(data, cborHandle)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("sle: decode %T: %w", v, err)
	}
	return nil
}
