// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for machine-readable
// miptools output.
//
// Request listings are available as JSON for people and scripts and
// as one CBOR array for consumers that want a compact, typed form
// (the queue dashboards and the migration worker's reconciler). Both
// forms come from the same structs: fxamacker/cbor reads `json` tags
// when `cbor` tags are absent, so one `json` tag names a field in
// both.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same listing always produces identical bytes and can be compared or
// hashed directly.
//
//	data, err := codec.Marshal(records)
//	...
//	var decoded []Record
//	err = codec.Unmarshal(data, &decoded)
package codec
