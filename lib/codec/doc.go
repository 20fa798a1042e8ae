// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides graphgen's CBOR encoding configuration.
//
// graphgen persists two kinds of binary data: fingerprint trees in the
// cache database and side-effect plans written by dry runs. Both are
// CBOR, encoded with Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. The same logical value always produces the same bytes, so a
// stored plan can itself be compared byte-for-byte.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types that are only ever CBOR use `cbor` struct tags. Graph types
// carry `json` tags (they are loaded from JSONC) and rely on the
// library's fallback to json tag names.
package codec
