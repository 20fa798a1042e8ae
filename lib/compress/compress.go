// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress frames byte blobs with an optional compression
// step. A frame is self-describing: a one-byte algorithm tag, the
// uncompressed length as a uvarint, then the payload. Data that does
// not shrink is stored uncompressed regardless of the requested
// algorithm.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies how a frame's payload is compressed. The values
// are stored in frames; changing them breaks stored data.
type Algorithm uint8

const (
	// None stores the payload as is.
	None Algorithm = 0

	// LZ4 is block-mode LZ4: fast, modest ratio.
	LZ4 Algorithm = 1

	// Zstd is zstd at the default level. Better ratios on the
	// repetitive structure of encoded trees.
	Zstd Algorithm = 2
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", a)
	}
}

// ParseAlgorithm parses the names returned by [Algorithm.String].
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// maxFrameSize bounds the declared uncompressed size accepted by
// Decode, so a corrupt header cannot trigger a huge allocation.
const maxFrameSize = 1 << 30

// Encode compresses data with algorithm and returns the frame.
func Encode(data []byte, algorithm Algorithm) ([]byte, error) {
	payload, used, err := compressPayload(data, algorithm)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, 1, 1+binary.MaxVarintLen64+len(payload))
	frame[0] = byte(used)
	frame = binary.AppendUvarint(frame, uint64(len(data)))
	return append(frame, payload...), nil
}

// FrameAlgorithm returns the algorithm recorded in frame.
func FrameAlgorithm(frame []byte) (Algorithm, error) {
	if len(frame) == 0 {
		return 0, errors.New("empty frame")
	}
	return Algorithm(frame[0]), nil
}

// Decode reverses [Encode].
func Decode(frame []byte) ([]byte, error) {
	algorithm, err := FrameAlgorithm(frame)
	if err != nil {
		return nil, err
	}
	size, read := binary.Uvarint(frame[1:])
	if read <= 0 {
		return nil, errors.New("frame: malformed length")
	}
	if size > maxFrameSize {
		return nil, fmt.Errorf("frame: declared size %d exceeds limit %d", size, maxFrameSize)
	}
	payload := frame[1+read:]

	switch algorithm {
	case None:
		if uint64(len(payload)) != size {
			return nil, fmt.Errorf("uncompressed frame: size %d does not match expected %d", len(payload), size)
		}
		return payload, nil
	case LZ4:
		return decompressLZ4(payload, int(size))
	case Zstd:
		return decompressZstd(payload, int(size))
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

// compressPayload returns the compressed payload and the algorithm
// actually used, which is None when compression did not help.
func compressPayload(data []byte, algorithm Algorithm) ([]byte, Algorithm, error) {
	var (
		compressed []byte
		err        error
	)
	switch algorithm {
	case None:
		return data, None, nil
	case LZ4:
		compressed, err = compressLZ4(data)
	case Zstd:
		compressed, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
	if errors.Is(err, errIncompressible) {
		return data, None, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return compressed, algorithm, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use with
// EncodeAll and DecodeAll, so one of each is shared.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
	}
	return result, nil
}

var errIncompressible = errors.New("data is incompressible")
