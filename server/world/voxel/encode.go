package voxel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/df-mc/worldgen/server/block/cube"
	"github.com/df-mc/worldgen/server/world/material"
	"github.com/klauspost/compress/zstd"
)

const encodingVersion = 1

// headerSize holds the version byte followed by six int32 values: the minimum corner and the size.
const headerSize = 1 + 6*4

// ErrMalformed is returned by Decode when the data passed is not a valid encoded Buffer.
var ErrMalformed = errors.New("voxel: malformed buffer encoding")

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func codec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// Encode encodes the Buffer passed into a zstd compressed byte slice that may be decoded using Decode.
func Encode(b *Buffer) ([]byte, error) {
	enc, _, err := codec()
	if err != nil {
		return nil, fmt.Errorf("voxel: init zstd: %w", err)
	}
	if b.bounds.Empty() {
		return nil, fmt.Errorf("voxel: cannot encode empty buffer")
	}
	raw := make([]byte, headerSize+len(b.materials)*2)
	raw[0] = encodingVersion
	size := b.bounds.Size()
	for i, v := range [6]int{b.min[0], b.min[1], b.min[2], size[0], size[1], size[2]} {
		binary.LittleEndian.PutUint32(raw[1+i*4:], uint32(int32(v)))
	}
	for i, m := range b.materials {
		binary.LittleEndian.PutUint16(raw[headerSize+i*2:], uint16(m))
	}
	return enc.EncodeAll(raw, nil), nil
}

// Decode decodes a Buffer previously encoded using Encode.
func Decode(data []byte) (*Buffer, error) {
	_, dec, err := codec()
	if err != nil {
		return nil, fmt.Errorf("voxel: init zstd: %w", err)
	}
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) < headerSize || raw[0] != encodingVersion {
		return nil, ErrMalformed
	}
	var v [6]int
	for i := range v {
		v[i] = int(int32(binary.LittleEndian.Uint32(raw[1+i*4:])))
	}
	if v[3] <= 0 || v[4] <= 0 || v[5] <= 0 {
		return nil, ErrMalformed
	}
	lo := cube.Pos{v[0], v[1], v[2]}
	b := NewBuffer(cube.NewBounds(lo, lo.Add(cube.Pos{v[3] - 1, v[4] - 1, v[5] - 1})))
	if len(raw) != headerSize+len(b.materials)*2 {
		return nil, ErrMalformed
	}
	for i := range b.materials {
		b.materials[i] = material.Material(binary.LittleEndian.Uint16(raw[headerSize+i*2:]))
	}
	return b, nil
}
