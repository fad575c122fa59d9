package db

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"archiplan/internal/types"
)

// Snapshots are zstd-compressed JSON. Encoders and decoders are pooled
// because the designs of a project are encoded on every write.
var (
	encoderPool = sync.Pool{
		New: func() any {
			e, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
			}
			return e
		},
	}
	decoderPool = sync.Pool{
		New: func() any {
			d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
			}
			return d
		},
	}
)

// encodeSnapshot marshals v to JSON and compresses it.
func encodeSnapshot(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalCodec, "failed to encode snapshot", err)
	}
	enc := encoderPool.Get().(*zstd.Encoder)
	defer encoderPool.Put(enc)
	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// decodeSnapshot decompresses data and unmarshals it into v.
func decodeSnapshot(data []byte, v any) error {
	dec := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(dec)

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalCodec, "zstd decompression failed", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return types.NewAppError(types.ErrCodeInternalCodec, "failed to decode snapshot", err)
	}
	return nil
}

// EncodeDesigns compresses the design artifacts of a project.
func EncodeDesigns(d types.Designs) ([]byte, error) {
	return encodeSnapshot(d)
}

// DecodeDesigns restores design artifacts written by EncodeDesigns.
func DecodeDesigns(data []byte) (types.Designs, error) {
	var d types.Designs
	if len(data) == 0 {
		return d, nil
	}
	err := decodeSnapshot(data, &d)
	return d, err
}
