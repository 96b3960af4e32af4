package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// BlobVersion is the envelope format written by Pack. Changing the envelope
// layout requires bumping it.
const BlobVersion = 1

// ErrCorrupt reports a portable blob that cannot be decoded back into its
// lexicon and model artifacts.
var ErrCorrupt = errors.New("corrupt model data")

type envelope struct {
	Version  int    `cbor:"version"`
	Lexicon  []byte `cbor:"lexicon"`
	Model    []byte `cbor:"model"`
	Checksum []byte `cbor:"checksum"`
}

// Pack bundles the serialized lexicon and scorer model into a text-safe
// string: CBOR envelope, zstd compressed, base64 encoded.
func Pack(lexicon, model []byte) (string, error) {
	env := envelope{
		Version:  BlobVersion,
		Lexicon:  lexicon,
		Model:    model,
		Checksum: checksum(lexicon, model),
	}
	raw, err := Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return base64.StdEncoding.EncodeToString(Compress(raw)), nil
}

// Unpack inverts Pack. Every failure wraps ErrCorrupt.
func Unpack(blob string) (lexicon, model []byte, err error) {
	compressed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: base64: %v", ErrCorrupt, err)
	}
	raw, err := Decompress(compressed)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var env envelope
	if err := Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: envelope: %v", ErrCorrupt, err)
	}
	if env.Version != BlobVersion {
		return nil, nil, fmt.Errorf("%w: unsupported envelope version %d", ErrCorrupt, env.Version)
	}
	if !bytes.Equal(env.Checksum, checksum(env.Lexicon, env.Model)) {
		return nil, nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return env.Lexicon, env.Model, nil
}

func checksum(lexicon, model []byte) []byte {
	h := blake3.New()
	// Length prefix keeps (ab, c) and (a, bc) distinct.
	fmt.Fprintf(h, "%d:", len(lexicon))
	h.Write(lexicon)
	h.Write(model)
	return h.Sum(nil)
}
