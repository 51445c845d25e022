package rite

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Canonical CBOR so equal chunks always encode to equal bytes; the
// content hash depends on it.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("rite: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ErrBadHeader indicates bytes that are not a chunk of a supported
// format version.
var ErrBadHeader = errors.New("rite: bad chunk header")

// Marshal serializes a chunk to canonical CBOR bytes, stamping the
// format header.
func Marshal(c *Chunk) ([]byte, error) {
	c.Magic = Magic
	c.Version = Version
	return cborEncMode.Marshal(c)
}

// Unmarshal deserializes a chunk, validating the format header.
func Unmarshal(data []byte) (*Chunk, error) {
	var c Chunk
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("rite: unmarshal chunk: %w", err)
	}
	if c.Magic != Magic || c.Version != Version {
		return nil, fmt.Errorf("%w: magic=%q version=%d", ErrBadHeader, c.Magic, c.Version)
	}
	return &c, nil
}

// Hash returns the chunk's content address: the sha256 of its
// canonical encoding.
func Hash(c *Chunk) ([32]byte, error) {
	data, err := Marshal(c)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// HashHex returns the content address in hex form.
func HashHex(c *Chunk) (string, error) {
	h, err := Hash(c)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h[:]), nil
}
