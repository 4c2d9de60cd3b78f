package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/minio/highwayhash"
	"github.com/zeebo/blake3"
)

const chunkSize = 4096

// Maker constructs a fresh digest state. Every scan worker owns one
// instance; fingerprints are only comparable between files digested with
// the same algorithm.
type Maker func() hash.Hash

const DefaultAlgorithm = "sha256"

// HighwayHash is keyed; the key is fixed so that all workers of a scan
// produce comparable fingerprints.
var highwayKey []byte

func init() {
	key, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		panic(err)
	}
	highwayKey = key
}

// ByName resolves an algorithm name to its Maker. The empty string selects
// the default.
func ByName(name string) (Maker, error) {
	switch name {
	case "", "sha256":
		return sha256.New, nil
	case "blake3":
		return func() hash.Hash { return blake3.New() }, nil
	case "highway":
		return func() hash.Hash {
			h, err := highwayhash.New(highwayKey)
			if err != nil {
				panic(err)
			}
			return h
		}, nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %q", name)
}

// A Hasher digests files one at a time, reusing its state and read buffer
// between files. Not safe for concurrent use; give each worker its own.
type Hasher struct {
	hash hash.Hash
	buf  []byte
}

func New(m Maker) *Hasher {
	return &Hasher{hash: m(), buf: make([]byte, chunkSize)}
}

// Sum streams the file at path through the digest in fixed-size chunks and
// returns the fingerprint hex-encoded. The file is read to EOF; any open or
// read error is returned and no fingerprint is produced.
func (h *Hasher) Sum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h.hash.Reset()
	for {
		nr, er := file.Read(h.buf)
		if nr > 0 {
			nw, ew := h.hash.Write(h.buf[:nr])
			if ew != nil {
				return "", ew
			}
			if nr != nw {
				return "", io.ErrShortWrite
			}
		}
		if er == io.EOF {
			break
		}
		if er != nil {
			return "", er
		}
	}
	return hex.EncodeToString(h.hash.Sum(nil)), nil
}
