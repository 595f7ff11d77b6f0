package hasher

import (
	"crypto/md5" //nolint:gosec // change detection, not security
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

type Algorithm string

const (
	AlgorithmMD5    Algorithm = "md5"
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmXXHash Algorithm = "xxhash"

	DefaultAlgorithm = AlgorithmMD5
)

//nolint:gochecknoglobals // constructor table
var constructors = map[Algorithm]func() hash.Hash{
	AlgorithmMD5:    md5.New,
	AlgorithmSHA256: sha256.New,
	AlgorithmXXHash: func() hash.Hash { return xxhash.New() },
}

// Hasher computes hex encoded content digests of files.
type Hasher struct {
	algorithm Algorithm
	newHash   func() hash.Hash
}

// New returns a Hasher for the named algorithm. An empty name selects
// DefaultAlgorithm.
func New(algorithm string) (*Hasher, error) {
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	return &Hasher{
		algorithm: algo,
		newHash:   constructors[algo],
	}, nil
}

func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultAlgorithm, nil
	}

	algo := Algorithm(name)
	if _, ok := constructors[algo]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}

	return algo, nil
}

func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

// Sum reads the whole file at path and returns its digest.
func (h *Hasher) Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("can't open %s: %w", path, err)
	}
	defer f.Close()

	digest := h.newHash()
	if _, err := io.Copy(digest, f); err != nil {
		return "", fmt.Errorf("can't read %s: %w", path, err)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

func (h *Hasher) SumBytes(data []byte) string {
	digest := h.newHash()
	_, _ = digest.Write(data)

	return hex.EncodeToString(digest.Sum(nil))
}
