package utility

import (
	"crypto/md5"  //nolint:gosec // offered for compatibility, not for security
	"crypto/sha1" //nolint:gosec // offered for compatibility, not for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm names a digest algorithm.
type HashAlgorithm string

// Supported hash algorithms.
const (
	HashMD5        HashAlgorithm = "md5"
	HashSHA1       HashAlgorithm = "sha1"
	HashSHA224     HashAlgorithm = "sha224"
	HashSHA256     HashAlgorithm = "sha256"
	HashSHA384     HashAlgorithm = "sha384"
	HashSHA512     HashAlgorithm = "sha512"
	HashSHA3_256   HashAlgorithm = "sha3-256"
	HashSHA3_512   HashAlgorithm = "sha3-512"
	HashBLAKE2b256 HashAlgorithm = "blake2b-256"
	HashBLAKE2b512 HashAlgorithm = "blake2b-512"
	HashXXH64      HashAlgorithm = "xxh64"
)

// ErrUnknownHashAlgorithm is returned for a HashAlgorithm NewHash does not know.
var ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")

// NewHash returns a new hash.Hash computing alg.
func NewHash(alg HashAlgorithm) (hash.Hash, error) {
	switch alg {
	case HashMD5:
		return md5.New(), nil //nolint:gosec
	case HashSHA1:
		return sha1.New(), nil //nolint:gosec
	case HashSHA224:
		return sha256.New224(), nil
	case HashSHA256:
		return sha256.New(), nil
	case HashSHA384:
		return sha512.New384(), nil
	case HashSHA512:
		return sha512.New(), nil
	case HashSHA3_256:
		return sha3.New256(), nil
	case HashSHA3_512:
		return sha3.New512(), nil
	case HashBLAKE2b256:
		return blake2b.New256(nil)
	case HashBLAKE2b512:
		return blake2b.New512(nil)
	case HashXXH64:
		return xxhash.New(), nil
	default:
		return nil, ErrUnknownHashAlgorithm
	}
}

// Digest hashes data with alg and returns the raw digest.
func Digest(alg HashAlgorithm, data []byte) ([]byte, error) {
	h, err := NewHash(alg)
	if err != nil {
		return nil, err
	}

	_, _ = h.Write(data)

	return h.Sum(nil), nil
}

// HexDigest hashes data with alg and returns the lowercase hex digest.
func HexDigest(alg HashAlgorithm, data []byte) (string, error) {
	sum, err := Digest(alg, data)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(sum), nil
}
