// Package hashing computes hex digests of text and files.
package hashing

import (
	"crypto/md5"  //nolint:gosec // offered as a checksum, not for security
	"crypto/sha1" //nolint:gosec // offered as a checksum, not for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

// Algorithm names a supported digest
type Algorithm string

const (
	MD5        Algorithm = "MD5"
	SHA1       Algorithm = "SHA1"
	SHA256     Algorithm = "SHA256"
	SHA512     Algorithm = "SHA512"
	SHA3_256   Algorithm = "SHA3-256"
	BLAKE2b256 Algorithm = "BLAKE2B-256"
)

// AlgorithmInfo describes an algorithm for listings
type AlgorithmInfo struct {
	Name        Algorithm `json:"name"`
	Bits        int       `json:"bits"`
	Description string    `json:"description"`
}

var algorithms = []AlgorithmInfo{
	{MD5, 128, "common but not collision resistant"},
	{SHA1, 160, "legacy, avoid for new uses"},
	{SHA256, 256, "strong general purpose digest"},
	{SHA512, 512, "strong, larger digest"},
	{SHA3_256, 256, "Keccak based SHA-3"},
	{BLAKE2b256, 256, "fast modern digest"},
}

var md5Pattern = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)

// Algorithms lists the supported algorithms
func Algorithms() []AlgorithmInfo {
	out := make([]AlgorithmInfo, len(algorithms))
	copy(out, algorithms)
	return out
}

// ParseAlgorithm resolves a name case-insensitively; "sha-256" and "sha256" are the same.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, info := range algorithms {
		if normalized == string(info.Name) || strings.ReplaceAll(normalized, "-", "") == strings.ReplaceAll(string(info.Name), "-", "") {
			return info.Name, nil
		}
	}
	return "", errors.NewHashError(fmt.Sprintf("unsupported algorithm '%s'", name), errors.ErrUnsupportedAlgorithm)
}

func newHash(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case MD5:
		return md5.New(), nil //nolint:gosec
	case SHA1:
		return sha1.New(), nil //nolint:gosec
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case BLAKE2b256:
		// A nil key never fails.
		h, _ := blake2b.New256(nil)
		return h, nil
	default:
		return nil, errors.NewHashError(fmt.Sprintf("unsupported algorithm '%s'", algo), errors.ErrUnsupportedAlgorithm)
	}
}

// Generate returns the lowercase hex digest of text
func Generate(text string, algo Algorithm) (string, error) {
	return GenerateReader(strings.NewReader(text), algo)
}

// GenerateReader streams r through the digest, for files and stdin
func GenerateReader(r io.Reader, algo Algorithm) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.NewHashError("failed to read input", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// BatchGenerate hashes each text independently. A failure is reported in place.
func BatchGenerate(texts []string, algo Algorithm) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		sum, err := Generate(text, algo)
		if err != nil {
			out[i] = "error: " + errors.UserFriendlyError(err)
			continue
		}
		out[i] = sum
	}
	return out
}

// ValidateMD5 checks for 32 hexadecimal characters
func ValidateMD5(sum string) models.Validation {
	if !md5Pattern.MatchString(sum) {
		return models.Validation{Valid: false, Error: "an MD5 digest is 32 hexadecimal characters"}
	}
	return models.Validation{Valid: true}
}

// CompareHashes compares two hex digests ignoring case
func CompareHashes(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
