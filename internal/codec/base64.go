package codec

import (
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

var base64Alphabet = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Base64Info describes the payload carried by a Base64 string
type Base64Info struct {
	Size          int    `json:"size"`
	SizeFormatted string `json:"size_formatted"`
	IsValid       bool   `json:"is_valid"`
}

// EncodeBase64 encodes the UTF-8 bytes of text with the standard padded alphabet
func EncodeBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeBase64 decodes standard padded Base64 into a UTF-8 string
func DecodeBase64(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", errors.NewEncodingError("failed to decode Base64", errors.ErrInvalidBase64)
	}
	if !utf8.Valid(data) {
		return "", errors.NewEncodingError("decoded Base64 is not valid UTF-8 text", errors.ErrInvalidBase64)
	}
	return string(data), nil
}

// ValidateBase64 checks the alphabet, the length and that the input decodes
func ValidateBase64(text string) models.Validation {
	if !base64Alphabet.MatchString(text) {
		return models.Validation{Valid: false, Error: "contains characters outside the Base64 alphabet"}
	}
	if len(text)%4 != 0 {
		return models.Validation{Valid: false, Error: "length is not a multiple of 4"}
	}
	if _, err := base64.StdEncoding.DecodeString(text); err != nil {
		return models.Validation{Valid: false, Error: "invalid Base64 format"}
	}
	return models.Validation{Valid: true}
}

// Base64BytesInfo reports the decoded size of a Base64 string
func Base64BytesInfo(text string) Base64Info {
	if !ValidateBase64(text).Valid {
		return Base64Info{Size: 0, SizeFormatted: humanize.IBytes(0), IsValid: false}
	}
	size := len(text)*3/4 - strings.Count(text, "=")
	return Base64Info{
		Size:          size,
		SizeFormatted: humanize.IBytes(uint64(size)),
		IsValid:       true,
	}
}
