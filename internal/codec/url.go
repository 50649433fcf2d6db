package codec

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

// URLParts holds the components of an absolute URL
type URLParts struct {
	Protocol string `json:"protocol"`
	Hostname string `json:"hostname"`
	Port     string `json:"port"`
	Pathname string `json:"pathname"`
	Search   string `json:"search"`
	Hash     string `json:"hash"`
	Origin   string `json:"origin"`
}

// unreserved reports whether c is left as is by EncodeURL
func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// EncodeURL percent-encodes every byte except the component-safe set
// A-Z a-z 0-9 - _ . ! ~ * ' ( ). Spaces become %20.
func EncodeURL(text string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

// DecodeURL reverses percent-encoding. A plus sign is kept as is.
func DecodeURL(encoded string) (string, error) {
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return "", errors.NewEncodingError("failed to decode URL component", err)
	}
	return decoded, nil
}

// BatchEncodeURL encodes each line independently
func BatchEncodeURL(texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = EncodeURL(text)
	}
	return out
}

// BatchDecodeURL decodes each line independently. A line that fails
// to decode is replaced by an error description instead of failing the batch.
func BatchDecodeURL(texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		decoded, err := DecodeURL(text)
		if err != nil {
			out[i] = "error: " + errors.UserFriendlyError(err)
			continue
		}
		out[i] = decoded
	}
	return out
}

// ValidateURL reports whether raw is an absolute URL with a scheme and host
func ValidateURL(raw string) models.Validation {
	if _, err := ParseURL(raw); err != nil {
		return models.Validation{Valid: false, Error: "invalid URL format"}
	}
	return models.Validation{Valid: true}
}

// ParseURL splits an absolute URL into its components
func ParseURL(raw string) (URLParts, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return URLParts{}, errors.NewEncodingError("failed to parse URL", err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return URLParts{}, errors.NewEncodingError(fmt.Sprintf("'%s' is not an absolute URL", raw), errors.ErrInvalidURL)
	}

	parts := URLParts{
		Protocol: u.Scheme + ":",
		Hostname: u.Hostname(),
		Port:     u.Port(),
		Pathname: u.EscapedPath(),
		Origin:   u.Scheme + "://" + u.Host,
	}
	if u.Host == "" {
		parts.Origin = "null"
		parts.Pathname = u.Opaque
	} else if parts.Pathname == "" {
		parts.Pathname = "/"
	}
	if u.RawQuery != "" {
		parts.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		parts.Hash = "#" + u.EscapedFragment()
	}
	return parts, nil
}

// BuildQuery renders params as a query string with keys in sorted order
func BuildQuery(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		values.Add(k, v)
	}
	return values.Encode()
}

// ParseQuery parses a query string, with or without its leading '?'.
// When a key repeats, the last value wins.
func ParseQuery(query string) (map[string]string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return nil, errors.NewEncodingError("failed to parse query string", err)
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[len(v)-1]
		}
	}
	return out, nil
}

// SortedKeys returns the keys of a parsed query in ascending order
func SortedKeys(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
