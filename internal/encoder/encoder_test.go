package encoder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/devkit/internal/models"
)

func TestMarshal(t *testing.T) {
	doc := models.Object(
		models.M("name", models.String("devkit")),
		models.M("tags", models.Array(models.String("json"), models.Bool(true), models.Null())),
		models.M("empty", models.Object()),
		models.M("none", models.Array()),
		models.M("n", models.Number("12")),
	)

	assert.Equal(t, `{"name":"devkit","tags":["json",true,null],"empty":{},"none":[],"n":12}`, MarshalString(doc))
}

func TestMarshalIndent(t *testing.T) {
	doc := models.Object(
		models.M("a", models.Number("1")),
		models.M("b", models.Array(models.Number("2"), models.Object(models.M("c", models.Null())))),
		models.M("d", models.Object()),
	)

	expected := `{
  "a": 1,
  "b": [
    2,
    {
      "c": null
    }
  ],
  "d": {}
}`
	assert.Equal(t, expected, string(MarshalIndent(doc, 2)))
	assert.Equal(t, `{"a":1,"b":[2,{"c":null}],"d":{}}`, string(MarshalIndent(doc, 0)))
}

func TestMarshal_Strings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain`, `"plain"`},
		{`<b>&</b>`, `"<b>&</b>"`},
		{"quote \" and backslash \\", `"quote \" and backslash \\"`},
		{"line\nbreak\ttab", `"line\nbreak\ttab"`},
		{"héllo 世界", `"héllo 世界"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MarshalString(models.String(tt.input)))
	}
}

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		input    json.Number
		expected string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"42", "42"},
		{"-17", "-17"},
		{"12345678901234567890", "12345678901234567890"},
		{"999999999999999999999", "999999999999999999999"},
		{"12345678901234567890123", "1.2345678901234567890123e+22"},
		{"100000000000000000000000", "1e+23"},
		{"-1000000000000000000000", "-1e+21"},
		{"1.0", "1"},
		{"1.50", "1.5"},
		{"-0.0", "0"},
		{"1e2", "100"},
		{"1E2", "100"},
		{"2.5e-3", "0.0025"},
		{"1e-7", "1e-7"},
		{"1.5e-10", "1.5e-10"},
		{"1e21", "1e+21"},
		{"123e20", "1.23e+22"},
		{"0.1", "0.1"},
		{"1e400", "1e400"},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalNumber(tt.input))
		})
	}
}

func TestCanonicalNumber_LargeIntegerMatchesExponentLiteral(t *testing.T) {
	pairs := [][2]json.Number{
		{"100000000000000000000000", "1e23"},
		{"1000000000000000000000", "1E21"},
		{"-25000000000000000000000", "-2.5e22"},
	}

	for _, p := range pairs {
		t.Run(string(p[0]), func(t *testing.T) {
			assert.Equal(t, CanonicalNumber(p[1]), CanonicalNumber(p[0]))
		})
	}
}
