package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	v, err := Parse(strings.NewReader(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`))
	require.NoError(t, err)

	require.True(t, v.IsObject())
	assert.Equal(t, []string{"name", "age", "isStudent", "city"}, v.Keys())

	name, ok := v.Get("name")
	require.True(t, ok)
	assert.Equal(t, "John Doe", name.Str())

	age, _ := v.Get("age")
	assert.Equal(t, json.Number("30"), age.Number())

	student, _ := v.Get("isStudent")
	assert.Equal(t, models.BoolKind, student.Kind())
	assert.False(t, student.Bool())

	city, _ := v.Get("city")
	assert.True(t, city.IsNull())
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	v, err := ParseString(`{"zeta": 1, "alpha": {"y": 1, "x": 2}, "mid": 3}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, v.Keys())
	alpha, _ := v.Get("alpha")
	assert.Equal(t, []string{"y", "x"}, alpha.Keys())
}

func TestParse_DuplicateKeys(t *testing.T) {
	v, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	a, _ := v.Get("a")
	assert.Equal(t, json.Number("3"), a.Number())
}

func TestParse_SimpleArray(t *testing.T) {
	v, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	require.NoError(t, err)

	require.True(t, v.IsArray())
	items := v.Items()
	require.Len(t, items, 5)
	assert.Equal(t, json.Number("1"), items[0].Number())
	assert.Equal(t, "test", items[1].Str())
	assert.True(t, items[2].Bool())
	assert.True(t, items[3].IsNull())
	assert.Equal(t, json.Number("3.14"), items[4].Number())
}

func TestParse_NestedEmptyContainers(t *testing.T) {
	v, err := ParseString(`{"obj": {}, "arr": []}`)
	require.NoError(t, err)

	obj, _ := v.Get("obj")
	assert.True(t, obj.IsObject())
	assert.Equal(t, 0, obj.Len())

	arr, _ := v.Get("arr")
	assert.True(t, arr.IsArray())
	assert.Equal(t, 0, arr.Len())
}

func TestParse_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name     string
		jsonStr  string
		kind     models.Kind
		expected models.Value
	}{
		{"RootString", `"hello world"`, models.StringKind, models.String("hello world")},
		{"RootNumber", `123.45`, models.NumberKind, models.Number("123.45")},
		{"RootBooleanTrue", `true`, models.BoolKind, models.Bool(true)},
		{"RootBooleanFalse", `false`, models.BoolKind, models.Bool(false)},
		{"RootNull", `null`, models.NullKind, models.Null()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(strings.NewReader(tc.jsonStr))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind())
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		contains string
	}{
		{name: "empty reader", input: "", sentinel: errors.ErrEmptyInput, contains: "input is empty"},
		{name: "missing closing brace", input: `{"name": "John Doe", "age": 30`, sentinel: errors.ErrInvalidJSON, contains: "unexpected end"},
		{name: "missing closing bracket", input: `["item1", "item2",`, sentinel: errors.ErrInvalidJSON, contains: "unexpected end"},
		{name: "bad key", input: `{bad json`, sentinel: errors.ErrInvalidJSON, contains: "syntax error"},
		{name: "trailing comma", input: `[1,]`, sentinel: errors.ErrInvalidJSON, contains: "syntax error"},
		{name: "multiple roots", input: `{} {}`, sentinel: errors.ErrMultipleJSON, contains: "multiple JSON values"},
		{name: "trailing garbage", input: `{"a":1} x`, contains: "invalid trailing data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsParsingError(err), "expected a parsing error, got %v", err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	_, err := ParseString("{\"a\": 1}\n\n  \t")
	assert.NoError(t, err)
}

func TestParse_MaxDepth(t *testing.T) {
	nested := strings.Repeat("[", 5) + strings.Repeat("]", 5)

	_, err := ParseString(nested, WithMaxDepth(5))
	assert.NoError(t, err)

	_, err = ParseString(nested, WithMaxDepth(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
	assert.Contains(t, err.Error(), "deeper than 4 levels")

	_, err = ParseString(`{"a":{"b":{"c":1}}}`, WithMaxDepth(2))
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
}

func TestParse_MaxDepthDisabled(t *testing.T) {
	deep := strings.Repeat("[", DefaultMaxDepth+10) + strings.Repeat("]", DefaultMaxDepth+10)

	_, err := ParseString(deep)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)

	_, err = ParseString(deep, WithMaxDepth(0))
	assert.NoError(t, err)
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrEmptyInput)
		assert.Contains(t, err.Error(), "input string is empty")
	}
}

func TestParseBytes(t *testing.T) {
	v, err := ParseBytes([]byte(`{"ok": true}`))
	require.NoError(t, err)
	ok, _ := v.Get("ok")
	assert.True(t, ok.Bool())
}

func TestParseFile_SimpleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"product": "Laptop", "price": 1200.50}`), 0o644))

	v, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"product", "price"}, v.Keys())
	price, _ := v.Get("price")
	assert.Equal(t, json.Number("1200.50"), price.Number())
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile("nonexistentfile.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFilePath)
	assert.Contains(t, err.Error(), "file path is empty")
}

func TestParseFile_EmptyFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)
}

func TestValidate(t *testing.T) {
	assert.Equal(t, models.Validation{Valid: true}, Validate(`{"a": [1, 2, 3]}`))

	res := Validate(`{"a": }`)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "syntax error")

	res = Validate("")
	assert.False(t, res.Valid)
	assert.Equal(t, "input string is empty", res.Error)
}
