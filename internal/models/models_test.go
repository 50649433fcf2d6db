package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name     string
		path     Path
		expected string
	}{
		{"root", nil, ""},
		{"field", Path{}.Field("a"), "a"},
		{"nested", Path{}.Field("a").Field("b").Index(2).Field("c"), "a.b[2].c"},
		{"leading index", Path{}.Index(0).Field("id"), "[0].id"},
		{"consecutive indexes", Path{}.Field("m").Index(1).Index(3), "m[1][3]"},
		{"key with dot", Path{}.Field("a.b"), "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.path.String())
		})
	}
}

func TestPath_NoAliasing(t *testing.T) {
	base := Path{}.Field("a").Field("b")
	left := base.Field("x")
	right := base.Field("y")

	assert.Equal(t, "a.b.x", left.String())
	assert.Equal(t, "a.b.y", right.String())
	assert.Equal(t, "a.b", base.String())
	assert.True(t, Path{}.IsRoot())
	assert.False(t, base.IsRoot())
}

func TestPath_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Path{"at": Path{}.Field("users").Index(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"users[1]"}`, string(data))
}

func TestValue_Accessors(t *testing.T) {
	v := Object(
		M("name", String("Alice")),
		M("age", Number("30")),
		M("tags", Array(String("a"), Null())),
		M("active", Bool(true)),
	)

	assert.Equal(t, ObjectKind, v.Kind())
	assert.True(t, v.IsObject())
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, []string{"name", "age", "tags", "active"}, v.Keys())
	assert.True(t, v.Has("tags"))
	assert.False(t, v.Has("missing"))

	name, ok := v.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name.Str())

	tags, _ := v.Get("tags")
	assert.True(t, tags.IsArray())
	assert.True(t, tags.Items()[1].IsNull())

	age, _ := v.Get("age")
	assert.Equal(t, json.Number("30"), age.Number())

	assert.Equal(t, map[string]int{"name": 0, "age": 1, "tags": 2, "active": 3}, v.KeyIndex())
	assert.Nil(t, String("x").Keys())
	assert.Equal(t, 0, Bool(false).Len())
}

func TestObject_RepeatedKeys(t *testing.T) {
	input := []Member{
		M("a", Number("1")),
		M("b", Number("2")),
		M("a", Number("3")),
		M("c", Number("4")),
		M("b", Number("5")),
	}
	v := Object(input...)

	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
	a, _ := v.Get("a")
	b, _ := v.Get("b")
	assert.Equal(t, json.Number("3"), a.Number())
	assert.Equal(t, json.Number("5"), b.Number())
	assert.Equal(t, 3, v.Len())

	// the caller's slice is left alone
	assert.Equal(t, "a", input[2].Key)
	assert.Equal(t, json.Number("1"), input[0].Value.Number())
}

func TestObject_UniqueKeysKeepOrder(t *testing.T) {
	v := Object(M("z", Null()), M("y", Bool(true)))
	assert.Equal(t, []string{"z", "y"}, v.Keys())
	assert.Empty(t, Object().Keys())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", ObjectKind.String())
	assert.Equal(t, "null", NullKind.String())
}
