package native

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsPrecision(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"px":0.1000000000000000055,"ts":"1684627200000","n":12}`))
	require.NoError(t, err)
	require.Equal(t, "0.1000000000000000055", Number(obj, "px"))
	require.Equal(t, int64(1684627200000), Int64(obj, "ts"))
	require.Equal(t, int64(12), Int64(obj, "n"))
}

func TestAccessors(t *testing.T) {
	obj := Object{
		"a":     "",
		"b":     "x",
		"flag":  "true",
		"inner": map[string]interface{}{"k": "v"},
		"list":  []interface{}{map[string]interface{}{"id": "1"}, "skip"},
		"bad":   "n/a",
	}
	require.Equal(t, "x", String(obj, "a", "b"))
	require.Equal(t, "", Number(obj, "bad"))
	require.False(t, Decimal(obj, "bad").Valid)

	b, ok := Bool(obj, "flag")
	require.True(t, ok)
	require.True(t, b)

	require.Equal(t, "v", String(Obj(obj, "inner"), "k"))
	require.Nil(t, Obj(obj, "b"))
	require.Len(t, Objects(obj["list"]), 1)

	merged := Extend(Object{"a": 1}, Object{"a": 2, "c": 3})
	require.Equal(t, 2, merged["a"])
	require.NotContains(t, Omit(merged, "c"), "c")
	require.Contains(t, merged, "c")
}
