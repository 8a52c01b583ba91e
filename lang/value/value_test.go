package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tronlang/tron/lang/value"
)

func TestTruthiness(t *testing.T) {
	assert.Equal(t, value.False, value.Number(0).Truth())
	assert.Equal(t, value.True, value.Number(1).Truth())
	assert.Equal(t, value.False, value.String("").Truth())
	assert.Equal(t, value.True, value.String("x").Truth())
	assert.Equal(t, value.False, value.NullValue.Truth())
	assert.Equal(t, value.False, value.Bool(false).Truth())
	assert.Equal(t, value.False, value.NewArray(nil).Truth())
	assert.Equal(t, value.True, value.NewArray([]value.Value{value.Number(1)}).Truth())
}

func TestObjectAndCallableAreAlwaysTruthy(t *testing.T) {
	obj := value.NewObject(0)
	assert.Equal(t, value.True, obj.Truth())
	fn := &value.Function{FnName: "f"}
	assert.Equal(t, value.True, fn.Truth())
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "3", value.Number(3).String())
	assert.Equal(t, "3.5", value.Number(3.5).String())
}

func TestEqualPrimitives(t *testing.T) {
	assert.True(t, value.Equal(value.Number(1), value.Number(1)))
	assert.False(t, value.Equal(value.Number(1), value.Number(2)))
	assert.True(t, value.Equal(value.String("a"), value.String("a")))
	assert.True(t, value.Equal(value.NullValue, value.NullValue))
	assert.False(t, value.Equal(value.Number(1), value.String("1")))
}

func TestEqualArraysByIdentityOnly(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1)})
	b := value.NewArray([]value.Value{value.Number(1)})
	assert.False(t, value.Equal(a, b))
	assert.True(t, value.Equal(a, a))
}

func TestEqualCallablesByNameAndArity(t *testing.T) {
	f1 := &value.Function{FnName: "f", Params: nil}
	f2 := &value.Builtin{BuiltinName: "f", NumArgs: 0}
	assert.True(t, value.Equal(f1, f2))
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := value.NewObject(4)
	o.Set("b", value.Number(2))
	o.Set("a", value.Number(1))
	assert.Equal(t, []string{"b", "a"}, o.Keys())
	v, ok := o.Get("a")
	assert.True(t, ok)
	assert.Equal(t, value.Number(1), v)
}

func TestArrayAppendAndIndex(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	a.Append(value.Number(3))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, value.Number(3), a.Index(2))
	a.SetIndex(0, value.Number(10))
	assert.Equal(t, value.Number(10), a.Index(0))
}
