package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tronlang/tron/lang/environment"
	"github.com/tronlang/tron/lang/resolver"
	"github.com/tronlang/tron/lang/value"
)

func TestDefineAndGetGlobal(t *testing.T) {
	env := environment.New(resolver.Distances{})
	env.Define("x", value.Number(1))
	v, err := env.Get("x", 99)
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func TestGetUndeclaredReportsError(t *testing.T) {
	env := environment.New(resolver.Distances{})
	_, err := env.Get("missing", 0)
	assert.Error(t, err)
}

func TestGetAtResolvedDistance(t *testing.T) {
	dist := resolver.Distances{7: 1}
	root := environment.New(dist)
	root.Define("x", value.Number(1))
	child := root.Enclose()
	child.Define("x", value.Number(2))

	// exprID 7 resolves to distance 1: the defining scope is the parent of
	// child, i.e. root, which holds Number(1).
	v, err := child.Get("x", 7)
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)

	// Unresolved (global) lookup finds root regardless of shadowing depth.
	v, err = child.Get("x", 0)
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func TestAssignAtResolvedDistanceMutatesCorrectFrame(t *testing.T) {
	dist := resolver.Distances{7: 0}
	root := environment.New(dist)
	root.Define("x", value.Number(1))
	child := root.Enclose()
	child.Define("x", value.Number(2))

	existed, err := child.Assign("x", value.Number(99), 7)
	require.NoError(t, err)
	assert.True(t, existed)

	v, err := child.Get("x", 7)
	require.NoError(t, err)
	assert.Equal(t, value.Number(99), v)

	rv, err := root.Get("x", 0)
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), rv, "assigning at distance 0 from child must not touch root")
}

func TestAssignUndeclaredWritesAnywayAndReportsNoPriorBinding(t *testing.T) {
	env := environment.New(resolver.Distances{})
	existed, err := env.Assign("missing", value.Number(1), 0)
	require.NoError(t, err)
	assert.False(t, existed, "no binding existed before the assignment")

	v, err := env.Get("missing", 0)
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v, "Assign writes unconditionally, per spec.md §4.5")
}

func TestAssignAtUnresolvableDistanceReportsError(t *testing.T) {
	dist := resolver.Distances{7: 5}
	env := environment.New(dist)
	_, err := env.Assign("x", value.Number(1), 7)
	assert.Error(t, err, "a distance deeper than the chain is a resolver/evaluator invariant violation")
}

func TestEncloseSharesDistanceMap(t *testing.T) {
	dist := resolver.Distances{1: 2}
	root := environment.New(dist)
	child := root.Enclose()
	grandchild := child.Enclose()
	root.Define("x", value.Number(5))

	v, err := grandchild.Get("x", 1)
	require.NoError(t, err)
	assert.Equal(t, value.Number(5), v)
}
