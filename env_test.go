package diylisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	env := NewEnv(map[Symbol]Expr{"x": Integer(1)})

	val, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Integer(1), val)

	_, err = env.Lookup("y")
	assert.Equal(t, UnboundSymbol, KindOf(err))
	assert.EqualError(t, err, "y: cannot find variable")
}

func TestDefineOnce(t *testing.T) {
	env := NewEnv(nil)
	require.NoError(t, env.Define("x", Integer(1)))

	err := env.Define("x", Integer(2))
	assert.ErrorIs(t, err, ErrAlreadyDefined)

	val, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Integer(1), val, "redefinition must not overwrite")
}

func TestNewEnvCopiesSeed(t *testing.T) {
	seed := map[Symbol]Expr{"x": Integer(1)}
	env := NewEnv(seed)
	seed["y"] = Integer(2)
	require.NoError(t, env.Define("z", Integer(3)))

	_, err := env.Lookup("y")
	assert.Error(t, err)
	assert.NotContains(t, seed, Symbol("z"))
}

func TestExtend(t *testing.T) {
	env := NewEnv(map[Symbol]Expr{"x": Integer(1), "y": Integer(2)})
	child := env.Extend([]Binding{{"x", Integer(10)}, {"z", Integer(3)}})

	for sym, expected := range map[Symbol]Integer{"x": 10, "y": 2, "z": 3} {
		val, err := child.Lookup(sym)
		require.NoError(t, err)
		assert.Equal(t, expected, val, "child %s", sym)
	}

	val, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Integer(1), val, "parent must keep its binding")
	_, err = env.Lookup("z")
	assert.Error(t, err)
}

func TestExtendLaterBindingWins(t *testing.T) {
	env := NewEnv(nil).Extend([]Binding{{"x", Integer(1)}, {"x", Integer(2)}})
	val, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Integer(2), val)
}

func TestExtendIndependence(t *testing.T) {
	e1 := NewEnv(nil)
	e2 := e1.Extend([]Binding{{"x", Integer(1)}})

	require.NoError(t, e1.Define("y", Integer(2)))
	_, err := e2.Lookup("y")
	assert.ErrorIs(t, err, ErrUnboundSymbol, "define in parent leaked into extension")

	require.NoError(t, e2.Define("z", Integer(3)))
	_, err = e1.Lookup("z")
	assert.ErrorIs(t, err, ErrUnboundSymbol, "define in extension leaked into parent")

	// both may define the same name independently
	require.NoError(t, e1.Define("w", Integer(4)))
	require.NoError(t, e2.Define("w", Integer(5)))
	v1, _ := e1.Lookup("w")
	v2, _ := e2.Lookup("w")
	assert.Equal(t, Integer(4), v1)
	assert.Equal(t, Integer(5), v2)

	e3 := e2.Extend(nil)
	require.NoError(t, e3.Define("q", Integer(6)))
	_, err = e2.Lookup("q")
	assert.Error(t, err)
}

func TestExtensionShadowsDefine(t *testing.T) {
	env := NewEnv(nil).Extend([]Binding{{"x", Integer(1)}})
	assert.ErrorIs(t, env.Define("x", Integer(2)), ErrAlreadyDefined)
}

func TestSymbols(t *testing.T) {
	env := NewEnv(map[Symbol]Expr{"b": Integer(1), "a": Integer(2)})
	require.NoError(t, env.Define("c", Boolean(true)))
	assert.Equal(t, []Symbol{"a", "b", "c"}, env.Symbols())
	assert.Empty(t, NewEnv(nil).Symbols())
}
