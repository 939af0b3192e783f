package confusable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(s string) Instruction { return Instruction{Kind: Identity, Value: s} }
func insertion(s string) Instruction { return Instruction{Kind: Insertion, Value: s} }
func deletion(s string) Instruction { return Instruction{Kind: Deletion, Value: s} }

func TestParseScriptSingleInstructionKinds(t *testing.T) {
	s, err := ParseScript("ab,+c,-d")
	require.NoError(t, err)
	require.Len(t, s.Instructions, 3)
	assert.Equal(t, identity("ab"), s.Instructions[0])
	assert.Equal(t, insertion("c"), s.Instructions[1])
	assert.Equal(t, deletion("d"), s.Instructions[2])
}

func TestParseScriptOptions(t *testing.T) {
	s, err := ParseScript("+a|b")
	require.NoError(t, err)
	require.Len(t, s.Instructions, 1)
	assert.Equal(t, InsertionOptions, s.Instructions[0].Kind)
	assert.Equal(t, []string{"a", "b"}, s.Instructions[0].Options)
}

func TestParseScriptRejectsEmptyInstruction(t *testing.T) {
	_, err := ParseScript("ab,,cd")
	assert.Error(t, err)
}

func TestNewStripsAnchors(t *testing.T) {
	c, err := New("^ab$", 1.0)
	require.NoError(t, err)
	assert.True(t, c.StrictBegin)
	assert.True(t, c.StrictEnd)
	require.Len(t, c.Script.Instructions, 1)
	assert.Equal(t, identity("ab"), c.Script.Instructions[0])
}

func TestFoundInSingleInstructionExactMatch(t *testing.T) {
	c, err := New("ie", 1.0)
	require.NoError(t, err)
	ref := Script{Instructions: []Instruction{identity("ie")}}
	assert.True(t, c.FoundIn(ref))
}

func TestFoundInInteriorInstructionMismatchResets(t *testing.T) {
	c, err := New("a,b,c", 1.0)
	require.NoError(t, err)
	// the reference script never has "b" immediately after "a"; the
	// pattern pointer should reset each time, never completing the match.
	ref := Script{Instructions: []Instruction{identity("a"), identity("x"), identity("c")}}
	assert.False(t, c.FoundIn(ref))
}

func TestFoundInStrictBeginRejectsLateStart(t *testing.T) {
	c, err := New("^ab", 1.0)
	require.NoError(t, err)
	ref := Script{Instructions: []Instruction{identity("xx"), identity("ab")}}
	assert.False(t, c.FoundIn(ref))
}

func TestFoundInStrictEndRequiresFinalInstruction(t *testing.T) {
	c, err := New("ab$", 1.0)
	require.NoError(t, err)
	notLast := Script{Instructions: []Instruction{identity("ab"), identity("zz")}}
	assert.False(t, c.FoundIn(notLast))

	isLast := Script{Instructions: []Instruction{identity("zz"), identity("ab")}}
	assert.True(t, c.FoundIn(isLast))
}

func TestFoundInFirstInstructionMatchesSuffixOfReference(t *testing.T) {
	c, err := New("ie,+x", 1.0)
	require.NoError(t, err)
	ref := Script{Instructions: []Instruction{identity("receie"), insertion("x")}}
	assert.True(t, c.FoundIn(ref))
}

func TestFoundInInsertionOptionsMatchesAnyOption(t *testing.T) {
	c, err := New("+a|b", 1.0)
	require.NoError(t, err)
	ref := Script{Instructions: []Instruction{insertion("b")}}
	assert.True(t, c.FoundIn(ref))
}
