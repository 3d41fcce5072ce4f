package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList_EmptyListIsOpen(t *testing.T) {
	g := NewAllowList(nil)

	assert.True(t, g.Authorized("anyone"))
	assert.True(t, g.Authorized(""))
}

func TestAllowList_NamedOperatorsOnly(t *testing.T) {
	g := NewAllowList([]string{"alex", "sam"})

	assert.True(t, g.Authorized("alex"))
	assert.True(t, g.Authorized("Sam"), "case-insensitive")
	assert.True(t, g.Authorized(" alex "), "whitespace trimmed")
	assert.False(t, g.Authorized("mallory"))
	assert.False(t, g.Authorized(""), "anonymous rejected when a list is set")
}

func TestAllowList_BlankEntriesDropped(t *testing.T) {
	g := NewAllowList([]string{"", "  ", "alex"})

	assert.True(t, g.Authorized("alex"))
	assert.False(t, g.Authorized(""), "blank entries do not authorize anonymous")
}
