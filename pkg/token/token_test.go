package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"if", KEYWORD},
		{"new", KEYWORD},
		{"print", KEYWORD},
		{"iffy", IDENT},
		{"_private", IDENT},
		{"__init__", DUNDER},
		{"__", IDENT},
		{"____", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for k := EOF; k <= KEYWORD; k++ {
		assert.Equal(t, k, LookupKind(k.String()), "kind %d", int(k))
	}
	assert.Equal(t, ILLEGAL, LookupKind("NoSuchRule"))
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "", Position{}.String())
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
	assert.Equal(t, "main.by:3:7", Position{Filename: "main.by", Line: 3, Column: 7}.String())
	assert.False(t, Position{}.IsValid())
}
