// Package token defines the lexical vocabulary of the bython input language.
//
// The grammar builds its lexer rules from these kinds and keywords, the AST
// records token positions, and the tokens command prints them.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	// Special tokens
	EOF Kind = iota
	ILLEGAL

	// Literals
	IDENT  // name
	DUNDER // __init__
	NUMBER // 42, 3.14
	STRING // "hello"

	// Symbols
	OPERATOR // == != <= >= < > + - * /
	PUNCT    // = . , ( ) { }
	SEP      // newline or ;

	// Trivia (elided by the grammar)
	COMMENT
	WHITESPACE

	KEYWORD
)

// String returns the lexer rule name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var kindNames = map[Kind]string{
	EOF:        "EOF",
	ILLEGAL:    "Illegal",
	IDENT:      "Ident",
	DUNDER:     "Dunder",
	NUMBER:     "Number",
	STRING:     "String",
	OPERATOR:   "Operator",
	PUNCT:      "Punct",
	SEP:        "Sep",
	COMMENT:    "Comment",
	WHITESPACE: "Whitespace",
	KEYWORD:    "Keyword",
}

// LookupKind returns the kind registered under a lexer rule name.
func LookupKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return ILLEGAL
}

// Keywords lists the reserved words of the input language.
var Keywords = []string{
	"and",
	"class",
	"def",
	"else",
	"for",
	"if",
	"in",
	"new",
	"not",
	"or",
	"print",
	"return",
	"while",
}

var keywordSet = func() map[string]bool {
	m := make(map[string]bool, len(Keywords))
	for _, kw := range Keywords {
		m[kw] = true
	}
	return m
}()

// IsKeyword reports whether ident is reserved.
func IsKeyword(ident string) bool {
	return keywordSet[ident]
}

// LookupIdent returns KEYWORD for reserved words, DUNDER for __name__
// identifiers and IDENT otherwise.
func LookupIdent(ident string) Kind {
	if IsKeyword(ident) {
		return KEYWORD
	}
	if isDunder(ident) {
		return DUNDER
	}
	return IDENT
}

func isDunder(ident string) bool {
	return len(ident) > 4 && ident[:2] == "__" && ident[len(ident)-2:] == "__"
}
