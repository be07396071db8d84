package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/leapstack-labs/bython/pkg/token"
)

// Rule names that have no token.Kind of their own. A stateful lexer needs a
// distinct name for every pattern, so the parenthesis rules that switch
// state and the newline-eating whitespace of the Paren state get theirs.
const (
	ruleLParen = "LParen"
	ruleRParen = "RParen"
	ruleSpace  = "Space"
)

// Lexer rules, tried in order at each position.
//
// Newlines and semicolons terminate statements in the Root state. An opening
// parenthesis pushes the Paren state, where newlines are plain whitespace so
// argument and parameter lists may span lines.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: token.SEP.String(), Pattern: `(?:\r?\n|;)(?:[\s;]|//[^\n]*|#[^\n]*)*`},
		{Name: token.WHITESPACE.String(), Pattern: `[ \t\r]+`},
		{Name: ruleLParen, Pattern: `\(`, Action: lexer.Push("Paren")},
		lexer.Include("Common"),
	},
	"Paren": {
		{Name: ruleRParen, Pattern: `\)`, Action: lexer.Pop()},
		{Name: ruleLParen, Pattern: `\(`, Action: lexer.Push("Paren")},
		{Name: ruleSpace, Pattern: `\s+`},
		lexer.Include("Common"),
	},
	"Common": {
		{Name: token.COMMENT.String(), Pattern: `(?://|#)[^\n]*`},
		{Name: token.STRING.String(), Pattern: `"(?:\\.|[^"\\\n])*"`},
		{Name: token.NUMBER.String(), Pattern: `[0-9]+(?:\.[0-9]+)?`},
		{Name: token.KEYWORD.String(), Pattern: `(?:` + strings.Join(token.Keywords, "|") + `)\b`},
		{Name: token.DUNDER.String(), Pattern: `__\w+__\b`},
		{Name: token.IDENT.String(), Pattern: `[A-Za-z_]\w*`},
		{Name: token.OPERATOR.String(), Pattern: `==|!=|<=|>=|[-+*/<>]`},
		{Name: token.PUNCT.String(), Pattern: `[=.,{}]`},
	},
})

// elided lists the rules the parser never sees.
var elided = []string{token.COMMENT.String(), token.WHITESPACE.String(), ruleSpace}

// ruleKind maps a lexer rule name to its token kind.
func ruleKind(name string) token.Kind {
	switch name {
	case ruleLParen, ruleRParen:
		return token.PUNCT
	case ruleSpace:
		return token.WHITESPACE
	}
	return token.LookupKind(name)
}

// Token is one lexical token of a source file.
type Token struct {
	Kind  token.Kind
	Value string
	Pos   token.Position
}

// Tokens lexes src and returns its significant tokens, without comments,
// whitespace or the trailing EOF.
func Tokens(filename, src string) ([]Token, error) {
	lex, err := Lexer.LexString(filename, src)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	names := make(map[lexer.TokenType]string, len(Lexer.Symbols()))
	for name, typ := range Lexer.Symbols() {
		names[typ] = name
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}
		kind := ruleKind(names[tok.Type])
		if kind == token.COMMENT || kind == token.WHITESPACE {
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Value: tok.Value, Pos: Position(tok.Pos)})
	}
	return tokens, nil
}

// Position converts a participle position.
func Position(p lexer.Position) token.Position {
	return token.Position{
		Filename: p.Filename,
		Line:     p.Line,
		Column:   p.Column,
		Offset:   p.Offset,
	}
}
