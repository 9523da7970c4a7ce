package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	IDENT
	STRING
	NUMBER

	AT       // "@"
	LBRACE   // "{"
	RBRACE   // "}"
	LBRACKET // "["
	RBRACKET // "]"
	LPAREN   // "("
	RPAREN   // ")"
	COMMA    // ","
	ARROW    // "=>"
)

var tokenNames = map[TokenType]string{
	EOF:      "end of input",
	ILLEGAL:  "illegal token",
	IDENT:    "identifier",
	STRING:   "string",
	NUMBER:   "number",
	AT:       "'@'",
	LBRACE:   "'{'",
	RBRACE:   "'}'",
	LBRACKET: "'['",
	RBRACKET: "']'",
	LPAREN:   "'('",
	RPAREN:   "')'",
	COMMA:    "','",
	ARROW:    "'=>'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown token"
}

// Token is a lexical token with its decoded value and source position.
type Token struct {
	Type   TokenType
	Lexeme string  // raw text
	Str    string  // decoded value for STRING tokens
	Num    float64 // value for NUMBER tokens
	Line   int
	Col    int
}

// lexer scans invocation source into tokens. Line comments ("// ...")
// are skipped.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peek()
		if unicode.IsSpace(r) {
			l.advance()
			continue
		}
		if r == '/' && strings.HasPrefix(l.src[l.pos:], "//") {
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

// next returns the next token. Lexical failures surface as ILLEGAL
// tokens carrying the offending text; the parser turns them into
// syntax errors with position information.
func (l *lexer) next() Token {
	l.skipSpaceAndComments()

	tok := Token{Line: l.line, Col: l.col}
	if l.pos >= len(l.src) {
		tok.Type = EOF
		return tok
	}

	r := l.peek()
	switch {
	case r == '@':
		l.advance()
		tok.Type, tok.Lexeme = AT, "@"
	case r == '{':
		l.advance()
		tok.Type, tok.Lexeme = LBRACE, "{"
	case r == '}':
		l.advance()
		tok.Type, tok.Lexeme = RBRACE, "}"
	case r == '[':
		l.advance()
		tok.Type, tok.Lexeme = LBRACKET, "["
	case r == ']':
		l.advance()
		tok.Type, tok.Lexeme = RBRACKET, "]"
	case r == '(':
		l.advance()
		tok.Type, tok.Lexeme = LPAREN, "("
	case r == ')':
		l.advance()
		tok.Type, tok.Lexeme = RPAREN, ")"
	case r == ',':
		l.advance()
		tok.Type, tok.Lexeme = COMMA, ","
	case r == '=':
		l.advance()
		if l.peek() == '>' {
			l.advance()
			tok.Type, tok.Lexeme = ARROW, "=>"
		} else {
			tok.Type, tok.Lexeme = ILLEGAL, "="
		}
	case r == '"':
		return l.scanString(tok)
	case r == '-' || unicode.IsDigit(r):
		return l.scanNumber(tok)
	case unicode.IsLetter(r) || r == '_':
		return l.scanIdent(tok)
	default:
		l.advance()
		tok.Type, tok.Lexeme = ILLEGAL, string(r)
	}
	return tok
}

func (l *lexer) scanIdent(tok Token) Token {
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			l.advance()
			continue
		}
		break
	}
	tok.Type = IDENT
	tok.Lexeme = l.src[start:l.pos]
	return tok
}

func (l *lexer) scanNumber(tok Token) Token {
	start := l.pos
	if l.peek() == '-' {
		l.advance()
	}
	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		l.advance()
		if r := l.peek(); r == '+' || r == '-' {
			l.advance()
		}
		for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}

	tok.Lexeme = l.src[start:l.pos]
	num, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		tok.Type = ILLEGAL
		return tok
	}
	tok.Type = NUMBER
	tok.Num = num
	return tok
}

func (l *lexer) scanString(tok Token) Token {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			tok.Type = ILLEGAL
			tok.Lexeme = "unterminated string literal"
			return tok
		}
		r := l.advance()
		switch r {
		case '"':
			tok.Type = STRING
			tok.Str = b.String()
			tok.Lexeme = fmt.Sprintf("%q", tok.Str)
			return tok
		case '\\':
			if l.pos >= len(l.src) {
				tok.Type = ILLEGAL
				tok.Lexeme = "unterminated string literal"
				return tok
			}
			esc := l.advance()
			switch esc {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case '/':
				b.WriteRune('/')
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case 'u':
				if l.pos+4 > len(l.src) {
					tok.Type = ILLEGAL
					tok.Lexeme = "invalid unicode escape"
					return tok
				}
				hex := l.src[l.pos : l.pos+4]
				code, err := strconv.ParseUint(hex, 16, 32)
				if err != nil {
					tok.Type = ILLEGAL
					tok.Lexeme = "invalid unicode escape \\u" + hex
					return tok
				}
				for i := 0; i < 4; i++ {
					l.advance()
				}
				b.WriteRune(rune(code))
			default:
				tok.Type = ILLEGAL
				tok.Lexeme = "invalid escape \\" + string(esc)
				return tok
			}
		default:
			b.WriteRune(r)
		}
	}
}
