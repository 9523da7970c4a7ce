// Package parser turns invocation source text into parsed invocations:
// a root type name, a validated flag set, and the literal value tree.
//
// The grammar is
//
//	Invocation    ::= Ident FlagList? ObjectLiteral
//	FlagList      ::= ("@" Ident Args?)*
//	ObjectLiteral ::= "{" ( String "=>" Value ","? )* "}"
//	Value         ::= String | Number | "true" | "false" | "null"
//	                | ObjectLiteral | "[" ( Value ","? )* "]"
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdullah-albanna/json-to-struct/internal/errors"
	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

const supportedFlags = "@debug @snake @camel @pascal @derive(...) @store_json @no_alias"

type parser struct {
	lex *lexer
	tok Token
}

// Parse reads invocation source from a reader and returns the parsed
// invocations in source order.
func Parse(reader io.Reader) ([]models.Invocation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseString parses invocation source from a string.
func ParseString(src string) ([]models.Invocation, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}

	p := &parser{lex: newLexer(src)}
	p.tok = p.lex.next()

	var invocations []models.Invocation
	for p.tok.Type != EOF {
		inv, err := p.parseInvocation()
		if err != nil {
			return nil, err
		}
		invocations = append(invocations, inv)
	}
	return invocations, nil
}

// ParseFile parses invocation source from a file path.
func ParseFile(filePath string) ([]models.Invocation, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseString(string(data))
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) syntaxErr(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.NewSyntaxError(
		fmt.Sprintf("%s at line %d, column %d", msg, p.tok.Line, p.tok.Col),
		nil,
	)
}

func (p *parser) expect(tt TokenType) (Token, error) {
	if p.tok.Type == ILLEGAL {
		return Token{}, p.syntaxErr("unexpected input %q", p.tok.Lexeme)
	}
	if p.tok.Type != tt {
		return Token{}, p.syntaxErr("expected %s, found %s", tt, p.describeCurrent())
	}
	tok := p.tok
	p.advance()
	return tok, nil
}

func (p *parser) describeCurrent() string {
	if p.tok.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", p.tok.Type, p.tok.Lexeme)
}

func (p *parser) parseInvocation() (models.Invocation, error) {
	name, err := p.expect(IDENT)
	if err != nil {
		return models.Invocation{}, err
	}

	flags, err := p.parseFlags()
	if err != nil {
		return models.Invocation{}, err
	}

	root, err := p.parseObject()
	if err != nil {
		return models.Invocation{}, err
	}

	return models.Invocation{Name: name.Lexeme, Flags: flags, Root: root}, nil
}

func (p *parser) parseFlags() (models.FlagSet, error) {
	var flags models.FlagSet
	seenDerives := make(map[string]struct{})

	for p.tok.Type == AT {
		p.advance()
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return models.FlagSet{}, err
		}

		switch nameTok.Lexeme {
		case "debug":
			flags.Debug = true
		case "store_json":
			flags.StoreJSON = true
		case "no_alias":
			flags.NoAlias = true
		case "snake", "camel", "pascal":
			if flags.Casing != models.CasingNone {
				return models.FlagSet{}, errors.NewFlagError(
					fmt.Sprintf("only one casing flag may be set, found @%s after @%s was already active",
						nameTok.Lexeme, casingFlagName(flags.Casing)),
					errors.ErrFlagConflict,
				)
			}
			switch nameTok.Lexeme {
			case "snake":
				flags.Casing = models.CasingSnake
			case "camel":
				flags.Casing = models.CasingCamel
			case "pascal":
				flags.Casing = models.CasingPascal
			}
		case "derive":
			names, err := p.parseDeriveArgs()
			if err != nil {
				return models.FlagSet{}, err
			}
			for _, n := range names {
				if _, seen := seenDerives[n]; seen {
					continue
				}
				seenDerives[n] = struct{}{}
				flags.ExtraDerives = append(flags.ExtraDerives, n)
			}
			continue
		default:
			return models.FlagSet{}, errors.NewFlagError(
				fmt.Sprintf("unknown flag @%s, supported flags: %s", nameTok.Lexeme, supportedFlags),
				errors.ErrUnknownFlag,
			)
		}

		if p.tok.Type == LPAREN {
			return models.FlagSet{}, errors.NewFlagError(
				fmt.Sprintf("flag @%s does not take arguments", nameTok.Lexeme),
				errors.ErrUnknownFlag,
			)
		}
	}

	return flags, nil
}

func (p *parser) parseDeriveArgs() ([]string, error) {
	if p.tok.Type != LPAREN {
		return nil, p.syntaxErr("expected @derive(...), found %s", p.describeCurrent())
	}
	p.advance()

	var names []string
	for p.tok.Type != RPAREN {
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		names = append(names, nameTok.Lexeme)
		if p.tok.Type == COMMA {
			p.advance()
		}
	}
	p.advance() // ')'
	return names, nil
}

func (p *parser) parseObject() (models.Value, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return models.Value{}, err
	}

	var members []models.Member
	for p.tok.Type != RBRACE {
		keyTok, err := p.expect(STRING)
		if err != nil {
			if p.tok.Type == IDENT || p.tok.Type == NUMBER {
				return models.Value{}, p.syntaxErr("object key must be a string literal, found %s", p.describeCurrent())
			}
			return models.Value{}, err
		}
		if _, err := p.expect(ARROW); err != nil {
			return models.Value{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return models.Value{}, err
		}
		members = append(members, models.Member{Key: keyTok.Str, Value: val})

		if p.tok.Type == COMMA {
			p.advance()
			continue
		}
		if p.tok.Type != RBRACE {
			return models.Value{}, p.syntaxErr("expected ',' or '}', found %s", p.describeCurrent())
		}
	}
	p.advance() // '}'
	return models.ObjectValue(members...), nil
}

func (p *parser) parseArray() (models.Value, error) {
	p.advance() // '['
	var items []models.Value
	for p.tok.Type != RBRACKET {
		val, err := p.parseValue()
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, val)

		if p.tok.Type == COMMA {
			p.advance()
			continue
		}
		if p.tok.Type != RBRACKET {
			return models.Value{}, p.syntaxErr("expected ',' or ']', found %s", p.describeCurrent())
		}
	}
	p.advance() // ']'
	return models.ArrayValue(items...), nil
}

func (p *parser) parseValue() (models.Value, error) {
	switch p.tok.Type {
	case LBRACE:
		return p.parseObject()
	case LBRACKET:
		return p.parseArray()
	case STRING:
		v := models.StringValue(p.tok.Str)
		p.advance()
		return v, nil
	case NUMBER:
		v := models.NumberValue(p.tok.Num)
		p.advance()
		return v, nil
	case IDENT:
		switch p.tok.Lexeme {
		case "true":
			p.advance()
			return models.BoolValue(true), nil
		case "false":
			p.advance()
			return models.BoolValue(false), nil
		case "null":
			p.advance()
			return models.NullValue(), nil
		}
		return models.Value{}, p.syntaxErr("unsupported literal %q", p.tok.Lexeme)
	case ILLEGAL:
		return models.Value{}, p.syntaxErr("unexpected input %q", p.tok.Lexeme)
	default:
		return models.Value{}, p.syntaxErr("expected a value, found %s", p.describeCurrent())
	}
}

func casingFlagName(mode models.CasingMode) string {
	switch mode {
	case models.CasingSnake:
		return "snake"
	case models.CasingCamel:
		return "camel"
	case models.CasingPascal:
		return "pascal"
	default:
		return ""
	}
}
