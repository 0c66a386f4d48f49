// Package parser implements the judgment parser.
//
// Grammar:
//
//	judgment   ::= [ bindings ] turnstile expr | expr
//	bindings   ::= binding { ',' binding }
//	binding    ::= ident '=' expr
//	expr       ::= additive [ '<' additive ]
//	additive   ::= term { ( '+' | '-' ) term }
//	term       ::= primary { '*' primary }
//	primary    ::= int | '-' int | 'true' | 'false' | ident
//	             | '(' expr ')' | if | let
//	if         ::= 'if' expr 'then' expr 'else' expr
//	let        ::= 'let' ident '=' expr 'in' expr
package parser

import (
	"fmt"
	"strconv"

	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

// Parse tokenizes source and parses it into a judgment.
func Parse(source, filename string) (*ast.Judgment, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}

	p := &parser{tokens: tokens, pos: 0}
	j := p.parseJudgment()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return j, nil
}

// ParseExpr parses a bare expression; a turnstile or binding prefix is an error.
func ParseExpr(source, filename string) (ast.Expr, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}

	p := &parser{tokens: tokens, pos: 0}
	expr := p.parseExpr()
	if expr != nil {
		p.expectEOF()
	}
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return expr, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

func (p *parser) peekAt(offset int) lexer.TokenType {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.TokEOF
	}
	return p.tokens[idx].Type
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		p.addError(fmt.Sprintf("expected %s, got %s", tokenName(typ), describe(tok)), &tok.Span)
		return tok, false
	}
	return p.advance(), true
}

func (p *parser) expectEOF() bool {
	_, ok := p.expect(lexer.TokEOF)
	return ok
}

func (p *parser) addError(msg string, span *ast.Span) {
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, span, ""))
}

func (p *parser) spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (p *parser) hasTurnstile() bool {
	for _, tok := range p.tokens {
		if tok.Type == lexer.TokTurnstile {
			return true
		}
	}
	return false
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokLParen:
		return "'('"
	case lexer.TokRParen:
		return "')'"
	case lexer.TokComma:
		return "','"
	case lexer.TokEquals:
		return "'='"
	case lexer.TokTurnstile:
		return "'|-'"
	case lexer.TokThen:
		return "'then'"
	case lexer.TokElse:
		return "'else'"
	case lexer.TokIn:
		return "'in'"
	case lexer.TokIdent:
		return "identifier"
	case lexer.TokIntLit:
		return "integer"
	case lexer.TokEOF:
		return "end of input"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.TokEOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Value)
}

// --- Judgment ---

func (p *parser) parseJudgment() *ast.Judgment {
	start := p.current().Span

	if !p.hasTurnstile() {
		expr := p.parseExpr()
		if expr == nil || !p.expectEOF() {
			return nil
		}
		return &ast.Judgment{
			Span: p.spanFromTo(start, expr.NodeSpan()),
			Expr: expr,
		}
	}

	var bindings []*ast.Binding
	if p.peek() != lexer.TokTurnstile {
		for {
			b := p.parseBinding()
			if b == nil {
				return nil
			}
			bindings = append(bindings, b)
			if p.peek() != lexer.TokComma {
				break
			}
			p.advance() // consume ','
		}
	}

	if _, ok := p.expect(lexer.TokTurnstile); !ok {
		return nil
	}

	expr := p.parseExpr()
	if expr == nil || !p.expectEOF() {
		return nil
	}

	return &ast.Judgment{
		Span:      p.spanFromTo(start, expr.NodeSpan()),
		Bindings:  bindings,
		Turnstile: true,
		Expr:      expr,
	}
}

func (p *parser) parseBinding() *ast.Binding {
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokEquals); !ok {
		return nil
	}
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.Binding{
		Span:  p.spanFromTo(nameTok.Span, value.NodeSpan()),
		Name:  nameTok.Value,
		Value: value,
	}
}

// --- Expressions ---

func (p *parser) parseExpr() ast.Expr {
	return p.parseComparison()
}

func (p *parser) parseIf() ast.Expr {
	start := p.advance() // consume 'if'
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokThen); !ok {
		return nil
	}
	then := p.parseExpr()
	if then == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokElse); !ok {
		return nil
	}
	els := p.parseExpr()
	if els == nil {
		return nil
	}
	return &ast.IfExpr{
		Span: p.spanFromTo(start.Span, els.NodeSpan()),
		Cond: cond,
		Then: then,
		Else: els,
	}
}

func (p *parser) parseLet() ast.Expr {
	start := p.advance() // consume 'let'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokEquals); !ok {
		return nil
	}
	bound := p.parseExpr()
	if bound == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokIn); !ok {
		return nil
	}
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	return &ast.LetExpr{
		Span:  p.spanFromTo(start.Span, body.NodeSpan()),
		Name:  nameTok.Value,
		Bound: bound,
		Body:  body,
	}
}

// --- Precedence climbing ---

// '<' is non-associative: `a < b < c` is rejected by the caller's EOF check.
func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}
	if p.peek() != lexer.TokLt {
		return left
	}
	p.advance()
	right := p.parseAdditive()
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{
		Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
		Op:    ast.OpLt,
		Left:  left,
		Right: right,
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokPlus:
			op = ast.OpAdd
		case lexer.TokMinus:
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}

	for p.peek() == lexer.TokStar {
		p.advance()
		right := p.parsePrimary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    ast.OpMul,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.current()
	switch tok.Type {
	case lexer.TokIntLit:
		p.advance()
		return p.intLiteral(tok.Value, tok.Span)

	case lexer.TokMinus:
		// Negative literal: '-' immediately followed by an integer.
		if p.peekAt(1) != lexer.TokIntLit {
			p.addError(fmt.Sprintf("expected integer after '-', got %s", describe(p.tokens[p.pos+1])), &tok.Span)
			return nil
		}
		p.advance()
		num := p.advance()
		return p.intLiteral("-"+num.Value, p.spanFromTo(tok.Span, num.Span))

	case lexer.TokTrue, lexer.TokFalse:
		p.advance()
		return &ast.BoolLiteral{Span: tok.Span, Value: tok.Type == lexer.TokTrue}

	case lexer.TokIdent:
		p.advance()
		return &ast.VarRef{Span: tok.Span, Name: tok.Value}

	case lexer.TokLParen:
		// Grouped expression
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return expr

	case lexer.TokIf:
		return p.parseIf()

	case lexer.TokLet:
		return p.parseLet()
	}

	p.addError(fmt.Sprintf("expected expression, got %s", describe(tok)), &tok.Span)
	return nil
}

func (p *parser) intLiteral(text string, span ast.Span) ast.Expr {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.addError(fmt.Sprintf("integer literal out of range: %s", text), &span)
		return nil
	}
	return &ast.IntLiteral{Span: span, Value: n}
}
