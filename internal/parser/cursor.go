package parser

import "github.com/klox-lang/klox/internal/token"

// peek returns the token the cursor is sitting on without consuming it.
func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// isAtEnd reports whether the cursor has reached EOF.
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check reports whether the current token has the given type, without
// consuming it.
func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

// match consumes and returns true if the current token has any of the
// given types; otherwise it leaves the cursor untouched and returns false.
func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of the given type, or records message as a
// parse error at the current token and aborts the current production via
// panic/recover (see error.go).
func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}
