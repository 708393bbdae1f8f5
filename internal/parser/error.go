package parser

import "github.com/klox-lang/klox/internal/token"

// parseSignal is panicked to unwind out of a broken production and back to
// the enclosing declaration(), which recovers it and synchronizes. It
// carries no data — the diagnostic itself was already recorded on the
// reporter by errorAt before the panic.
type parseSignal struct{}

// errorAt records a diagnostic at tok's position and returns the signal
// value callers panic with to trigger synchronization.
func (p *Parser) errorAt(tok token.Token, message string) parseSignal {
	p.reporter.Token(tok, message)
	return parseSignal{}
}

// synchronize discards tokens until it reaches a likely statement boundary:
// just after a ';', or just before a keyword that starts a new statement.
// This is panic-mode recovery — spec §4.1.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}
