package parser

import (
	"github.com/klox-lang/klox/internal/ast"
	"github.com/klox-lang/klox/internal/token"
)

// expression is the top of the precedence cascade: assignment -> ternary ->
// or -> and -> equality -> comparison -> term -> factor -> unary -> call ->
// primary (spec §4.1).
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative: `a = b = c` parses as `a = (b = c)`.
func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{ID: ast.NewID(), Name: v.Name, Value: value}
		}

		p.errorAt(equals, "Invalid assignment target.")
		return expr
	}

	return expr
}

// ternary is right-associative in its else-branch: `a ? b : c ? d : e`
// parses as `a ? b : (c ? d : e)`.
func (p *Parser) ternary() ast.Expr {
	expr := p.or()

	if p.match(token.QUESTION) {
		question := p.previous()
		then := p.ternary()
		p.consume(token.COLON, "Expect ':' after then-branch of ternary expression.")
		elseBranch := p.ternary()
		return &ast.Ternary{Question: question, Cond: expr, Then: then, Else: elseBranch}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()

	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()

	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()

	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()

	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()

	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()

	for p.match(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: operator, Right: right}
	}

	return p.call()
}

// call parses a primary expression followed by zero or more argument
// lists: `callee(args)(more args)...`.
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for p.match(token.LEFT_PAREN) {
		expr = p.finishCall(expr)
	}

	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{ID: ast.NewID(), Callee: callee, Paren: paren, Args: args}
}

// binaryPrimaryOperators are the tokens that, in primary position, mean the
// author forgot a left-hand operand (spec §4.1). The error is raised as soon
// as the operator is consumed; the right operand is not parsed, and the
// declaration's synchronization skips past it.
var binaryPrimaryOperators = []token.Type{
	token.EQUAL_EQUAL, token.BANG_EQUAL,
	token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
	token.PLUS,
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Token: p.previous(), Value: p.previous().Literal}
	case p.match(token.IDENTIFIER):
		name := p.previous()
		name.Lexeme = ast.Ident(name.Lexeme)
		return &ast.Variable{ID: ast.NewID(), Name: name}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	case p.match(token.QUESTION):
		panic(p.errorAt(p.previous(), "Missing left-hand condition of a ternary operator."))
	case p.match(binaryPrimaryOperators...):
		operator := p.previous()
		panic(p.errorAt(operator, "Missing left-hand operand."))
	}

	panic(p.errorAt(p.peek(), "Expect expression."))
}
