package filter

// Parser parses a filter query string into an AST.
type Parser struct {
	lexer     *Lexer
	query     string
	errors    []error
	curToken  Token
	peekToken Token
}

// Operator precedence levels
const (
	_ int = iota
	LOWEST
	INTERSECTION // |
	PREFIX       // !
)

// precedences maps token types to their precedence levels
var precedences = map[TokenType]int{
	PIPE: INTERSECTION,
}

// NewParser creates a new Parser for the given query.
func NewParser(query string) *Parser {
	p := &Parser{
		lexer:  NewLexer(query),
		query:  query,
		errors: []error{},
	}

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// ParseExpression parses and returns an expression from the input.
func (p *Parser) ParseExpression() (Expression, error) {
	if p.curToken.Type == EOF {
		return nil, NewParseError("empty filter expression", 0, p.query, "", ErrorCodeEmptyExpression)
	}

	expr := p.parseExpression(LOWEST)

	if expr == nil {
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}

		return nil, NewParseError("failed to parse expression", p.curToken.Position, p.query, p.curToken.Literal, ErrorCodeUnknown)
	}

	if p.curToken.Type != EOF {
		return nil, NewParseError("unexpected token after expression: "+p.curToken.Literal,
			p.curToken.Position, p.query, p.curToken.Literal, ErrorCodeUnexpectedToken)
	}

	return expr, nil
}

// Errors returns any parsing errors that occurred.
func (p *Parser) Errors() []error {
	return p.errors
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// parseExpression is the core recursive descent parser.
func (p *Parser) parseExpression(precedence int) Expression {
	var leftExpr Expression

	switch p.curToken.Type {
	case BANG:
		leftExpr = p.parsePrefixExpression()
	case IDENT:
		leftExpr = p.parseAttributeExpression()
	case ILLEGAL:
		p.addError("illegal token: "+p.curToken.Literal, ErrorCodeIllegalToken)
		return nil
	case EOF:
		p.addError("unexpected end of input", ErrorCodeUnexpectedEOF)
		return nil
	case PIPE, EQUAL, VALUE:
		p.addError("unexpected token: "+p.curToken.Literal, ErrorCodeUnexpectedToken)
		return nil
	default:
		p.addError("unexpected token: "+p.curToken.Literal, ErrorCodeUnexpectedToken)
		return nil
	}

	if leftExpr == nil {
		return nil
	}

	for p.curToken.Type != EOF && precedence < p.curPrecedence() {
		if p.curToken.Type != PIPE {
			return leftExpr
		}

		leftExpr = p.parseInfixExpression(leftExpr)
		if leftExpr == nil {
			return nil
		}
	}

	return leftExpr
}

// parsePrefixExpression parses a prefix expression (e.g., "!subset=Basic").
func (p *Parser) parsePrefixExpression() Expression {
	expression := &PrefixExpression{
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)

	if expression.Right == nil {
		p.addError("expected expression after "+expression.Operator, ErrorCodeMissingOperand)
		return nil
	}

	return expression
}

// parseInfixExpression parses an infix expression (e.g., "cycle_number=1 | subset=Expert").
func (p *Parser) parseInfixExpression(left Expression) Expression {
	expression := &InfixExpression{
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)

	if expression.Right == nil {
		p.addError("expected expression after "+expression.Operator, ErrorCodeMissingOperand)
		return nil
	}

	return expression
}

// parseAttributeExpression parses an attribute filter (e.g., "cycle_number=1..10").
func (p *Parser) parseAttributeExpression() Expression {
	key, position := p.curToken.Literal, p.curToken.Position

	if !p.expectPeek(EQUAL) {
		return nil
	}

	p.nextToken()

	if p.curToken.Type != VALUE {
		p.addError("expected a value after '"+key+"='", ErrorCodeMissingValue)
		return nil
	}

	value := p.curToken.Literal
	p.nextToken()

	return &AttributeExpression{Key: key, Value: value, Position: position}
}

// expectPeek checks if the next token is of the expected type and advances if so.
func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}

	p.nextToken()
	p.addError("expected next token to be "+t.String()+", got "+p.curToken.Type.String(), ErrorCodeUnexpectedToken)

	return false
}

// curPrecedence returns the precedence of the current token.
func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return LOWEST
}

// addError adds an error to the parser's error list.
func (p *Parser) addError(msg string, code ErrorCode) {
	p.errors = append(p.errors, NewParseError(msg, p.curToken.Position, p.query, p.curToken.Literal, code))
}
