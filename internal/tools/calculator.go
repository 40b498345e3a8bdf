package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// CalculatorName is the name plans use for the calculator.
const CalculatorName = "calculator_tool"

// Calculator evaluates arithmetic expressions exactly using decimal arithmetic.
// Supported: + - * / with the usual precedence, unary minus and parentheses.
type Calculator struct{}

// NewCalculator creates a calculator tool.
func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Name() string {
	return CalculatorName
}

func (c *Calculator) Description() string {
	return "Evaluates a basic arithmetic expression. Args: {\"expression\": \"<expr>\"}. " +
		"Supports +, -, *, / and parentheses (e.g. \"5+3\", \"(10*4)-2\", \"15/3\")."
}

// Run evaluates args["expression"].
func (c *Calculator) Run(ctx context.Context, args map[string]string) (string, error) {
	expr, ok := args["expression"]
	if !ok || strings.TrimSpace(expr) == "" {
		return "", fmt.Errorf("%w: %s: missing expression", planrun.ErrToolFailed, CalculatorName)
	}
	result, err := Evaluate(expr)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", planrun.ErrToolFailed, CalculatorName, err)
	}
	return result.String(), nil
}

// Evaluate parses and evaluates an arithmetic expression.
func Evaluate(expr string) (decimal.Decimal, error) {
	p := &exprParser{input: normalizeOperators(expr)}
	value, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return decimal.Zero, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

func normalizeOperators(expr string) string {
	return strings.NewReplacer("×", "*", "÷", "/", "−", "-").Replace(expr)
}

// exprParser is a recursive descent parser over:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = [ "-" | "+" ] ( number | "(" expr ")" )
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

func (p *exprParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
			continue
		}
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero")
		}
		left = left.Div(right)
	}
}

func (p *exprParser) parseFactor() (decimal.Decimal, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseFactor()
		return v.Neg(), err
	case '+':
		p.pos++
		return p.parseFactor()
	case '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case 0:
		return decimal.Zero, fmt.Errorf("unexpected end of expression")
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.' || p.input[p.pos] == ',') {
		p.pos++
	}
	if start == p.pos {
		return decimal.Zero, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	literal := strings.ReplaceAll(p.input[start:p.pos], ",", "")
	v, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number at position %d", start)
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

var _ planrun.Tool = (*Calculator)(nil)
