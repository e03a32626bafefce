// interpreter/expr.go
package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

// isIdentByte matches the \w class the statement patterns use.
func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Expressions are the only thing in the language that gets tokenized.
// The evaluator is a recursive-descent walk over a token slice that
// produces a Value directly; identifiers resolve against the live scope
// at the token, so a variable whose name is a substring of another's can
// never corrupt evaluation.

type tokenType int

const (
	tkEOF tokenType = iota
	tkInt
	tkFloat
	tkString
	tkIdent
	tkTrue
	tkFalse
	tkLParen
	tkRParen
	tkOp // lexeme holds the operator
)

type token struct {
	typ    tokenType
	lexeme string
}

func scanExpression(src string) ([]token, error) {
	toks := []token{}
	i := 0
	n := len(src)

	for i < n {
		c := src[i]

		switch {
		case c == ' ' || c == '\t':
			i++

		case c >= '0' && c <= '9':
			start := i
			isFloat := false
			for i < n && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			if i < n && src[i] == '.' && i+1 < n && src[i+1] >= '0' && src[i+1] <= '9' {
				isFloat = true
				i++
				for i < n && src[i] >= '0' && src[i] <= '9' {
					i++
				}
			}
			typ := tkInt
			if isFloat {
				typ = tkFloat
			}
			toks = append(toks, token{typ, src[start:i]})

		case c == '"' || c == '\'':
			quote := c
			i++
			var b strings.Builder
			closed := false
			for i < n {
				if src[i] == '\\' && i+1 < n {
					switch src[i+1] {
					case 'n':
						b.WriteByte('\n')
					case 't':
						b.WriteByte('\t')
					case '\\', '"', '\'':
						b.WriteByte(src[i+1])
					default:
						b.WriteByte(src[i+1])
					}
					i += 2
					continue
				}
				if src[i] == quote {
					closed = true
					i++
					break
				}
				b.WriteByte(src[i])
				i++
			}
			if !closed {
				return nil, newError(EvaluationError, "unterminated string in expression: %s", src)
			}
			toks = append(toks, token{tkString, b.String()})

		case isIdentByte(c): // digits were consumed above, so this starts an identifier
			start := i
			for i < n && isIdentByte(src[i]) {
				i++
			}
			word := src[start:i]
			switch word {
			case "true":
				toks = append(toks, token{tkTrue, word})
			case "false":
				toks = append(toks, token{tkFalse, word})
			default:
				toks = append(toks, token{tkIdent, word})
			}

		case c == '(':
			toks = append(toks, token{tkLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tkRParen, ")"})
			i++

		case c == '=' || c == '!' || c == '<' || c == '>':
			if i+1 < n && src[i+1] == '=' {
				toks = append(toks, token{tkOp, src[i : i+2]})
				i += 2
			} else if c == '=' {
				return nil, newError(EvaluationError, "unexpected '=' in expression: %s", src)
			} else {
				toks = append(toks, token{tkOp, string(c)})
				i++
			}

		case c == '&' || c == '|':
			if i+1 < n && src[i+1] == c {
				toks = append(toks, token{tkOp, src[i : i+2]})
				i += 2
			} else {
				return nil, newError(EvaluationError, "unexpected %q in expression: %s", string(c), src)
			}

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%':
			toks = append(toks, token{tkOp, string(c)})
			i++

		default:
			return nil, newError(EvaluationError, "unexpected character %q in expression: %s", string(c), src)
		}
	}

	toks = append(toks, token{tkEOF, ""})
	return toks, nil
}

type exprEval struct {
	src   string
	toks  []token
	pos   int
	scope map[string]Value
}

// evalExpression evaluates a raw expression substring against the given
// scope and yields a dynamically-typed value.
func evalExpression(src string, scope map[string]Value) (Value, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Value{}, newError(EvaluationError, "empty expression")
	}
	toks, err := scanExpression(src)
	if err != nil {
		return Value{}, err
	}

	ev := &exprEval{src: src, toks: toks, scope: scope}
	v, err := ev.evalOr()
	if err != nil {
		return Value{}, err
	}
	if ev.cur().typ != tkEOF {
		return Value{}, ev.errf("unexpected %q after expression", ev.cur().lexeme)
	}
	return v, nil
}

func (ev *exprEval) cur() token { return ev.toks[ev.pos] }
func (ev *exprEval) next()      { ev.pos++ }

func (ev *exprEval) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return newError(EvaluationError, "%s: %s", msg, ev.src)
}

func (ev *exprEval) isOp(ops ...string) (string, bool) {
	t := ev.cur()
	if t.typ != tkOp {
		return "", false
	}
	for _, op := range ops {
		if t.lexeme == op {
			return op, true
		}
	}
	return "", false
}

func (ev *exprEval) evalOr() (Value, error) {
	left, err := ev.evalAnd()
	if err != nil {
		return Value{}, err
	}
	for {
		if _, ok := ev.isOp("||"); !ok {
			return left, nil
		}
		ev.next()
		right, err := ev.evalAnd()
		if err != nil {
			return Value{}, err
		}
		if left.Kind != ValBool || right.Kind != ValBool {
			return Value{}, ev.errf("operator \"||\" requires booleans")
		}
		left = BoolValue(left.Bool || right.Bool)
	}
}

func (ev *exprEval) evalAnd() (Value, error) {
	left, err := ev.evalComparison()
	if err != nil {
		return Value{}, err
	}
	for {
		if _, ok := ev.isOp("&&"); !ok {
			return left, nil
		}
		ev.next()
		right, err := ev.evalComparison()
		if err != nil {
			return Value{}, err
		}
		if left.Kind != ValBool || right.Kind != ValBool {
			return Value{}, ev.errf("operator \"&&\" requires booleans")
		}
		left = BoolValue(left.Bool && right.Bool)
	}
}

func (ev *exprEval) evalComparison() (Value, error) {
	left, err := ev.evalAdditive()
	if err != nil {
		return Value{}, err
	}
	for {
		op, ok := ev.isOp("==", "!=", "<", ">", "<=", ">=")
		if !ok {
			return left, nil
		}
		ev.next()
		right, err := ev.evalAdditive()
		if err != nil {
			return Value{}, err
		}
		left, err = ev.compare(op, left, right)
		if err != nil {
			return Value{}, err
		}
	}
}

func (ev *exprEval) compare(op string, left, right Value) (Value, error) {
	if op == "==" || op == "!=" {
		eq := left.Equal(right)
		if op == "!=" {
			eq = !eq
		}
		return BoolValue(eq), nil
	}

	if left.isNumber() && right.isNumber() {
		a, b := left.asFloat(), right.asFloat()
		switch op {
		case "<":
			return BoolValue(a < b), nil
		case ">":
			return BoolValue(a > b), nil
		case "<=":
			return BoolValue(a <= b), nil
		case ">=":
			return BoolValue(a >= b), nil
		}
	}
	if left.Kind == ValString && right.Kind == ValString {
		a, b := left.Str, right.Str
		switch op {
		case "<":
			return BoolValue(a < b), nil
		case ">":
			return BoolValue(a > b), nil
		case "<=":
			return BoolValue(a <= b), nil
		case ">=":
			return BoolValue(a >= b), nil
		}
	}
	return Value{}, ev.errf("operator %q requires two numbers or two strings", op)
}

func (ev *exprEval) evalAdditive() (Value, error) {
	left, err := ev.evalMultiplicative()
	if err != nil {
		return Value{}, err
	}
	for {
		op, ok := ev.isOp("+", "-")
		if !ok {
			return left, nil
		}
		ev.next()
		right, err := ev.evalMultiplicative()
		if err != nil {
			return Value{}, err
		}

		if op == "+" {
			switch {
			case left.Kind == ValInt && right.Kind == ValInt:
				left = IntValue(left.Int + right.Int)
			case left.isNumber() && right.isNumber():
				left = FloatValue(left.asFloat() + right.asFloat())
			case left.Kind == ValString || right.Kind == ValString:
				left = StringValue(left.ToString() + right.ToString())
			default:
				return Value{}, ev.errf("operator \"+\" requires numbers or strings")
			}
			continue
		}

		switch {
		case left.Kind == ValInt && right.Kind == ValInt:
			left = IntValue(left.Int - right.Int)
		case left.isNumber() && right.isNumber():
			left = FloatValue(left.asFloat() - right.asFloat())
		default:
			return Value{}, ev.errf("operator \"-\" requires numbers")
		}
	}
}

func (ev *exprEval) evalMultiplicative() (Value, error) {
	left, err := ev.evalUnary()
	if err != nil {
		return Value{}, err
	}
	for {
		op, ok := ev.isOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		ev.next()
		right, err := ev.evalUnary()
		if err != nil {
			return Value{}, err
		}

		switch op {
		case "*":
			switch {
			case left.Kind == ValInt && right.Kind == ValInt:
				left = IntValue(left.Int * right.Int)
			case left.isNumber() && right.isNumber():
				left = FloatValue(left.asFloat() * right.asFloat())
			default:
				return Value{}, ev.errf("operator \"*\" requires numbers")
			}

		case "/":
			switch {
			case left.Kind == ValInt && right.Kind == ValInt:
				if right.Int == 0 {
					return Value{}, ev.errf("division by zero")
				}
				left = IntValue(left.Int / right.Int)
			case left.isNumber() && right.isNumber():
				if right.asFloat() == 0 {
					return Value{}, ev.errf("division by zero")
				}
				left = FloatValue(left.asFloat() / right.asFloat())
			default:
				return Value{}, ev.errf("operator \"/\" requires numbers")
			}

		case "%":
			if left.Kind != ValInt || right.Kind != ValInt {
				return Value{}, ev.errf("operator \"%%\" requires integers")
			}
			if right.Int == 0 {
				return Value{}, ev.errf("modulo by zero")
			}
			left = IntValue(left.Int % right.Int)
		}
	}
}

func (ev *exprEval) evalUnary() (Value, error) {
	if _, ok := ev.isOp("-"); ok {
		ev.next()
		right, err := ev.evalUnary()
		if err != nil {
			return Value{}, err
		}
		switch right.Kind {
		case ValInt:
			return IntValue(-right.Int), nil
		case ValFloat:
			return FloatValue(-right.Float), nil
		default:
			return Value{}, ev.errf("unary \"-\" requires a number")
		}
	}
	if t := ev.cur(); t.typ == tkOp && t.lexeme == "!" {
		ev.next()
		right, err := ev.evalUnary()
		if err != nil {
			return Value{}, err
		}
		if right.Kind != ValBool {
			return Value{}, ev.errf("unary \"!\" requires a boolean")
		}
		return BoolValue(!right.Bool), nil
	}
	return ev.evalPrimary()
}

func (ev *exprEval) evalPrimary() (Value, error) {
	t := ev.cur()
	switch t.typ {
	case tkInt:
		n, err := strconv.ParseInt(t.lexeme, 10, 64)
		if err != nil {
			return Value{}, ev.errf("invalid integer %q", t.lexeme)
		}
		ev.next()
		return IntValue(n), nil

	case tkFloat:
		f, err := strconv.ParseFloat(t.lexeme, 64)
		if err != nil {
			return Value{}, ev.errf("invalid number %q", t.lexeme)
		}
		ev.next()
		return FloatValue(f), nil

	case tkString:
		ev.next()
		return StringValue(t.lexeme), nil

	case tkTrue:
		ev.next()
		return BoolValue(true), nil

	case tkFalse:
		ev.next()
		return BoolValue(false), nil

	case tkIdent:
		v, ok := ev.scope[t.lexeme]
		if !ok {
			return Value{}, ev.errf("undefined variable %q", t.lexeme)
		}
		ev.next()
		return v, nil

	case tkLParen:
		ev.next()
		v, err := ev.evalOr()
		if err != nil {
			return Value{}, err
		}
		if ev.cur().typ != tkRParen {
			return Value{}, ev.errf("expected \")\"")
		}
		ev.next()
		return v, nil

	case tkEOF:
		return Value{}, ev.errf("unexpected end of expression")

	default:
		return Value{}, ev.errf("unexpected %q", t.lexeme)
	}
}
