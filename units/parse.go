package units

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/zerr"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokMul
	tokDiv
	tokPow
	tokMinus
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits a unit expression into tokens. Names start with a letter and
// may contain letters, digits and underscores; "[name]" is a single name.
func lex(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		r, size := utf8.DecodeRuneInString(expr[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '*':
			if strings.HasPrefix(expr[i:], "**") {
				toks = append(toks, token{kind: tokPow, text: "**", pos: i})
				i += 2
				continue
			}
			toks = append(toks, token{kind: tokMul, text: "*", pos: i})
			i++
		case r == '^':
			toks = append(toks, token{kind: tokPow, text: "^", pos: i})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokDiv, text: "/", pos: i})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == '[':
			end := strings.IndexByte(expr[i:], ']')
			if end < 0 {
				return nil, syntaxError(expr, i, "unterminated dimension")
			}
			toks = append(toks, token{kind: tokName, text: expr[i : i+end+1], pos: i})
			i += end + 1
		case r == '.' || (r >= '0' && r <= '9'):
			n := scanNumber(expr[i:])
			toks = append(toks, token{kind: tokNumber, text: expr[i : i+n], pos: i})
			i += n
		case unicode.IsLetter(r):
			start := i
			i += size
			for i < len(expr) {
				r, size = utf8.DecodeRuneInString(expr[i:])
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokName, text: expr[start:i], pos: start})
		default:
			return nil, syntaxError(expr, i, "unexpected character "+strconv.QuoteRune(r))
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(expr)}), nil
}

// scanNumber returns the length of the numeric literal at the start of s.
func scanNumber(s string) int {
	i := 0
	digits := func() {
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	digits()
	if i < len(s) && s[i] == '.' {
		i++
		digits()
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			i = j
			digits()
		}
	}
	return i
}

// parsed is a numeric factor times a product of raw, unresolved names.
type parsed struct {
	factor float64
	names  domain.Powers[string]
}

func (p parsed) mul(o parsed) parsed {
	return parsed{factor: p.factor * o.factor, names: p.names.Mul(o.names)}
}

func (p parsed) div(o parsed) parsed {
	return parsed{factor: p.factor / o.factor, names: p.names.Div(o.names)}
}

func (p parsed) pow(e domain.Exponent) parsed {
	return parsed{factor: e.Pow(p.factor), names: p.names.Pow(e)}
}

type parser struct {
	expr string
	toks []token
	pos  int
}

// parseExpression parses expr into a factor and raw name powers.
//
//	expr     := term { ("*" | "/" | juxtaposition) term }
//	term     := factor [ ("**" | "^") exponent ]
//	factor   := ["-"] number | name | "(" expr ")"
//	exponent := ["-"] number | "(" ["-"] int [ "/" int ] ")"
func parseExpression(expr string) (parsed, error) {
	if strings.TrimSpace(expr) == "" {
		return parsed{}, zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "empty expression"), "expression", expr)
	}
	toks, err := lex(expr)
	if err != nil {
		return parsed{}, err
	}
	p := &parser{expr: expr, toks: toks}
	out, err := p.parseExpr()
	if err != nil {
		return parsed{}, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return parsed{}, syntaxError(expr, tok.pos, "unexpected "+strconv.Quote(tok.text))
	}
	return out, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (parsed, error) {
	left, err := p.parseTerm()
	if err != nil {
		return parsed{}, err
	}
	for {
		switch p.peek().kind {
		case tokMul:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return parsed{}, err
			}
			left = left.mul(right)
			if err := p.checkRange(left); err != nil {
				return parsed{}, err
			}
		case tokDiv:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return parsed{}, err
			}
			if right.factor == 0 {
				return parsed{}, syntaxError(p.expr, p.peek().pos, "division by zero")
			}
			left = left.div(right)
			if err := p.checkRange(left); err != nil {
				return parsed{}, err
			}
		case tokNumber, tokName, tokLParen:
			right, err := p.parseTerm()
			if err != nil {
				return parsed{}, err
			}
			left = left.mul(right)
			if err := p.checkRange(left); err != nil {
				return parsed{}, err
			}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (parsed, error) {
	base, err := p.parseFactor()
	if err != nil {
		return parsed{}, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.parseExponent()
	if err != nil {
		return parsed{}, err
	}
	out := base.pow(exp)
	if err := p.checkRange(out); err != nil {
		return parsed{}, err
	}
	return out, nil
}

// checkRange keeps every combined exponent within domain.MaxExponent.
func (p *parser) checkRange(out parsed) error {
	if !out.names.InRange() {
		return zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "exponent out of range"), "expression", p.expr)
	}
	return nil
}

func (p *parser) parseFactor() (parsed, error) {
	tok := p.next()
	switch tok.kind {
	case tokMinus:
		num := p.next()
		if num.kind != tokNumber {
			return parsed{}, syntaxError(p.expr, num.pos, "expected number after '-'")
		}
		v, err := parseNumber(p.expr, num)
		if err != nil {
			return parsed{}, err
		}
		return parsed{factor: -v, names: domain.Powers[string]{}}, nil
	case tokNumber:
		v, err := parseNumber(p.expr, tok)
		if err != nil {
			return parsed{}, err
		}
		return parsed{factor: v, names: domain.Powers[string]{}}, nil
	case tokName:
		return parsed{factor: 1, names: domain.Single(tok.text, domain.Int(1))}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return parsed{}, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return parsed{}, syntaxError(p.expr, closing.pos, "expected ')'")
		}
		return inner, nil
	default:
		return parsed{}, syntaxError(p.expr, tok.pos, "expected a number, name or '('")
	}
}

func (p *parser) parseExponent() (domain.Exponent, error) {
	tok := p.next()
	switch tok.kind {
	case tokMinus:
		num := p.next()
		if num.kind != tokNumber {
			return domain.Exponent{}, syntaxError(p.expr, num.pos, "expected exponent")
		}
		e, err := domain.ParseExponent(num.text)
		if err != nil {
			return domain.Exponent{}, err
		}
		return e.Neg(), nil
	case tokNumber:
		return domain.ParseExponent(tok.text)
	case tokLParen:
		var b strings.Builder
		for {
			t := p.next()
			switch t.kind {
			case tokRParen:
				return domain.ParseExponent(b.String())
			case tokMinus, tokNumber:
				b.WriteString(t.text)
			case tokDiv:
				b.WriteString("/")
			default:
				return domain.Exponent{}, syntaxError(p.expr, t.pos, "expected rational exponent")
			}
		}
	default:
		return domain.Exponent{}, syntaxError(p.expr, tok.pos, "expected exponent")
	}
}

func parseNumber(expr string, tok token) (float64, error) {
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return 0, syntaxError(expr, tok.pos, "invalid number "+strconv.Quote(tok.text))
	}
	return v, nil
}

func syntaxError(expr string, pos int, msg string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidExpression, msg), "expression", expr), "position", pos)
}
