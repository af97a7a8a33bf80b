package expr

import (
	"strings"
	"unicode"
)

// multiOps are the operators govaluate spells with two characters.
var multiOps = []string{"**", "<=", ">=", "==", "!=", "&&", "||", "<<", ">>"}

// rewritePowers makes exponentiation right-associative and binding tighter
// than unary minus: "2^3^2" becomes "(2 ** (3 ** 2))" and "-2^2" becomes
// "-(2 ** 2)". govaluate alone reads them as (2^3)^2 and (-2)^2. Text
// without a power operator is returned unchanged.
func rewritePowers(text string) string {
	if !strings.Contains(text, "^") && !strings.Contains(text, "**") {
		return text
	}

	p := &powerRewriter{toks: tokenizeOps(text)}
	out := p.seq()
	// Unbalanced closing parentheses are kept so the text still fails to compile.
	for p.pos < len(p.toks) {
		out += " " + p.toks[p.pos]
		p.pos++
	}
	return out
}

func tokenizeOps(text string) []string {
	var toks []string
	rs := []rune(text)

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j

		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j

		default:
			tok := string(r)
			for _, op := range multiOps {
				if strings.HasPrefix(string(rs[i:]), op) {
					tok = op
					break
				}
			}
			toks = append(toks, tok)
			i += len([]rune(tok))
		}
	}
	return toks
}

type powerRewriter struct {
	toks []string
	pos  int
}

func (p *powerRewriter) peek(tok string) bool {
	return p.pos < len(p.toks) && p.toks[p.pos] == tok
}

func (p *powerRewriter) atPower() bool {
	return p.peek("^") || p.peek("**")
}

// seq rebuilds operands joined by binary operators up to a closing
// parenthesis or the end of input.
func (p *powerRewriter) seq() string {
	var b strings.Builder
	for p.pos < len(p.toks) && !p.peek(")") {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.signs())
		b.WriteString(p.power())

		if p.pos < len(p.toks) && !p.peek(")") {
			op := p.toks[p.pos]
			p.pos++
			if op == "," {
				b.WriteString(",")
			} else {
				b.WriteString(" " + op)
			}
		}
	}
	return b.String()
}

// signs consumes unary plus and minus in operand position.
func (p *powerRewriter) signs() string {
	var s string
	for p.peek("-") || p.peek("+") {
		s += p.toks[p.pos]
		p.pos++
	}
	return s
}

// power parses base [^ signs power], folding to the right.
func (p *powerRewriter) power() string {
	base := p.primary()
	if !p.atPower() {
		return base
	}
	p.pos++
	exp := p.signs() + p.power()
	return "(" + base + " ** " + exp + ")"
}

func (p *powerRewriter) primary() string {
	if p.pos >= len(p.toks) || p.peek(")") {
		return ""
	}
	tok := p.toks[p.pos]
	p.pos++

	if tok == "(" {
		return "(" + p.group()
	}
	if p.peek("(") && isIdentifier(tok) {
		p.pos++
		return tok + "(" + p.group()
	}
	return tok
}

// group finishes a parenthesized sequence whose "(" was already written.
func (p *powerRewriter) group() string {
	inner := p.seq()
	if p.peek(")") {
		p.pos++
		return inner + ")"
	}
	return inner
}

func isIdentifier(tok string) bool {
	r := []rune(tok)[0]
	return unicode.IsLetter(r) || r == '_'
}
