package salarysheet

import (
	"strconv"
	"strings"

	salarysheeterrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet/errors"
)

// A formula source key is a template like "{B}+{C}" or "({D}-{E})*0.5".
// Text inside braces names an output column; everything else passes through
// verbatim. Parsing turns it into a token list interpreted per row, so the
// behavior is testable without touching the spreadsheet writer.

type formulaTokenKind int

const (
	tokenLiteral formulaTokenKind = iota
	tokenColumnRef
)

type formulaToken struct {
	kind  formulaTokenKind
	value string
}

// Formula is a parsed column formula.
type Formula struct {
	tokens []formulaToken
}

// ParseFormula splits a source key into literal and column-reference
// tokens. Unbalanced or empty braces are rejected at template save time,
// not at render time.
func ParseFormula(sourceKey string) (Formula, error) {
	var tokens []formulaToken
	rest := sourceKey

	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return Formula{}, salarysheeterrors.ErrInvalidFormula
			}
			tokens = append(tokens, formulaToken{kind: tokenLiteral, value: rest})
			break
		}

		if open > 0 {
			tokens = append(tokens, formulaToken{kind: tokenLiteral, value: rest[:open]})
		}

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return Formula{}, salarysheeterrors.ErrInvalidFormula
		}
		ref := rest[open+1 : open+end]
		if ref == "" {
			return Formula{}, salarysheeterrors.ErrInvalidFormula
		}
		tokens = append(tokens, formulaToken{kind: tokenColumnRef, value: ref})
		rest = rest[open+end+1:]
	}

	return Formula{tokens: tokens}, nil
}

// Render builds the spreadsheet-native formula for one output row: every
// column reference becomes letter+row, literals pass through, and the whole
// expression is prefixed with "=".
func (f Formula) Render(row int) string {
	var b strings.Builder
	b.WriteByte('=')
	for _, tok := range f.tokens {
		b.WriteString(tok.value)
		if tok.kind == tokenColumnRef {
			b.WriteString(strconv.Itoa(row))
		}
	}
	return b.String()
}

// References lists the column letters the formula mentions, in order.
func (f Formula) References() []string {
	var refs []string
	for _, tok := range f.tokens {
		if tok.kind == tokenColumnRef {
			refs = append(refs, tok.value)
		}
	}
	return refs
}
