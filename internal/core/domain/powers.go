package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Power is a single (key, exponent) pair of a Powers product.
type Power[K ~string] struct {
	Key      K
	Exponent Exponent
}

// Powers is a product of keys raised to rational exponents. Zero exponents
// are never stored. Values are treated as immutable: every operation
// returns a fresh map.
type Powers[K ~string] map[K]Exponent

// Single returns the product containing only key**exp.
func Single[K ~string](key K, exp Exponent) Powers[K] {
	if exp.IsZero() {
		return Powers[K]{}
	}
	return Powers[K]{key: exp}
}

// Clone returns a copy of p.
func (p Powers[K]) Clone() Powers[K] {
	out := make(Powers[K], len(p))
	for k, e := range p {
		out[k] = e
	}
	return out
}

// Mul returns p * o.
func (p Powers[K]) Mul(o Powers[K]) Powers[K] {
	out := p.Clone()
	for k, e := range o {
		sum := out[k].Add(e)
		if sum.IsZero() {
			delete(out, k)
			continue
		}
		out[k] = sum
	}
	return out
}

// Div returns p / o.
func (p Powers[K]) Div(o Powers[K]) Powers[K] {
	return p.Mul(o.Pow(Int(-1)))
}

// Pow returns p ** exp.
func (p Powers[K]) Pow(exp Exponent) Powers[K] {
	out := make(Powers[K], len(p))
	if exp.IsZero() {
		return out
	}
	for k, e := range p {
		out[k] = e.Mul(exp)
	}
	return out
}

// InRange reports whether every exponent of p is within MaxExponent.
func (p Powers[K]) InRange() bool {
	for _, e := range p {
		if !e.InRange() {
			return false
		}
	}
	return true
}

// Equal reports whether p and o describe the same product.
func (p Powers[K]) Equal(o Powers[K]) bool {
	if len(p) != len(o) {
		return false
	}
	for k, e := range p {
		if oe, ok := o[k]; !ok || oe != e {
			return false
		}
	}
	return true
}

// IsEmpty reports whether p is the empty product.
func (p Powers[K]) IsEmpty() bool { return len(p) == 0 }

// Items returns the pairs ordered by key.
func (p Powers[K]) Items() []Power[K] {
	items := make([]Power[K], 0, len(p))
	for k, e := range p {
		items = append(items, Power[K]{Key: k, Exponent: e})
	}
	slices.SortFunc(items, func(a, b Power[K]) int { return cmp.Compare(a.Key, b.Key) })
	return items
}

// Format renders the product as "a ** 2 * b / c", using empty for the
// empty product. The output parses back to the same product.
func (p Powers[K]) Format(empty string) string {
	if len(p) == 0 {
		return empty
	}
	var num, den []string
	for _, it := range p.Items() {
		term := string(it.Key)
		e := it.Exponent
		if e.Sign() < 0 {
			if s := formatPower(e.Abs()); s != "" {
				term += " ** " + s
			}
			den = append(den, term)
			continue
		}
		if s := formatPower(e); s != "" {
			term += " ** " + s
		}
		num = append(num, term)
	}
	var b strings.Builder
	if len(num) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(strings.Join(num, " * "))
	}
	for _, d := range den {
		b.WriteString(" / ")
		b.WriteString(d)
	}
	return b.String()
}

// formatPower returns "" for 1, the integer for whole powers and "(n/d)" otherwise.
func formatPower(e Exponent) string {
	if e == Int(1) {
		return ""
	}
	if e.IsInteger() {
		return e.String()
	}
	return "(" + e.String() + ")"
}
