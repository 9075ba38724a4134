package query

import (
	"cmp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Item is an entity expressions can be evaluated against.
type Item interface {
	Key() string
	Env() map[string]any
}

// Predicate is a compiled boolean expression.
type Predicate struct {
	src  string
	prog *vm.Program
}

// Compile parses a boolean expression.
func Compile(src string) (*Predicate, error) {
	prog, err := compile(src)
	if err != nil {
		return nil, err
	}
	return &Predicate{src: src, prog: prog}, nil
}

// String returns the expression source.
func (p *Predicate) String() string { return p.src }

// Eval reports whether item satisfies the predicate. A nil result counts as
// false; any other non-boolean result is an error.
func (p *Predicate) Eval(item Item) (bool, error) {
	v, err := expr.Run(p.prog, Env(item))
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidExpression, err, "evaluate %q on %s", p.src, item.Key())
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case nil:
		return false, nil
	}
	return false, errors.New(errors.ErrCodeInvalidExpression, "%q returned %T, want bool", p.src, v)
}

// Match evaluates p over items and returns the keys of those that satisfy
// it. Evaluation stops at the first error.
func Match[T Item](p *Predicate, items []T) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, it := range items {
		ok, err := p.Eval(it)
		if err != nil {
			return nil, err
		}
		if ok {
			out[it.Key()] = true
		}
	}
	return out, nil
}

// SortKey is a compiled ordering expression.
type SortKey struct {
	src  string
	desc bool
	prog *vm.Program
}

// CompileSort parses a sort key. A leading "-" sorts descending.
func CompileSort(src string) (*SortKey, error) {
	s := strings.TrimSpace(src)
	desc := strings.HasPrefix(s, "-")
	if desc {
		s = strings.TrimSpace(s[1:])
	}
	prog, err := compile(s)
	if err != nil {
		return nil, err
	}
	return &SortKey{src: s, desc: desc, prog: prog}, nil
}

// String returns the key source including the direction prefix.
func (k *SortKey) String() string {
	if k.desc {
		return "-" + k.src
	}
	return k.src
}

// Descending reports whether the key sorts in descending order.
func (k *SortKey) Descending() bool { return k.desc }

// SortFunc evaluates k once per item and returns a comparator over the
// results. Items whose key is nil sort last in either direction. Items that
// are not in items compare equal to everything.
func SortFunc[T Item](k *SortKey, items []T) (func(a, b T) int, error) {
	vals := make(map[string]any, len(items))
	for _, it := range items {
		v, err := expr.Run(k.prog, Env(it))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "evaluate %q on %s", k.src, it.Key())
		}
		vals[it.Key()] = v
	}
	return func(a, b T) int {
		va, vb := vals[a.Key()], vals[b.Key()]
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		c := Compare(va, vb)
		if k.desc {
			return -c
		}
		return c
	}, nil
}

// Compare orders two expression values. Numbers compare numerically, bools
// put false first, and anything else compares by its string form. Numbers
// sort before non-numbers.
func Compare(a, b any) int {
	fa, aNum := number(a)
	fb, bNum := number(b)
	switch {
	case aNum && bNum:
		return cmp.Compare(fa, fb)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	ba, aBool := a.(bool)
	bb, bBool := b.(bool)
	if aBool && bBool {
		return cmpBool(ba, bb)
	}
	return strings.Compare(toString(a), toString(b))
}

func number(v any) (float64, bool) {
	if _, ok := v.(string); ok {
		return 0, false
	}
	return track.Number(v)
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func compile(src string) (*vm.Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.New(errors.ErrCodeInvalidExpression, "empty expression")
	}
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "compile %q", src)
	}
	return prog, nil
}
