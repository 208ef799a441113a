package querybuilder

import "strings"

// Condition renders one predicate of a WHERE clause.
type Condition interface {
	appendSQL(w *writer)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ")
	w.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

// InStrings is In for the common case of an id set.
func InStrings(column string, values []string) Condition {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return inCondition{column: column, values: out}
}

func (c inCondition) appendSQL(w *writer) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}

	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type isNullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func IsNotNull(column string) Condition {
	return isNullCondition{column: column, not: true}
}

func (c isNullCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	if c.not {
		w.buf.WriteString(" IS NOT NULL")
		return
	}
	w.buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL; every ? binds the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(w *writer) {
	w.rewrite(c.expr, c.args)
}

// writer accumulates SQL text and bound args.
type writer struct {
	buf    strings.Builder
	args   []any
	next   int
	format Format
}

func newWriter(format Format) *writer {
	return &writer{next: 1, format: format}
}

func (w *writer) bind(v any) {
	w.buf.WriteString(w.format.placeholder(w.next))
	w.args = append(w.args, v)
	w.next++
}

func (w *writer) rewrite(expr string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.buf.WriteString(expr)
		return
	}

	used := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && used < len(exprArgs) {
			w.bind(exprArgs[used])
			used++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *writer) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}
