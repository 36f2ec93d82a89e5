// Package registry holds the closed code tables the codec depends on.
//
// Every table is a bijection between symbolic identifiers used in the
// parameter model (e.g. "standard_rate") and the wire codes emitted into
// the XML document (e.g. "S"). Tables are built once at init and never
// mutated, so concurrent lookups need no synchronization.
package registry

// Table is an immutable symbol<->code mapping with a fallback symbol.
type Table struct {
	name     string
	fallback string
	toCode   map[string]string
	toSymbol map[string]string
	symbols  []string
}

type entry struct {
	symbol string
	code   string
}

func newTable(name, fallback string, entries []entry) *Table {
	t := &Table{
		name:     name,
		fallback: fallback,
		toCode:   make(map[string]string, len(entries)),
		toSymbol: make(map[string]string, len(entries)),
		symbols:  make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		t.toCode[e.symbol] = e.code
		t.toSymbol[e.code] = e.symbol
		t.symbols = append(t.symbols, e.symbol)
	}
	return t
}

// Name returns the table name, used in validation messages.
func (t *Table) Name() string { return t.name }

// Valid reports whether v is a known symbol or a known wire code.
func (t *Table) Valid(v string) bool {
	if _, ok := t.toCode[v]; ok {
		return true
	}
	_, ok := t.toSymbol[v]
	return ok
}

// Code maps a symbol or a wire code to the wire code. The second return
// is false for unrecognized input; Code never panics.
func (t *Table) Code(v string) (string, bool) {
	if c, ok := t.toCode[v]; ok {
		return c, true
	}
	if _, ok := t.toSymbol[v]; ok {
		return v, true
	}
	return "", false
}

// Symbol maps a wire code (or a symbol) back to the symbol.
func (t *Table) Symbol(v string) (string, bool) {
	if s, ok := t.toSymbol[v]; ok {
		return s, true
	}
	if _, ok := t.toCode[v]; ok {
		return v, true
	}
	return "", false
}

// SymbolOrPassthrough converts a wire code to its symbol, returning the
// input unchanged when the code is not in the table. Used by the reverse
// parser so unknown codes survive a round trip instead of failing it.
func (t *Table) SymbolOrPassthrough(code string) string {
	if s, ok := t.Symbol(code); ok {
		return s
	}
	return code
}

// Values enumerates all symbols in declaration order.
func (t *Table) Values() []string {
	out := make([]string, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// Default returns the table's fallback symbol. Empty for tables without
// a meaningful default.
func (t *Table) Default() string { return t.fallback }
