package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Errors is the aggregated validation error tree. A node is either a leaf
// carrying a message or a branch keyed by field name (or by indexed keys
// like "line_3"), so the tree mirrors the shape of the input that failed.
// The zero value is an empty branch.
type Errors struct {
	message  string
	children map[string]*Errors
	order    []string
}

// Leaf creates a leaf error node.
func Leaf(format string, args ...interface{}) *Errors {
	return &Errors{message: fmt.Sprintf(format, args...)}
}

// NewErrors creates an empty branch node.
func NewErrors() *Errors {
	return &Errors{}
}

// IsLeaf reports whether the node carries a single message.
func (e *Errors) IsLeaf() bool { return e != nil && e.message != "" }

// Message returns the leaf message, empty for branches.
func (e *Errors) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Empty reports whether no errors were collected.
func (e *Errors) Empty() bool {
	return e == nil || (e.message == "" && len(e.children) == 0)
}

// Add attaches a child node under field. Nil or empty children are
// ignored so section validators can return their result unconditionally.
func (e *Errors) Add(field string, child *Errors) {
	if child.Empty() {
		return
	}
	if e.children == nil {
		e.children = make(map[string]*Errors)
	}
	if _, exists := e.children[field]; !exists {
		e.order = append(e.order, field)
	}
	e.children[field] = child
}

// AddMessage attaches a leaf message under field.
func (e *Errors) AddMessage(field, format string, args ...interface{}) {
	e.Add(field, Leaf(format, args...))
}

// AddIndexed attaches a child under "<section>_<n>".
func (e *Errors) AddIndexed(section string, n int, child *Errors) {
	e.Add(fmt.Sprintf("%s_%d", section, n), child)
}

// Merge deep-merges other into e. Existing leaves win on conflict so the
// first error reported for a field is the one surfaced.
func (e *Errors) Merge(other *Errors) {
	if other.Empty() {
		return
	}
	for _, field := range other.order {
		child := other.children[field]
		existing := e.Get(field)
		switch {
		case existing == nil:
			e.Add(field, child)
		case existing.IsLeaf() || child.IsLeaf():
			// keep existing
		default:
			existing.Merge(child)
		}
	}
}

// Get returns the child node for field, nil if absent.
func (e *Errors) Get(field string) *Errors {
	if e == nil {
		return nil
	}
	return e.children[field]
}

// Fields returns the branch keys in insertion order.
func (e *Errors) Fields() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Flatten renders the tree as dotted-path messages, e.g.
// "supplier.address.city: is required". Paths are sorted for stable output.
func (e *Errors) Flatten() []string {
	var out []string
	e.flatten("", &out)
	sort.Strings(out)
	return out
}

func (e *Errors) flatten(prefix string, out *[]string) {
	if e == nil {
		return
	}
	if e.message != "" {
		if prefix == "" {
			*out = append(*out, e.message)
		} else {
			*out = append(*out, prefix+": "+e.message)
		}
		return
	}
	for _, field := range e.order {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		e.children[field].flatten(path, out)
	}
}

// MarshalJSON renders leaves as strings and branches as objects, matching
// the documented error result shape.
func (e *Errors) MarshalJSON() ([]byte, error) {
	if e.IsLeaf() {
		return json.Marshal(e.message)
	}
	obj := make(map[string]*Errors, len(e.children))
	for k, v := range e.children {
		obj[k] = v
	}
	return json.Marshal(obj)
}

// Error implements the error interface for callers that want a single
// diagnostic string.
func (e *Errors) Error() string {
	msgs := e.Flatten()
	if len(msgs) == 0 {
		return "validation failed"
	}
	if len(msgs) == 1 {
		return msgs[0]
	}
	return fmt.Sprintf("%s (and %d more)", msgs[0], len(msgs)-1)
}

// ParseError reports a structural parse failure at the XML boundary.
type ParseError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error.
func NewParseError(field, message string, cause error) *ParseError {
	return &ParseError{Field: field, Message: message, Cause: cause}
}
