package chain

import (
	"strings"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/parser"
)

// DataSource is the tabular data a chain reads its references from.
type DataSource interface {
	// Values returns the values at address within scope.
	Values(scope, address string) (models.Table, error)
	// ValuesByName returns the values of a named range or table. ok is false
	// when no such name exists; scope is the scope local names belong to.
	ValuesByName(name, scope string) (values models.Table, ok bool, err error)
	// Scopes lists the scope names of the source.
	Scopes() []string
}

// Resolver turns data references into tables.
type Resolver struct {
	Source DataSource
	// Scope is the current scope bare addresses resolve against.
	Scope string
}

// NewResolver creates a Resolver reading from source with scope as the current scope.
func NewResolver(source DataSource, scope string) *Resolver {
	return &Resolver{Source: source, Scope: scope}
}

// Resolve resolves reference in this order:
//  1. an empty reference yields an empty table;
//  2. scope!address is read from the named scope, which must exist;
//  3. a named range or table with that name;
//  4. an address in the current scope.
//
// Failures are returned as *ReferenceError. When both the name and the address
// lookups fail, the address error is reported.
func (r *Resolver) Resolve(reference string) (models.Table, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return models.Table{}, nil
	}

	if scopeName, address, ok := parser.SplitQualified(ref); ok {
		scope, ok := r.lookupScope(scopeName)
		if !ok {
			return nil, &ReferenceError{Kind: ErrScopeNotFound, Reference: reference, Scope: scopeName}
		}
		return r.address(reference, scope, address)
	}

	if values, ok, err := r.Source.ValuesByName(ref, r.Scope); ok && err == nil {
		return values.Clone(), nil
	}

	return r.address(reference, r.Scope, ref)
}

func (r *Resolver) address(reference, scope, address string) (models.Table, error) {
	values, err := r.Source.Values(scope, address)
	if err != nil {
		return nil, &ReferenceError{Kind: ErrInvalidAddress, Reference: reference, Scope: scope, Err: err}
	}
	return values.Clone(), nil
}

// lookupScope finds scope by exact name first, then case-insensitively.
func (r *Resolver) lookupScope(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	scopes := r.Source.Scopes()
	for _, s := range scopes {
		if s == name {
			return s, true
		}
	}
	for _, s := range scopes {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
