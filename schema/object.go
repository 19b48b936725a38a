package schema

import (
	"fmt"
	"slices"
)

// Object creates a new object schema builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{base{&schemaNode{
		Type:       "object",
		Properties: make(map[string]*schemaNode),
	}}}
}

// ObjectBuilder constructs object type schemas. It is the usual parameter
// schema of a tool and validates arguments without any reflection.
type ObjectBuilder struct {
	base
}

// Desc sets the description for the object itself.
func (b *ObjectBuilder) Desc(description string) *ObjectBuilder {
	b.n.Description = description
	return b
}

// Field adds a field with its schema.
// The field argument can be a Builder or a *RequiredField.
// Redeclaring a field replaces its schema but keeps its original position.
func (b *ObjectBuilder) Field(name string, field any) *ObjectBuilder {
	var n *schemaNode
	required := false
	switch f := field.(type) {
	case *RequiredField:
		n, required = f.n, true
	case Builder:
		n = f.node()
	default:
		panic(fmt.Sprintf("schema: Field %q requires a Builder or *RequiredField, got %T", name, field))
	}

	if _, exists := b.n.Properties[name]; !exists {
		b.n.order = append(b.n.order, name)
	}
	b.n.Properties[name] = n
	if required && !slices.Contains(b.n.Required, name) {
		b.n.Required = append(b.n.Required, name)
	}
	return b
}

// AdditionalProperties controls whether extra properties are allowed.
func (b *ObjectBuilder) AdditionalProperties(allowed bool) *ObjectBuilder {
	b.n.AdditionalProperties = ptr(allowed)
	return b
}

// StrictMode rejects arguments carrying undeclared fields.
func (b *ObjectBuilder) StrictMode() *ObjectBuilder {
	return b.AdditionalProperties(false)
}

// Fields returns the declared field names in declaration order.
func (b *ObjectBuilder) Fields() []string {
	return slices.Clone(b.n.order)
}
