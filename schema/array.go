package schema

// Array creates a new array schema builder with the specified item type.
// A nil items builder is reported by Build and Check.
func Array(items Builder) *ArrayBuilder {
	n := &schemaNode{Type: "array"}
	if items != nil {
		n.Items = items.node()
	}
	return &ArrayBuilder{base{n}}
}

// ArrayBuilder constructs array type schemas.
type ArrayBuilder struct {
	base
}

// Desc sets the description.
func (b *ArrayBuilder) Desc(description string) *ArrayBuilder {
	b.n.Description = description
	return b
}

// MinItems sets the minimum number of items.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder {
	b.n.MinItems = ptr(n)
	return b
}

// MaxItems sets the maximum number of items.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder {
	b.n.MaxItems = ptr(n)
	return b
}

// UniqueItems requires all items to be unique.
func (b *ArrayBuilder) UniqueItems() *ArrayBuilder {
	b.n.UniqueItems = true
	return b
}
