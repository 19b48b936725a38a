package schema

// Int creates a new integer schema builder.
// Validated integers are returned as int64.
func Int() *IntBuilder {
	return &IntBuilder{base{&schemaNode{Type: "integer"}}}
}

// Integer is an alias for Int.
func Integer() *IntBuilder {
	return Int()
}

// IntBuilder constructs integer type schemas.
type IntBuilder struct {
	base
}

// Desc sets the description.
func (b *IntBuilder) Desc(description string) *IntBuilder {
	b.n.Description = description
	return b
}

// Min sets the minimum value (inclusive).
func (b *IntBuilder) Min(n int) *IntBuilder {
	b.n.Minimum = ptr(float64(n))
	return b
}

// Max sets the maximum value (inclusive).
func (b *IntBuilder) Max(n int) *IntBuilder {
	b.n.Maximum = ptr(float64(n))
	return b
}

// ExclusiveMin sets the exclusive minimum value.
func (b *IntBuilder) ExclusiveMin(n int) *IntBuilder {
	b.n.ExclusiveMinimum = ptr(float64(n))
	return b
}

// ExclusiveMax sets the exclusive maximum value.
func (b *IntBuilder) ExclusiveMax(n int) *IntBuilder {
	b.n.ExclusiveMaximum = ptr(float64(n))
	return b
}

// Enum restricts the value to specific integers.
func (b *IntBuilder) Enum(values ...int) *IntBuilder {
	b.n.Enum = make([]any, len(values))
	for i, v := range values {
		b.n.Enum[i] = int64(v)
	}
	return b
}

// Default sets the value used when the field is absent.
func (b *IntBuilder) Default(value int) *IntBuilder {
	b.n.Default = int64(value)
	return b
}

// Number creates a new number (float) schema builder.
// Validated numbers are returned as float64.
func Number() *NumberBuilder {
	return &NumberBuilder{base{&schemaNode{Type: "number"}}}
}

// NumberBuilder constructs number (float) type schemas.
type NumberBuilder struct {
	base
}

// Desc sets the description.
func (b *NumberBuilder) Desc(description string) *NumberBuilder {
	b.n.Description = description
	return b
}

// Min sets the minimum value (inclusive).
func (b *NumberBuilder) Min(n float64) *NumberBuilder {
	b.n.Minimum = ptr(n)
	return b
}

// Max sets the maximum value (inclusive).
func (b *NumberBuilder) Max(n float64) *NumberBuilder {
	b.n.Maximum = ptr(n)
	return b
}

// ExclusiveMin sets the exclusive minimum value.
func (b *NumberBuilder) ExclusiveMin(n float64) *NumberBuilder {
	b.n.ExclusiveMinimum = ptr(n)
	return b
}

// ExclusiveMax sets the exclusive maximum value.
func (b *NumberBuilder) ExclusiveMax(n float64) *NumberBuilder {
	b.n.ExclusiveMaximum = ptr(n)
	return b
}

// Enum restricts the value to specific numbers.
func (b *NumberBuilder) Enum(values ...float64) *NumberBuilder {
	b.n.Enum = make([]any, len(values))
	for i, v := range values {
		b.n.Enum[i] = v
	}
	return b
}

// Default sets the value used when the field is absent.
func (b *NumberBuilder) Default(value float64) *NumberBuilder {
	b.n.Default = value
	return b
}
