package schema

import "regexp"

// String creates a new string schema builder.
func String() *StringBuilder {
	return &StringBuilder{base{&schemaNode{Type: "string"}}}
}

// StringBuilder constructs string type schemas.
type StringBuilder struct {
	base
}

// Desc sets the description for this field.
func (b *StringBuilder) Desc(description string) *StringBuilder {
	b.n.Description = description
	return b
}

// Enum restricts the value to one of the provided options.
func (b *StringBuilder) Enum(values ...string) *StringBuilder {
	b.n.Enum = make([]any, len(values))
	for i, v := range values {
		b.n.Enum[i] = v
	}
	return b
}

// MinLength sets the minimum string length, counted in characters.
func (b *StringBuilder) MinLength(n int) *StringBuilder {
	b.n.MinLength = ptr(n)
	return b
}

// MaxLength sets the maximum string length, counted in characters.
func (b *StringBuilder) MaxLength(n int) *StringBuilder {
	b.n.MaxLength = ptr(n)
	return b
}

// Pattern sets a regex pattern the string must match.
// An invalid pattern is reported by Build and Check.
func (b *StringBuilder) Pattern(regex string) *StringBuilder {
	b.n.Pattern = regex
	_, b.n.patternErr = regexp.Compile(regex)
	return b
}

// Default sets the value used when the field is absent.
func (b *StringBuilder) Default(value string) *StringBuilder {
	b.n.Default = value
	return b
}
