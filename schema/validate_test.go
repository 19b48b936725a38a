package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherSchema() *ObjectBuilder {
	return Object().
		Field("location", String().Required()).
		Field("unit", String().Enum("celsius", "fahrenheit").Default("celsius")).
		Field("days", Int().Min(1).Max(14).Default(7))
}

func requireFields(t *testing.T, err error) []FieldError {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestObjectValidate(t *testing.T) {
	t.Run("valid arguments with defaults", func(t *testing.T) {
		got, err := weatherSchema().Validate([]byte(`{"location":"Paris"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"location": "Paris",
			"unit":     "celsius",
			"days":     int64(7),
		}, got)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := weatherSchema().Validate([]byte(`{}`))
		fields := requireFields(t, err)
		assert.Equal(t, []FieldError{{Field: "location", Reason: "is required"}}, fields)
		assert.Contains(t, err.Error(), "location")
	})

	t.Run("blank arguments read as empty object", func(t *testing.T) {
		_, err := weatherSchema().Validate([]byte("  "))
		fields := requireFields(t, err)
		assert.Equal(t, "location", fields[0].Field)

		got, err := Object().Validate(nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, got)
	})

	t.Run("no coercion", func(t *testing.T) {
		tests := []struct {
			name   string
			schema *ObjectBuilder
			args   string
			reason string
		}{
			{"string for integer", Object().Field("n", Int()), `{"n":"5"}`, "expected integer, got string"},
			{"float for integer", Object().Field("n", Int()), `{"n":5.5}`, "expected integer, got number"},
			{"string for number", Object().Field("n", Number()), `{"n":"5"}`, "expected number, got string"},
			{"number for string", Object().Field("s", String()), `{"s":5}`, "expected string, got number"},
			{"string for boolean", Object().Field("b", Bool()), `{"b":"true"}`, "expected boolean, got string"},
			{"null for string", Object().Field("s", String()), `{"s":null}`, "expected string, got null"},
			{"object for array", Object().Field("a", Array(String())), `{"a":{}}`, "expected array, got object"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.schema.Validate([]byte(tt.args))
				fields := requireFields(t, err)
				require.Len(t, fields, 1)
				assert.Equal(t, tt.reason, fields[0].Reason)
			})
		}
	})

	t.Run("integral floats are integers", func(t *testing.T) {
		got, err := Object().Field("n", Int()).Validate([]byte(`{"n":5.0}`))
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.(map[string]any)["n"])
	})

	t.Run("enum membership", func(t *testing.T) {
		_, err := weatherSchema().Validate([]byte(`{"location":"Paris","unit":"kelvin"}`))
		fields := requireFields(t, err)
		assert.Equal(t, []FieldError{{Field: "unit", Reason: `must be one of ["celsius", "fahrenheit"]`}}, fields)

		_, err = Object().Field("n", Int().Enum(1, 2)).Validate([]byte(`{"n":3}`))
		assert.Equal(t, "must be one of [1, 2]", requireFields(t, err)[0].Reason)

		_, err = Object().Field("n", Int().Enum(1, 2)).Validate([]byte(`{"n":2}`))
		assert.NoError(t, err)
	})

	t.Run("bounds", func(t *testing.T) {
		_, err := weatherSchema().Validate([]byte(`{"location":"Paris","days":30}`))
		assert.Equal(t, []FieldError{{Field: "days", Reason: "must be <= 14"}}, requireFields(t, err))

		_, err = Object().Field("p", Number().ExclusiveMin(0)).Validate([]byte(`{"p":0}`))
		assert.Equal(t, "must be > 0", requireFields(t, err)[0].Reason)
	})

	t.Run("string constraints", func(t *testing.T) {
		s := Object().Field("code", String().MinLength(2).MaxLength(3).Pattern(`^[a-z]+$`))

		_, err := s.Validate([]byte(`{"code":"a"}`))
		assert.Equal(t, "must be at least 2 characters", requireFields(t, err)[0].Reason)

		_, err = s.Validate([]byte(`{"code":"ab"}`))
		assert.NoError(t, err)

		_, err = s.Validate([]byte(`{"code":"abcd"}`))
		assert.Equal(t, "must be at most 3 characters", requireFields(t, err)[0].Reason)

		_, err = s.Validate([]byte(`{"code":"AB"}`))
		assert.Equal(t, `must match pattern "^[a-z]+$"`, requireFields(t, err)[0].Reason)

		_, err = s.Validate([]byte(`{"code":"éa"}`))
		assert.Error(t, err)
	})

	t.Run("nested paths", func(t *testing.T) {
		s := Object().
			Field("user", Object().
				Field("name", String().Required()).
				Field("tags", Array(Object().Field("id", Int().Required()))).
				Required())

		_, err := s.Validate([]byte(`{"user":{"tags":[{"id":1},{"id":2},{"id":"x"}]}}`))
		fields := requireFields(t, err)
		assert.Equal(t, []FieldError{
			{Field: "user.name", Reason: "is required"},
			{Field: "user.tags[2].id", Reason: "expected integer, got string"},
		}, fields)
		assert.True(t, (&ValidationError{Fields: fields}).Has("user.tags[2].id"))
	})

	t.Run("arrays", func(t *testing.T) {
		s := Object().Field("tags", Array(String()).MinItems(1).MaxItems(3).UniqueItems())

		got, err := s.Validate([]byte(`{"tags":["a","b"]}`))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, got.(map[string]any)["tags"])

		_, err = s.Validate([]byte(`{"tags":[]}`))
		assert.Equal(t, "must contain at least 1 items", requireFields(t, err)[0].Reason)

		_, err = s.Validate([]byte(`{"tags":["a","a"]}`))
		assert.Equal(t, "items 0 and 1 are equal", requireFields(t, err)[0].Reason)
	})

	t.Run("additional properties", func(t *testing.T) {
		got, err := Object().Field("a", String()).Validate([]byte(`{"a":"x","extra":1.5,"n":2}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "extra": 1.5, "n": int64(2)}, got)

		_, err = Object().Field("a", String()).StrictMode().Validate([]byte(`{"a":"x","z":1,"b":2}`))
		assert.Equal(t, []FieldError{
			{Field: "b", Reason: "is not allowed"},
			{Field: "z", Reason: "is not allowed"},
		}, requireFields(t, err))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		for _, args := range []string{`{"location":`, `{"location":"x"} trailing`, `not json`} {
			_, err := weatherSchema().Validate([]byte(args))
			fields := requireFields(t, err)
			require.Len(t, fields, 1)
			assert.Empty(t, fields[0].Field)
			assert.Contains(t, fields[0].Reason, "malformed JSON")
		}
	})

	t.Run("non-object payload", func(t *testing.T) {
		_, err := weatherSchema().Validate([]byte(`[1,2]`))
		assert.Equal(t, []FieldError{{Reason: "expected object, got array"}}, requireFields(t, err))
	})

	t.Run("definition errors surface before validation", func(t *testing.T) {
		_, err := Object().Field("n", Int().Min(2).Max(1)).Validate([]byte(`{"n":1}`))
		var defErr *DefinitionError
		assert.ErrorAs(t, err, &defErr)
	})
}

func TestBuilderMatchesRaw(t *testing.T) {
	builder := Object().
		Field("location", String().MinLength(2).Required()).
		Field("days", Int().Min(1).Max(14)).
		Field("tags", Array(String()).UniqueItems()).
		StrictMode()
	raw := MustRaw(builder.MustBuild())

	for _, args := range []string{
		`{}`,
		`{"location":"P","days":0}`,
		`{"location":"Paris","days":2.5,"extra":true}`,
		`{"location":"Paris","tags":["a","a"]}`,
		`{"location":"Paris","days":3}`,
	} {
		t.Run(args, func(t *testing.T) {
			_, builderErr := builder.Validate([]byte(args))
			_, rawErr := raw.Validate([]byte(args))
			if rawErr == nil {
				assert.NoError(t, builderErr)
				return
			}
			assert.Equal(t, requireFields(t, rawErr), requireFields(t, builderErr))
		})
	}
}

func TestValidateRecompilesChangedBuilder(t *testing.T) {
	s := Object().Field("a", String())
	_, err := s.Validate([]byte(`{}`))
	require.NoError(t, err)

	s.Field("b", Int().Required())
	_, err = s.Validate([]byte(`{}`))
	assert.Equal(t, []FieldError{{Field: "b", Reason: "is required"}}, requireFields(t, err))
}

func TestNestedDefaults(t *testing.T) {
	s := Object().
		Field("opts", Object().Field("unit", String().Default("celsius"))).
		Field("points", Array(Object().Field("w", Int().Default(1))))

	got, err := s.Validate([]byte(`{"opts":{},"points":[{},{"w":3.0}]}`))
	require.NoError(t, err)
	m := got.(map[string]any)
	assert.Equal(t, map[string]any{"unit": "celsius"}, m["opts"])
	points := m["points"].([]any)
	assert.Equal(t, int64(3), points[1].(map[string]any)["w"])
	assert.NotNil(t, points[0].(map[string]any)["w"])
}
