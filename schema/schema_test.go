package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		want    string
		wantErr error
	}{
		{"basic string", String(), `{"type":"string"}`, nil},
		{"string with enum", String().Desc("Unit").Enum("celsius", "fahrenheit"), `{"type":"string","description":"Unit","enum":["celsius","fahrenheit"]}`, nil},
		{"string with constraints", String().MinLength(1).MaxLength(10).Pattern(`^\w+$`).Default("x"), `{"type":"string","minLength":1,"maxLength":10,"pattern":"^\\w+$","default":"x"}`, nil},
		{"invalid string length", String().MinLength(100).MaxLength(10), "", ErrInvalidRange},
		{"invalid pattern", String().Pattern(`[invalid`), "", ErrInvalidPattern},
		{"integer alias", Integer().Min(1).Max(14).Default(7), `{"type":"integer","minimum":1,"maximum":14,"default":7}`, nil},
		{"int enum", Int().Enum(1, 2, 3), `{"type":"integer","enum":[1,2,3]}`, nil},
		{"invalid int range", Int().Min(100).Max(10), "", ErrInvalidRange},
		{"number exclusive bounds", Number().ExclusiveMin(0).ExclusiveMax(1), `{"type":"number","exclusiveMinimum":0,"exclusiveMaximum":1}`, nil},
		{"invalid exclusive bounds", Number().ExclusiveMin(1).ExclusiveMax(1), "", ErrInvalidRange},
		{"boolean alias", Boolean().Default(false), `{"type":"boolean","default":false}`, nil},
		{"array", Array(String()).MinItems(1).MaxItems(5).UniqueItems(), `{"type":"array","items":{"type":"string"},"minItems":1,"maxItems":5,"uniqueItems":true}`, nil},
		{"array without items", Array(nil), "", ErrNilItems},
		{"invalid array items", Array(Int().Min(5).Max(1)), "", ErrInvalidRange},
		{"empty object", Object(), `{"type":"object"}`, nil},
		{
			"nested object",
			Object().
				Field("user", Object().Field("name", String().Required()).Required()).
				Field("tags", Array(String())).
				StrictMode(),
			`{
				"type": "object",
				"properties": {
					"user": {"type":"object","properties":{"name":{"type":"string"}},"required":["name"]},
					"tags": {"type":"array","items":{"type":"string"}}
				},
				"required": ["user"],
				"additionalProperties": false
			}`,
			nil,
		},
		{"nested definition error", Object().Field("count", Int().Min(100).Max(10)), "", ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.builder.Build()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var defErr *DefinitionError
				assert.ErrorAs(t, err, &defErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDefinitionErrorPath(t *testing.T) {
	err := Object().
		Field("user", Object().Field("age", Int().Min(10).Max(1))).
		Check()

	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, "user.age", defErr.Field)
	assert.Equal(t, `schema: field "user.age": minimum exceeds maximum`, defErr.Error())
}

func TestMustBuild(t *testing.T) {
	assert.NotPanics(t, func() { _ = String().MustBuild() })
	assert.Panics(t, func() { _ = String().MinLength(100).MaxLength(10).MustBuild() })
}

func TestFieldRejectsNonBuilder(t *testing.T) {
	assert.Panics(t, func() { Object().Field("x", "string") })
}

func TestRequiredFieldDuplicates(t *testing.T) {
	obj := Object().
		Field("name", String().Required()).
		Field("age", Int()).
		Field("name", String().Required())

	var result struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(obj.MustBuild(), &result))
	assert.Equal(t, []string{"name"}, result.Required)
	assert.Equal(t, []string{"name", "age"}, obj.Fields())
}

func TestJSONIsDeterministic(t *testing.T) {
	obj := Object().
		Field("b", String()).
		Field("a", Int().Required()).
		Field("c", Bool())

	first := obj.JSON()
	for range 5 {
		assert.Equal(t, string(first), string(obj.JSON()))
	}
}

func TestBuildersImplementSchema(t *testing.T) {
	var _ Schema = Object()
	var _ Schema = (*RawSchema)(nil)
	var _ Schema = (*TypedSchema[struct{}])(nil)
	var _ Checker = Object()
}
