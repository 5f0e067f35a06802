package mongo

import (
	"reflect"
	"strings"
	"testing"

	"lashstudio/internal/confirmation"
	"lashstudio/internal/migrations/mongo/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestConfirmationValidatorMatchesRecord(t *testing.T) {
	schema, ok := validators.ConfirmationValidator["$jsonSchema"].(bson.M)
	require.True(t, ok)
	props, ok := schema["properties"].(bson.M)
	require.True(t, ok)
	required, ok := schema["required"].([]string)
	require.True(t, ok)

	fields := map[string]bool{}
	rt := reflect.TypeOf(confirmation.Record{})
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("bson")
		name, opts, _ := strings.Cut(tag, ",")
		fields[name] = true
		assert.Contains(t, props, name, "field %s has no schema entry", name)
		if opts != "omitempty" {
			assert.Contains(t, required, name, "field %s should be required", name)
		}
	}
	for _, name := range required {
		assert.True(t, fields[name], "required %s is not a record field", name)
	}
}

func TestCollectionsUseArchiveName(t *testing.T) {
	def, ok := Collections[confirmation.CollectionName]
	require.True(t, ok)
	assert.NotEmpty(t, def.Indexes)
	assert.NotNil(t, def.Validator)
}
