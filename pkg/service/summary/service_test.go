package summary

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/gollem"
)

func TestResponseSchemaRequiresAllFields(t *testing.T) {
	schema := buildResponseSchema()

	gt.Value(t, schema.Type).Equal(gollem.TypeObject)
	for _, field := range []string{"situation", "behavior", "impact"} {
		prop, exists := schema.Properties[field]
		gt.Bool(t, exists).True()
		gt.Value(t, prop.Type).Equal(gollem.TypeString)
		gt.Bool(t, prop.Required).True()
	}
}
