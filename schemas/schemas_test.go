package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rolecolor-agent/internal/schemas"
)

var schemaFiles = []string{
	"structured_fields.schema.json",
	"score_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestStructuredFieldsSchema(t *testing.T) {
	schemaData, err := os.ReadFile("structured_fields.schema.json")
	require.NoError(t, err)

	valid := `{"name": "Ada Lovelace", "contact": "ada@example.com", "skills": "Math"}`
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), valid))

	invalid := `{"name": 42}`
	err = schemas.ValidateJSONString(string(schemaData), invalid)
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)

	unknownField := `{"nickname": "Ada"}`
	err = schemas.ValidateJSONString(string(schemaData), unknownField)
	require.Error(t, err)
}

func TestScoreResultSchema(t *testing.T) {
	schemaData, err := os.ReadFile("score_result.schema.json")
	require.NoError(t, err)

	valid := `{
		"raw_scores": {"Builder": 2.4, "Enabler": 0, "Thriver": 1.0, "Supportee": 0},
		"normalized_scores": {"Builder": 0.7, "Enabler": 0, "Thriver": 0.3, "Supportee": 0},
		"matches": {"Builder": [{"term": "architected", "weight": 2.0, "count": 1}]},
		"dominant_role": "Builder",
		"total_matched_terms": 2
	}`
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), valid))

	badRole := `{
		"raw_scores": {},
		"normalized_scores": {},
		"dominant_role": "Explorer"
	}`
	err = schemas.ValidateJSONString(string(schemaData), badRole)
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
