package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rolecolor-agent/internal/llm"
)

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestExtractFieldsRequiresAPIKey(t *testing.T) {
	_, err := ExtractFields(context.Background(), "resume", "")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestExtractFieldsWithClient(t *testing.T) {
	client := &fakeClient{response: `NAME: Ada Lovelace
CONTACT: ada@example.com | (555) 000-1111 | London
EXPERIENCE: Analytical Engines Ltd - Engineer (1840-1850)
- Designed the first published algorithm
SKILLS: Mathematics, Analysis
EDUCATION: Private tutoring, 1835`}

	fields, err := ExtractFieldsWithClient(context.Background(), client, "raw resume text")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", fields.Name)
	assert.Equal(t, "ada@example.com | (555) 000-1111 | London", fields.Contact)
	assert.Equal(t, "Analytical Engines Ltd - Engineer (1840-1850)\n- Designed the first published algorithm", fields.Experience)
	assert.Equal(t, "Mathematics, Analysis", fields.Skills)
	assert.Equal(t, "Private tutoring, 1835", fields.Education)
}

func TestExtractFieldsWithClientUnparseableResponse(t *testing.T) {
	client := &fakeClient{response: "I could not parse that resume, sorry."}

	_, err := ExtractFieldsWithClient(context.Background(), client, "raw")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := buildExtractionPrompt("my resume body")

	assert.Contains(t, prompt, "my resume body")
	assert.Contains(t, prompt, "NAME:")
	assert.Contains(t, prompt, "EDUCATION:")
	assert.NotContains(t, prompt, "{{.")
}
