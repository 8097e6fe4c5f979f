package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-ondevice-ai/internal/domain/task"
)

func TestDecodeTaskSuggestions(t *testing.T) {
	raw := `{"tasks": [
		{"title": "Book venue", "description": "Reserve the conference room", "category": "logistics", "priority": "high"},
		{"title": "Send invites", "description": "Email the attendee list", "category": "communication", "priority": "medium"}
	]}`

	out, err := Decode(TaskSuggestionsV1, raw)
	require.NoError(t, err)
	assert.Equal(t, task.OutputSuggestions, out.Type)
	require.Len(t, out.Suggestions, 2)
	assert.Equal(t, "Book venue", out.Suggestions[0].Title)
	assert.Equal(t, "high", out.Suggestions[0].Priority)
}

func TestDecodeToleratesSurroundingText(t *testing.T) {
	// guided 模式下模型偶尔仍会在 JSON 前后夹带说明文字
	raw := "Here are the extracted entities:\n" +
		`{"people": ["Marie Curie"], "places": ["Paris"], "organizations": [], "events": ["Nobel ceremony"]}` +
		"\nLet me know if you need anything else."

	out, err := Decode(ExtractedEntitiesV1, raw)
	require.NoError(t, err)
	assert.Equal(t, task.OutputEntities, out.Type)
	require.NotNil(t, out.Entities)
	assert.Equal(t, []string{"Marie Curie"}, out.Entities.People)
	assert.Equal(t, []string{"Paris"}, out.Entities.Places)
	assert.Empty(t, out.Entities.Organizations)
}

func TestDecodeClassification(t *testing.T) {
	raw := `{"category": "technology", "sentiment": "positive", "topics": ["ai", "hardware"], "confidence": 0.92}`

	out, err := Decode(ContentClassificationV1, raw)
	require.NoError(t, err)
	require.NotNil(t, out.Classification)
	assert.Equal(t, "technology", out.Classification.Category)
	assert.Equal(t, "positive", out.Classification.Sentiment)
	assert.InDelta(t, 0.92, out.Classification.Confidence, 1e-9)
}

func TestDecodeMissingRequiredField(t *testing.T) {
	raw := `{"category": "news", "sentiment": "neutral", "topics": ["economy"]}`

	_, err := Decode(ContentClassificationV1, raw)
	require.Error(t, err)
	var sme *task.SchemaMismatchError
	require.True(t, errors.As(err, &sme))
	assert.Equal(t, string(ContentClassificationV1), sme.Schema)
}

func TestDecodeConfidenceOutOfRange(t *testing.T) {
	raw := `{"category": "news", "sentiment": "neutral", "topics": [], "confidence": 1.5}`

	_, err := Decode(ContentClassificationV1, raw)
	assert.True(t, task.IsSchemaMismatch(err))
}

func TestDecodeTooManyTopics(t *testing.T) {
	raw := `{"category": "news", "sentiment": "neutral", "topics": ["a","b","c","d","e","f"], "confidence": 0.5}`

	_, err := Decode(ContentClassificationV1, raw)
	var sme *task.SchemaMismatchError
	assert.True(t, errors.As(err, &sme))
}

func TestDecodeEmptySuggestionsRejected(t *testing.T) {
	_, err := Decode(TaskSuggestionsV1, `{"tasks": []}`)
	var sme *task.SchemaMismatchError
	assert.True(t, errors.As(err, &sme))
}

func TestDecodeInvalidJSON(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not json at all",
		`{"tasks": [`,
	}
	for _, raw := range cases {
		_, err := Decode(TaskSuggestionsV1, raw)
		require.Error(t, err, "raw: %q", raw)
		var sme *task.SchemaMismatchError
		assert.True(t, errors.As(err, &sme), "raw: %q", raw)
	}
}

func TestDecodeUnknownSchemaID(t *testing.T) {
	_, err := Decode(ID("bogus_v1"), `{}`)
	var sme *task.SchemaMismatchError
	assert.True(t, errors.As(err, &sme))
}

func TestForKindMapping(t *testing.T) {
	cases := []struct {
		kind       task.Kind
		want       ID
		structured bool
	}{
		{task.KindTaskSuggestion, TaskSuggestionsV1, true},
		{task.KindEntityExtraction, ExtractedEntitiesV1, true},
		{task.KindContentClassification, ContentClassificationV1, true},
		{task.KindTextGeneration, "", false},
		{task.KindTranslation, "", false},
		{task.KindCreativeContent, "", false},
	}
	for _, tc := range cases {
		id, ok := ForKind(tc.kind)
		assert.Equal(t, tc.structured, ok, "kind %s", tc.kind)
		assert.Equal(t, tc.want, id, "kind %s", tc.kind)
	}
}

func TestFormatReturnsValidSchema(t *testing.T) {
	for id := range rawSchemas {
		raw := Format(id)
		require.NotEmpty(t, raw, "schema %s", id)
		assert.True(t, len(raw) > 2, "schema %s", id)
	}
}

func TestExtractJSONValue(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"pure object", `{"a": 1}`, `{"a": 1}`},
		{"leading prose", `Sure! {"a": 1}`, `{"a": 1}`},
		{"trailing prose", `{"a": 1} hope that helps`, `{"a": 1}`},
		{"array", `result: [1, 2, 3] done`, `[1, 2, 3]`},
		{"no json", "plain text", "plain text"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSONValue(tc.in))
		})
	}
}
