package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindValid(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), "kind %s", k)
	}
	assert.False(t, Kind("").Valid())
	assert.False(t, Kind("mind_reading").Valid())
}

func TestKindStructured(t *testing.T) {
	structured := map[Kind]bool{
		KindTaskSuggestion:        true,
		KindEntityExtraction:      true,
		KindContentClassification: true,
	}
	for _, k := range Kinds() {
		assert.Equal(t, structured[k], k.Structured(), "kind %s", k)
	}
}

func TestGenerationRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     GenerationRequest
		wantErr bool
	}{
		{"valid text", GenerationRequest{Kind: KindTextGeneration, RawInput: "x"}, false},
		{"valid translation", GenerationRequest{Kind: KindTranslation, RawInput: "x", TargetLanguage: "French"}, false},
		{"translation without language", GenerationRequest{Kind: KindTranslation, RawInput: "x"}, true},
		{"unknown kind", GenerationRequest{Kind: "mind_reading", RawInput: "x"}, true},
		{"creative default subtype", GenerationRequest{Kind: KindCreativeContent, RawInput: "x"}, false},
		{"creative valid subtype", GenerationRequest{Kind: KindCreativeContent, RawInput: "x", CreativeType: CreativePoem}, false},
		{"creative invalid subtype", GenerationRequest{Kind: KindCreativeContent, RawInput: "x", CreativeType: "haiku"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
