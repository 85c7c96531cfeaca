package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"ar":  LanguageAR,
		"AR ": LanguageAR,
		"en":  LanguageEN,
		"fr":  LanguageEN,
		"":    LanguageEN,
	}

	for in, want := range cases {
		assert.Equal(t, want, ParseLanguage(in), in)
	}

	assert.True(t, LanguageAR.NeedsTranslation())
	assert.False(t, LanguageEN.NeedsTranslation())
}

func TestApplyMetadata_KeepsSearchFields(t *testing.T) {
	hit := NewRetrievalHit("p-1", "A-1", "Valve", "Valves", 0.9)
	url := "https://example.com/a1.pdf"

	hit.ApplyMetadata(&MetadataRecord{
		Sku:            "OTHER",
		Specifications: map[string]any{"dn": "50"},
		Images:         []string{"img.png"},
		DatasheetURL:   &url,
	})

	assert.Equal(t, "A-1", hit.Sku)
	assert.Equal(t, "Valve", hit.Name)
	assert.Equal(t, float32(0.9), hit.Score)
	assert.Equal(t, "50", hit.Specifications["dn"])
	assert.Equal(t, []string{"img.png"}, hit.Images)
	assert.NotNil(t, hit.TechnicalDrawings)
	assert.NotNil(t, hit.Documents)
	require.NotNil(t, hit.DatasheetURL)
	assert.Equal(t, url, *hit.DatasheetURL)
}

func TestApplyMetadata_MissingRecord(t *testing.T) {
	hit := NewRetrievalHit("p-1", "A-1", "Valve", "Valves", 0.9)
	hit.ApplyMetadata(nil)

	assert.Empty(t, hit.Specifications)
	assert.NotNil(t, hit.Specifications)
	assert.NotNil(t, hit.Images)
	assert.Nil(t, hit.DatasheetURL)
}

func TestEmbeddingText(t *testing.T) {
	p := NewCatalogProduct("A-1", "Valve", "Valves", "Brass ball valve", map[string]any{"dn": "50"})

	assert.Equal(t,
		"Product: Valve\nCategory: Valves\nDescription: Brass ball valve\nSpecs: {\"dn\":\"50\"}",
		p.EmbeddingText(),
	)
}

func TestEmbeddingText_TruncatesSpecs(t *testing.T) {
	p := NewCatalogProduct("A-1", "Valve", "Valves", "", map[string]any{"notes": strings.Repeat("x", 2000)})

	text := p.EmbeddingText()
	specs := text[strings.Index(text, "Specs: ")+len("Specs: "):]
	assert.Len(t, []rune(specs), specsPreviewLimit)
}

func TestIndexRecord_CarriesCatalogProductID(t *testing.T) {
	rec := NewCatalogProduct("SICK-200", "Safety Light Curtain", "Safety", "", nil).IndexRecord()

	assert.Equal(t, "SICK-200", rec.ProductID)
	assert.Equal(t, map[string]any{
		"product_id": "SICK-200",
		"sku":        "SICK-200",
		"name":       "Safety Light Curtain",
		"category":   "Safety",
	}, rec.Payload())
}

func TestNewInteractionLog(t *testing.T) {
	resp := RecommendationResponse{
		Answer:           "ok",
		SourceDocuments:  []RetrievalHit{NewRetrievalHit("1", "A-1", "Valve", "Valves", 0.8)},
		DetectedLanguage: LanguageAR,
		Confidence:       0.9,
		Outcome:          OutcomeSuccess,
	}

	log := NewInteractionLog("query", resp, 1500*time.Millisecond)

	require.NotNil(t, log.RecommendedSku)
	assert.Equal(t, "A-1", *log.RecommendedSku)
	assert.Equal(t, 1, log.HitCount)
	assert.Equal(t, int64(1500), log.ResponseTimeMs)
	assert.Equal(t, LanguageAR, log.DetectedLanguage)

	empty := NewInteractionLog("q", RecommendationResponse{Outcome: OutcomeNoMatch}, 0)
	assert.Nil(t, empty.RecommendedSku)
	assert.Equal(t, 0, empty.HitCount)
}
