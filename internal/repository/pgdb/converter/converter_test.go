package converter

import (
	"testing"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMetadataEntity(t *testing.T) {
	ds := "https://example.com/ds.pdf"
	rec, err := ProductConverterImpl{}.ToMetadataEntity(&ProductMetadataModel{
		SkuID:             "SICK-200",
		Specifications:    []byte(`{"range":"2m","ip":67}`),
		Images:            []byte(`["a.png","b.png"]`),
		TechnicalDrawings: []byte(`[{"title":"Dimensions","url":"s3://d/1.pdf","type":"pdf"}]`),
		Documents:         []byte(`null`),
		DatasheetURL:      &ds,
	})
	require.NoError(t, err)

	assert.Equal(t, "SICK-200", rec.Sku)
	assert.Equal(t, "2m", rec.Specifications["range"])
	assert.Equal(t, []string{"a.png", "b.png"}, rec.Images)
	assert.Equal(t, []domain.Document{{Title: "Dimensions", URL: "s3://d/1.pdf", Type: "pdf"}}, rec.TechnicalDrawings)
	assert.Nil(t, rec.Documents)
	assert.Equal(t, &ds, rec.DatasheetURL)
}

func TestToMetadataEntity_NullsAndEmptyDatasheet(t *testing.T) {
	empty := ""
	rec, err := ProductConverterImpl{}.ToMetadataEntity(&ProductMetadataModel{SkuID: "A", DatasheetURL: &empty})
	require.NoError(t, err)

	assert.Nil(t, rec.Specifications)
	assert.Nil(t, rec.Images)
	assert.Nil(t, rec.DatasheetURL)
}

func TestToMetadataEntity_InvalidJSON(t *testing.T) {
	_, err := ProductConverterImpl{}.ToMetadataEntity(&ProductMetadataModel{SkuID: "A", Images: []byte(`{"not":"a list"}`)})
	assert.ErrorContains(t, err, "sku A: images")
}

func TestToCatalogEntity(t *testing.T) {
	category := "Safety"
	p, err := ProductConverterImpl{}.ToCatalogEntity(&CatalogProductModel{
		SkuID:          "SICK-200",
		ProductName:    "Safety Light Curtain",
		Category:       &category,
		Specifications: []byte(`{"range":"2m"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Safety", p.Category)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "2m", p.Specifications["range"])
}
