package usecase

import (
	"strings"
	"testing"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderContext(t *testing.T) {
	hits := []domain.RetrievalHit{
		hit("SICK-200", "Safety Light Curtain", "Safety", 0.82),
		hit("SICK-210", "Safety Barrier", "", 0.65),
	}

	assert.Equal(t,
		"1. Product: Safety Light Curtain | SKU: SICK-200 | Category: Safety\n"+
			"2. Product: Safety Barrier | SKU: SICK-210 | Category: ",
		RenderContext(hits),
	)
	assert.Equal(t, EmptyContext, RenderContext(nil))
}

func TestPromptAssembler_Render(t *testing.T) {
	a := NewPromptAssembler("")
	prompt := a.Render([]domain.RetrievalHit{hit("A-1", "Valve", "Valves", 0.5)}, "brass valve?")

	assert.True(t, strings.HasPrefix(prompt, DefaultSystemPolicy))
	assert.Contains(t, prompt, "CONTEXT (Found Products):\n1. Product: Valve | SKU: A-1 | Category: Valves\n")
	assert.Contains(t, prompt, "USER QUESTION: \nbrass valve?\n")
	assert.True(t, strings.HasSuffix(prompt, "ENGINEER RECOMMENDATION:\n"))
}

func TestPromptAssembler_EmptyHitsUseSentinel(t *testing.T) {
	prompt := NewPromptAssembler("custom policy").Render(nil, "q")

	assert.True(t, strings.HasPrefix(prompt, "custom policy"))
	assert.Contains(t, prompt, "CONTEXT (Found Products):\n"+EmptyContext+"\n")
	assert.NotContains(t, prompt, "SICK Sensor Intelligence")
}
