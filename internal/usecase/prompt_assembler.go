package usecase

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
)

// EmptyContext подставляется в промпт, когда поиск ничего не нашёл.
const EmptyContext = "No relevant products found."

// DefaultSystemPolicy: правила для модели: только товары из контекста, не больше трёх, фиксированный отказ.
const DefaultSystemPolicy = `You are a SICK Sensor Intelligence Specialist and Industrial Automation Engineer.
Your goal is to recommend SICK products (and relevant ABB/Siemens alternatives) based on the provided CONTEXT.

### RESPONSE RULES:
1. **Direct Answer Only**: Start directly with the recommendation. Do NOT say "Based on the context".
2. **Strict Filtering**: Only recommend products found in the CONTEXT.
3. **Rich Data Utilization**: If the context contains links to **Technical Drawings** or **Documents** (Datasheets/CAD), you MUST include them in your response.
4. **No Matches**: If nothing matches, say exactly: "I could not find [Brand] [Category] in the database."

### OUTPUT FORMAT:
For each matching product (Max 3), use this EXACT Markdown structure:

**Rank:** [Best / Better / Acceptable]
**Product:** [Product Name]
**SKU:** [Part Number]
**Reason:** [Technical explanation from CONTEXT]
**Resources:**
- [Datasheet](url) (if available)
- [Drawing](url) (if available)

---

### STYLE:
- Professional, technical, concise.
- Use bolding for key terms.
`

const ragTemplate = `%s

CONTEXT (Found Products):
%s

USER QUESTION: 
%s

ENGINEER RECOMMENDATION:
`

// PromptAssembler собирает промпт для генерации из найденных товаров и вопроса.
type PromptAssembler struct {
	policy string
}

// NewPromptAssembler создаёт сборщик с заданной политикой. Пустая политика заменяется DefaultSystemPolicy.
func NewPromptAssembler(policy string) *PromptAssembler {
	if strings.TrimSpace(policy) == "" {
		policy = DefaultSystemPolicy
	}

	return &PromptAssembler{policy: policy}
}

// Render возвращает полный промпт.
func (a *PromptAssembler) Render(hits []domain.RetrievalHit, query string) string {
	return fmt.Sprintf(ragTemplate, a.policy, RenderContext(hits), query)
}

// RenderContext нумерует попадания с единицы, по одному на строку.
func RenderContext(hits []domain.RetrievalHit) string {
	if len(hits) == 0 {
		return EmptyContext
	}

	lines := make([]string, 0, len(hits))
	for i, hit := range hits {
		lines = append(lines, fmt.Sprintf("%d. Product: %s | SKU: %s | Category: %s", i+1, hit.Name, hit.Sku, hit.Category))
	}

	return strings.Join(lines, "\n")
}
