package prompt

import (
	"strings"

	"github.com/avdeyev/mailtriage/internal/domain/letters"
)

// instruction is versioned content, not computed: it must enumerate
// every required output key explicitly so the extractor can validate
// completeness, and it names the closed category list verbatim.
const instruction = `Ты — ассистент банковской канцелярии. Проанализируй входящее письмо и верни ровно один JSON-объект без markdown-ограждений и без пояснений вокруг него.

Обязательные ключи (каждый присутствует всегда):
- "category": одна из категорий: "Официальная жалоба", "Запрос информации", "Срочный запрос", "Регуляторный запрос", "Партнёрство", "Спам", "Общее письмо".
- "reply_draft": готовый текст официального ответа.
- "summary": краткое содержание письма в 1-2 предложениях.
- "reply_style": одно из: neutral, corporate, formal, strict-formal, semi-formal.
- "time_to_reply": одно из: low, medium, high, critical.
- "parameters": строка вида "ключ: значение; ключ: значение" с извлечёнными параметрами (номер договора, ФИО, даты). Внутри ключей и значений запрещены двоеточия, кавычки, точки с запятой и переводы строк. Пустая строка, если параметров нет.
- "department": подразделение, которому следует направить письмо.
- "risks": замечания о рисках и необходимых действиях.

Письмо для анализа:
`

// Builder implements the letters.PromptBuilder port.
type Builder struct{}

func New() Builder { return Builder{} }

// Build concatenates the instruction block with a labeled data section
// containing the literal input text. The text is not escaped; the
// extractor downstream is responsible for tolerating desynchronized
// output.
func (Builder) Build(text string) string {
	var b strings.Builder
	b.Grow(len(instruction) + len(text) + 16)
	b.WriteString(instruction)
	b.WriteString("---\n")
	b.WriteString(text)
	b.WriteString("\n---")
	return b.String()
}

// ExpectedKeys lists every key the instruction requires, in template
// order. The extractor fills absent keys with defaults.
func (Builder) ExpectedKeys() []string {
	return []string{
		"category",
		"reply_draft",
		"summary",
		"reply_style",
		"time_to_reply",
		"parameters",
		"department",
		"risks",
	}
}

var _ letters.PromptBuilder = Builder{}
