package letters

import "strings"

// Keyword lists per category, checked in priority order:
// complaint > request > urgency > general. First match wins.
var (
	complaintWords = []string{"жалоб", "претензи", "недоволен", "возмущен"}
	requestWords   = []string{"запрос", "пожалуйста", "прошу предоставить", "информаци"}
	urgencyWords   = []string{"срочно", "срочный", "немедленно", "как можно скорее"}
)

// Classify assigns a category from fixed keyword rules. Pure and
// total: always returns a value, never fails. Used whenever the
// generation service is unavailable or fails.
func Classify(text string) Category {
	t := strings.ToLower(text)
	if containsAny(t, complaintWords) {
		return CategoryComplaint
	}
	if containsAny(t, requestWords) {
		return CategoryInfoRequest
	}
	if containsAny(t, urgencyWords) {
		return CategoryUrgent
	}
	return CategoryGeneral
}

// DetectTone maps a sender role to the reply register.
func DetectTone(role string) Tone {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return ToneStrictFormal
	case "manager":
		return ToneCorporate
	case "employee":
		return ToneSemiFormal
	case "partner":
		return ToneFormal
	default:
		return ToneNeutral
	}
}

// DetectSLA is a pure lookup from category to response tier.
func DetectSLA(category Category) SLATier {
	switch category {
	case CategoryUrgent:
		return SLACritical
	case CategoryComplaint, CategoryRegulatory:
		return SLAHigh
	case CategoryInfoRequest, CategoryPartnership:
		return SLAMedium
	default:
		return SLALow
	}
}

// RouteDepartment is a pure lookup from category to the handling unit.
func RouteDepartment(category Category) string {
	switch category {
	case CategoryComplaint:
		return "Отдел по работе с претензиями"
	case CategoryInfoRequest:
		return "Клиентская поддержка"
	case CategoryUrgent:
		return "Дежурная смена"
	case CategoryRegulatory:
		return "Комплаенс"
	case CategoryPartnership:
		return "Отдел развития"
	case CategorySpam:
		return "Не требуется"
	default:
		return "Канцелярия"
	}
}

// CannedReply returns the stock acknowledgement per category, used on
// the heuristic path where no draft is generated.
func CannedReply(category Category) string {
	switch category {
	case CategoryComplaint:
		return "Спасибо за обращение. Ваша жалоба зарегистрирована, ответ будет направлен в установленный срок."
	case CategoryInfoRequest:
		return "Спасибо за обращение. Подготавливаем ответ на ваш запрос."
	case CategoryUrgent:
		return "Спасибо за обращение. Ваш запрос передан дежурной смене для приоритетной обработки."
	default:
		return "Спасибо за обращение. Мы свяжемся с вами."
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
