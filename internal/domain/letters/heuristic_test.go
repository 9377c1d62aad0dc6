package letters

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Category
	}{
		{
			name:     "complaint keyword",
			text:     "Направляю официальную жалобу на работу отделения",
			expected: CategoryComplaint,
		},
		{
			name:     "request keyword",
			text:     "Пожалуйста, пришлите выписку по счету",
			expected: CategoryInfoRequest,
		},
		{
			name:     "urgency keyword",
			text:     "Срочно требуется подтверждение платежа",
			expected: CategoryUrgent,
		},
		{
			name:     "no keywords",
			text:     "Добрый день, благодарим за сотрудничество",
			expected: CategoryGeneral,
		},
		{
			name:     "complaint wins over request",
			text:     "Пожалуйста, примите мою претензию к рассмотрению",
			expected: CategoryComplaint,
		},
		{
			name:     "complaint wins over urgency",
			text:     "Это официальная жалоба, срочно нужен ответ",
			expected: CategoryComplaint,
		},
		{
			name:     "case insensitive",
			text:     "ЖАЛОБА НА ОБСЛУЖИВАНИЕ",
			expected: CategoryComplaint,
		},
		{
			name:     "request wins over urgency",
			text:     "Срочный запрос документов",
			expected: CategoryInfoRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Это официальная жалоба, срочно нужен ответ"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify is not deterministic: %q then %q", first, got)
		}
	}
}

func TestDetectTone(t *testing.T) {
	tests := []struct {
		role     string
		expected Tone
	}{
		{"admin", ToneStrictFormal},
		{"Admin", ToneStrictFormal},
		{"manager", ToneCorporate},
		{"employee", ToneSemiFormal},
		{"partner", ToneFormal},
		{"client", ToneNeutral},
		{"", ToneNeutral},
		{"  MANAGER  ", ToneCorporate},
	}

	for _, tt := range tests {
		t.Run("role="+tt.role, func(t *testing.T) {
			if got := DetectTone(tt.role); got != tt.expected {
				t.Errorf("DetectTone(%q) = %q, want %q", tt.role, got, tt.expected)
			}
		})
	}
}

func TestDetectSLA(t *testing.T) {
	tests := []struct {
		category Category
		expected SLATier
	}{
		{CategoryUrgent, SLACritical},
		{CategoryComplaint, SLAHigh},
		{CategoryRegulatory, SLAHigh},
		{CategoryInfoRequest, SLAMedium},
		{CategoryPartnership, SLAMedium},
		{CategorySpam, SLALow},
		{CategoryGeneral, SLALow},
		{CategoryUndetermined, SLALow},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := DetectSLA(tt.category); got != tt.expected {
				t.Errorf("DetectSLA(%q) = %q, want %q", tt.category, got, tt.expected)
			}
		})
	}
}

func TestRouteDepartmentTotal(t *testing.T) {
	for _, c := range AllCategories() {
		if RouteDepartment(c) == "" {
			t.Errorf("RouteDepartment(%q) returned empty department", c)
		}
	}
	if RouteDepartment(CategoryUndetermined) == "" {
		t.Error("RouteDepartment(undetermined) returned empty department")
	}
}

func TestCannedReplyTotal(t *testing.T) {
	for _, c := range AllCategories() {
		if CannedReply(c) == "" {
			t.Errorf("CannedReply(%q) returned empty reply", c)
		}
	}
}
