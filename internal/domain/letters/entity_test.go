package letters

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeParametersRoundTrip(t *testing.T) {
	params := map[string]string{
		"номер договора": "145-2024",
		"ФИО":            "Иванов Иван Иванович",
		"срок":           "до 15 марта",
	}

	decoded := DecodeParameters(EncodeParameters(params))
	if !reflect.DeepEqual(decoded, params) {
		t.Errorf("round trip mismatch:\n got  %v\n want %v", decoded, params)
	}
}

func TestEncodeParametersSanitizes(t *testing.T) {
	params := map[string]string{
		"note": "line1\nline2: \"quoted\"; extra",
	}
	encoded := EncodeParameters(params)
	decoded := DecodeParameters(encoded)
	if got := decoded["note"]; got != "line1 line2 quoted extra" {
		t.Errorf("sanitized value = %q", got)
	}
}

func TestEncodeParametersEmpty(t *testing.T) {
	if got := EncodeParameters(nil); got != "" {
		t.Errorf("EncodeParameters(nil) = %q, want empty", got)
	}
	if got := EncodeParameters(map[string]string{}); got != "" {
		t.Errorf("EncodeParameters(empty) = %q, want empty", got)
	}
}

func TestEncodeParametersStableOrder(t *testing.T) {
	params := map[string]string{"b": "2", "a": "1", "c": "3"}
	want := "a: 1; b: 2; c: 3"
	for i := 0; i < 5; i++ {
		if got := EncodeParameters(params); got != want {
			t.Fatalf("EncodeParameters = %q, want %q", got, want)
		}
	}
}

func TestDecodeParameters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "well formed",
			input:    "ключ: значение; второй: два",
			expected: map[string]string{"ключ": "значение", "второй": "два"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: map[string]string{},
		},
		{
			name:     "malformed segments skipped",
			input:    "без разделителя; : пустой ключ; норм: да",
			expected: map[string]string{"норм": "да"},
		},
		{
			name:     "extra whitespace",
			input:    "  срок :  завтра  ;  ",
			expected: map[string]string{"срок": "завтра"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeParameters(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("DecodeParameters(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"Официальная жалоба", CategoryComplaint},
		{"официальная жалоба", CategoryComplaint},
		{"  Спам  ", CategorySpam},
		{"undetermined", CategoryUndetermined},
		{"что-то неизвестное", CategoryGeneral},
		{"", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeCategory(tt.input); got != tt.expected {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSLA(t *testing.T) {
	if got := NormalizeSLA("HIGH", CategoryGeneral); got != SLAHigh {
		t.Errorf("NormalizeSLA(HIGH) = %q, want high", got)
	}
	// Unknown text falls back to the category lookup.
	if got := NormalizeSLA("asap", CategoryUrgent); got != SLACritical {
		t.Errorf("NormalizeSLA fallback = %q, want critical", got)
	}
}

func TestNormalizeTone(t *testing.T) {
	if got := NormalizeTone("strict-formal"); got != ToneStrictFormal {
		t.Errorf("NormalizeTone = %q, want strict-formal", got)
	}
	if got := NormalizeTone("shouty"); got != ToneNeutral {
		t.Errorf("NormalizeTone unknown = %q, want neutral", got)
	}
}
