package middleware

import "testing"

func TestValidateSenderRole(t *testing.T) {
	tests := []struct {
		role    string
		wantErr bool
	}{
		{"", false},
		{"admin", false},
		{"Manager", false},
		{"  partner  ", false},
		{"client", false},
		{"superuser", true},
		{"drop table", true},
	}

	for _, tt := range tests {
		t.Run("role="+tt.role, func(t *testing.T) {
			err := ValidateSenderRole(tt.role)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSenderRole(%q) error = %v, wantErr %v", tt.role, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMessageID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"uppercase uuid", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", false},
		{"empty", "", true},
		{"not a uuid", "abc-123", true},
		{"sql injection", "1; DROP TABLE messages", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessageID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMessageID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 20},
		{-5, 20},
		{50, 50},
		{100, 100},
		{500, 100},
	}

	for _, tt := range tests {
		if got := ValidateLimit(tt.input); got != tt.expected {
			t.Errorf("ValidateLimit(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean", "обычный текст", "обычный текст"},
		{"null bytes", "a\x00b", "ab"},
		{"control chars", "a\x01\x02b", "ab"},
		{"keeps newline and tab", "a\tb\nc", "a\tb\nc"},
		{"trims", "  x  ", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.expected {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
