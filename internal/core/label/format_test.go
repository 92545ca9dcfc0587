package label

import (
	"testing"

	"shelfmark/internal/core/apperror"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		padding   int
		separator string
		n         int64
		want      string
	}{
		{
			name:      "padding fills to width",
			format:    "ITEM-{n}",
			padding:   4,
			separator: "-",
			n:         7,
			want:      "ITEM-0007",
		},
		{
			name:      "number wider than padding is never truncated",
			format:    "ITEM-{n}",
			padding:   2,
			separator: "-",
			n:         12345,
			want:      "ITEM-12345",
		},
		{
			name:      "separator not doubled when format already carries it",
			format:    "ITEM-{n}",
			padding:   3,
			separator: "-",
			n:         1,
			want:      "ITEM-001",
		},
		{
			name:      "separator inserted when format omits it",
			format:    "ITEM{n}",
			padding:   3,
			separator: "-",
			n:         1,
			want:      "ITEM-001",
		},
		{
			name:      "bare placeholder renders number only",
			format:    "{n}",
			padding:   3,
			separator: "-",
			n:         7,
			want:      "007",
		},
		{
			name:      "empty separator",
			format:    "BOX{n}",
			padding:   2,
			separator: "",
			n:         9,
			want:      "BOX09",
		},
		{
			name:      "static suffix after placeholder",
			format:    "BOX-{n}-A",
			padding:   3,
			separator: "-",
			n:         12,
			want:      "BOX-012-A",
		},
		{
			name:      "zero padding renders plain number",
			format:    "T{n}",
			padding:   0,
			separator: "",
			n:         5,
			want:      "T5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.format, tt.padding, tt.separator, tt.n)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}

			// Pure function: a second call must yield the same string.
			if again := Format(tt.format, tt.padding, tt.separator, tt.n); again != got {
				t.Errorf("Format() not deterministic: %q vs %q", got, again)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	scheme := Scheme{Format: "ASSET-{n}", Padding: 4, Separator: "-"}
	for _, n := range []int64{0, 1, 7, 42, 9999, 10000, 123456789} {
		rendered := scheme.Render(n)
		if got := ParseNumber(rendered); got != n {
			t.Errorf("round trip %d -> %q -> %d", n, rendered, got)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		label string
		want  int64
	}{
		{"ITEM-003", 3},
		{"A1-0042", 42},
		{"12345", 12345},
		{"no digits here", -1},
		{"", -1},
		{"TRAILING-007-X", 7},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.label); got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		padding   int
		separator string
		wantErr   bool
	}{
		{"valid scheme", "ITEM-{n}", 3, "-", false},
		{"valid without separator", "{n}", 0, "", false},
		{"empty format", "", 3, "-", true},
		{"negative padding", "ITEM-{n}", -1, "-", true},
		{"missing placeholder", "ITEM-", 3, "-", true},
		{"duplicate placeholder", "{n}-{n}", 3, "-", true},
		{"placeholder in separator", "ITEM-{n}", 3, "{n}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.format, tt.padding, tt.separator)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				appErr, ok := apperror.AsAppError(err)
				if !ok {
					t.Fatalf("Validate() returned non-AppError: %v", err)
				}
				if appErr.Code != apperror.CodeInvalidFormat {
					t.Errorf("Validate() code = %s, want %s", appErr.Code, apperror.CodeInvalidFormat)
				}
			}
		})
	}
}

func TestDefaultSchemeIsValid(t *testing.T) {
	if err := DefaultScheme().Validate(); err != nil {
		t.Fatalf("default scheme must validate: %v", err)
	}
}
