package shared

import "testing"

func TestFormatTransactionID(t *testing.T) {
	cases := map[string]string{
		"0.0.1@1700000000.000000001": "0.0.1-1700000000-000000001",
		" 0.0.42@1700000000.5 ":      "0.0.42-1700000000-5",
		"0.0.1-1700000000-000000001": "0.0.1-1700000000-000000001",
		"0.0.1@1700000000.1@extra":   "0.0.1@1700000000.1@extra",
		"":                           "",
	}
	for input, expected := range cases {
		if got := FormatTransactionID(input); got != expected {
			t.Fatalf("FormatTransactionID(%q) = %q, expected %q", input, got, expected)
		}
	}
}
