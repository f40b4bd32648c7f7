package shared

import "strings"

// FormatTransactionID converts an SDK transaction ID such as
// "0.0.1@1700000000.000000001" into the mirror node and explorer form
// "0.0.1-1700000000-000000001". Other input is returned trimmed.
func FormatTransactionID(transactionID string) string {
	trimmed := strings.TrimSpace(transactionID)
	if !strings.Contains(trimmed, "@") {
		return trimmed
	}

	parts := strings.Split(trimmed, "@")
	if len(parts) != 2 {
		return trimmed
	}

	return parts[0] + "-" + strings.ReplaceAll(parts[1], ".", "-")
}
