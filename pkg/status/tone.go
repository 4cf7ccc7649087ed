package status

// Badge tones used by front ends to color a status.
const (
	ToneSuccess = "success"
	ToneWarning = "warning"
	ToneInfo    = "info"
	ToneDanger  = "danger"
	ToneNeutral = "neutral"
)

// Tone maps a status label to its badge tone.
func Tone(status string) string {
	switch status {
	case "Completed":
		return ToneSuccess
	case "In Review":
		return ToneWarning
	case "Processing":
		return ToneInfo
	case "Payment Pending":
		return ToneDanger
	default:
		return ToneNeutral
	}
}
