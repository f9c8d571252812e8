package zap

import "strings"

// controlCharReplacer escapes control characters that can forge log lines (CWE-117).
// Export files are user supplied, so references and labels reach the logger untrusted.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}

// sanitizeValue escapes string values and leaves every other type untouched.
func sanitizeValue(v any) any {
	if s, ok := v.(string); ok {
		return sanitizeString(s)
	}

	return v
}
