package utils

import (
	"os"
	"strings"
	"time"
)

// StripPrice keeps only digits and decimal separators.
// "R$ 89,90" becomes "89,90"
func StripPrice(s string) string {
	var result strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if ('0' <= b && b <= '9') ||
			b == '.' || b == ',' {
			result.WriteByte(b)
		}
	}
	return result.String()
}

func FormatDate(t time.Time) string {
	if t.Unix() <= 0 {
		return ""
	}

	return t.In(getTz()).Format("2006-01-02 15:04:05")
}

func getTz() *time.Location {
	tz, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		os.Stderr.WriteString("Failed to load timezone: " + err.Error())
		os.Exit(1)
	}
	return tz
}
