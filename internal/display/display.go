// Package display holds the text formatting shared by dashboard payloads.
package display

import (
	"fmt"
	"strings"
	"time"
)

// MaskEmail hides most of the local part: "john@example.com" -> "j***n@example.com"
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	local, domain := []rune(email[:at]), email[at+1:]
	if domain == "" || len(local) == 0 {
		return email
	}

	var masked string
	if len(local) > 2 {
		stars := len(local) - 1
		if stars > 3 {
			stars = 3
		}
		masked = string(local[0]) + strings.Repeat("*", stars) + string(local[len(local)-1])
	} else {
		masked = string(local[0]) + "*"
	}

	return masked + "@" + domain
}

// ShortHash keeps the first and last 8 characters of long digests
func ShortHash(hash string) string {
	if len(hash) <= 20 {
		return hash
	}
	return hash[:8] + "..." + hash[len(hash)-8:]
}

// Date formats like "Mar 10, 2024"
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// RelativeTime renders "Just now", "5 minutes ago", "2 days ago", falling
// back to Date after a week
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := hours / 24

	switch {
	case days > 7:
		return Date(t)
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	case minutes > 0:
		return plural(minutes, "minute")
	default:
		return "Just now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
