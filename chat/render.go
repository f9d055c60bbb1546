package chat

import (
	"time"
	_ "time/tzdata"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

const (
	displayTimezone   = "Asia/Tokyo"
	displayTimeLayout = "2006-01-02 15:04:05"
)

var (
	ugcPolicy = bluemonday.UGCPolicy()

	// nil when the timezone database is unavailable; FormatTimestamp
	// then falls back to the raw value with an uncertainty marker.
	displayLocation, _ = time.LoadLocation(displayTimezone)
)

// RenderBody converts a message body from markdown to HTML and sanitizes
// the result for embedding in the client.
func RenderBody(content string) string {
	unsafe := blackfriday.Run([]byte(content))
	return string(ugcPolicy.SanitizeBytes(unsafe))
}

// FormatTimestamp renders a message timestamp in the display timezone.
// A missing timestamp renders as "N/A"; when the zone conversion is not
// available the raw value is shown with an explicit uncertainty marker.
func FormatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "N/A"
	}
	if displayLocation == nil {
		return ts.Format(displayTimeLayout) + " (UTC?)"
	}
	return ts.In(displayLocation).Format(displayTimeLayout)
}
