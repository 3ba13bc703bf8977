package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateReportID creates a unique ID for an analysis report based on the
// current time and the song title
// Format: epochMillis_md5(title)[:8]
func GenerateReportID(title string) string {
	return reportID(time.Now(), title)
}

func reportID(now time.Time, title string) string {
	hash := md5.Sum([]byte(title))
	hashStr := hex.EncodeToString(hash[:])[:8] // Use first 8 chars of MD5

	return fmt.Sprintf("%d_%s", now.UnixMilli(), hashStr)
}
