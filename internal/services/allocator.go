package services

import (
	"fmt"
	"strconv"
	"strings"
)

// NextDeviceID derives the next device identifier for the given year.
//
// Existing IDs are scanned for the "YYYY-" prefix and the highest numeric
// suffix wins; the sequence starts at 1 when the year has no devices yet.
// Suffixes are compared as numbers, not strings, so the sequence stays
// correct if a year ever passes 9999 and the padding widens.
func NextDeviceID(year int, existingIDs []string) string {
	prefix := fmt.Sprintf("%d-", year)

	maxSeq := 0
	for _, id := range existingIDs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		seq, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return FormatDeviceID(year, maxSeq+1)
}

// FormatDeviceID renders a device id as YYYY-NNNN, zero padded to four digits
func FormatDeviceID(year, seq int) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}
