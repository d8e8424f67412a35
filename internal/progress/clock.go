// SPDX-License-Identifier: EPL-2.0

// Package progress renders playback progress as elapsed / total whole
// seconds followed by a bar.
package progress

import "fmt"

// Clock formats seconds as HH:MM:SS.
func Clock(seconds int) string {
	seconds = max(0, seconds)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

func fraction(elapsed, total int) float64 {
	if total <= 0 {
		return 1
	}
	return min(1, float64(elapsed)/float64(total))
}
