// ABOUTME: Small output formatting helpers shared by CLI commands.
// ABOUTME: Column padding and string truncation.
package main

import "strings"

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
