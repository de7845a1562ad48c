package crawler

import (
	"fmt"
	"strings"
)

const (
	BYTE = 1.0 << (10 * iota)
	KIBIBYTE
	MEBIBYTE
)

func bytesConvert(bytes uint64) string {
	unit := ""
	value := float32(bytes)

	switch {
	case bytes >= MEBIBYTE:
		unit = "MB"
		value = value / MEBIBYTE
	case bytes >= KIBIBYTE:
		unit = "KB"
		value = value / KIBIBYTE
	case bytes >= BYTE:
		unit = "B"
	case bytes == 0:
		return "empty"
	}

	stringValue := strings.TrimSuffix(
		fmt.Sprintf("%.2f", value), ".00",
	)

	return fmt.Sprintf("%s %s", stringValue, unit)
}
