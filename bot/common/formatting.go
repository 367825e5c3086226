package common

import (
	"fmt"
	"strings"
)

// FormatFavors formats a favor amount with thousand separators
func FormatFavors(favors int64) string {
	str := fmt.Sprintf("%d", favors)

	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if negative {
		return "-" + str
	}
	return str
}
