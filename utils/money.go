package utils

import "strconv"

// FormatRupiah renders an amount with dot thousand separators:
// 60000 -> "Rp60.000".
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(s)+len(s)/3+3)
	if neg {
		out = append(out, '-')
	}
	out = append(out, 'R', 'p')

	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, '.')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
