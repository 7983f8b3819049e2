// Package money formats whole-rupiah amounts for display.
package money

import "github.com/dustin/go-humanize"

// FormatIDR renders n as Indonesian rupiah without fraction digits,
// for example "Rp 1.500.000".
func FormatIDR(n int64) string {
	if n < 0 {
		return "-Rp " + humanize.FormatInteger("#.###,", int(-n))
	}
	return "Rp " + humanize.FormatInteger("#.###,", int(n))
}
