package indexer

import (
	"math"
	"strconv"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders size with 1024-based units and a fixed number of decimals,
// e.g. FormatBytes(1536, 1) == "1.5 KB". The unit is chosen before rounding, so
// 1048575 bytes render as "1024.0 KB". Halves round away from zero, so 1280 bytes
// render as "1.3 KB". Negative sizes render as zero.
func FormatBytes(size int64, precision int) string {
	if size < 0 {
		size = 0
	}
	if precision < 0 {
		precision = 0
	}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	scale := math.Pow(10, float64(precision))
	value = math.Round(value*scale) / scale
	return strconv.FormatFloat(value, 'f', precision, 64) + " " + byteUnits[unit]
}
