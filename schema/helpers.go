package schema

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
)

// NoExtension is the bucket for files without a file extension.
const NoExtension = "(no ext)"

// FileExtension returns the lowercased extension of a path including the
// leading dot, or NoExtension when the file has none.
func FileExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || ext == "." {
		return NoExtension
	}
	return ext
}

// FormatNumber renders a count in compact form: 1500 -> "1.5K", 2500000 -> "2.5M".
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// FormatNumberFull renders a count with thousands separators: 1234567 -> "1,234,567".
func FormatNumberFull(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// KV is a key with its count, used for sorted breakdowns.
type KV struct {
	Key   string
	Value int
}

// SortedByValue returns map entries ordered by descending value, ties by key.
func SortedByValue(m map[string]int) []KV {
	out := make([]KV, 0, len(m))
	for k, v := range m {
		out = append(out, KV{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// CalculatePercentages converts counts into percentages of the map total,
// rounded to one decimal place. Empty or zero-total maps yield an empty map.
func CalculatePercentages(m map[string]int) map[string]float64 {
	total := 0
	for _, v := range m {
		total += v
	}
	out := make(map[string]float64, len(m))
	if total == 0 {
		return out
	}
	for k, v := range m {
		out[k] = math.Round(float64(v)/float64(total)*1000) / 10
	}
	return out
}

// BarChart renders a proportional bar of at most width cells.
// A nonzero value always gets at least one cell.
func BarChart(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	n := value * width / max
	if n == 0 && value > 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// Truncate shortens s to at most max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
