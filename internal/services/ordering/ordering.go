// Package ordering establishes the linear order of dataset items.
//
// Filenames follow <base-name>_<index>.<ext> with an unpadded decimal index,
// which sorts wrong as a plain string ("clip_10" < "clip_2"). The sort key
// zero-pads the index so a string comparison matches the numeric order.
package ordering

import (
	"slices"
	"strings"

	"github.com/killallgit/annotator/internal/models"
)

// IndexWidth is the width the trailing index is padded to
const IndexWidth = 5

// Key returns the sort key for a filename
func Key(filename string) string {
	stem, ext := filename, ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		stem, ext = filename[:i], filename[i+1:]
	}

	base, index := "", stem
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		base, index = stem[:i], stem[i+1:]
	}

	return base + "_" + padLeft(index, IndexWidth) + "." + ext
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Compare orders two items by their filename keys
func Compare(a, b models.DataItem) int {
	return strings.Compare(Key(a.OriginalFilename), Key(b.OriginalFilename))
}

// Sort returns a new slice of items sorted ascending by Key. Items with equal
// keys keep their input order.
func Sort(items []models.DataItem) []models.DataItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, Compare)
	return sorted
}
