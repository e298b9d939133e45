package ordering

import (
	"fmt"
	"testing"

	"github.com/killallgit/annotator/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"clip_2.wav", "clip_00002.wav"},
		{"clip_10.wav", "clip_00010.wav"},
		{"dQw4w9WgXcQ_123456.mp3", "dQw4w9WgXcQ_123456.mp3"},
		{"multi_part_name_7.ogg", "multi_part_name_00007.ogg"},
		{"noindex.wav", "_noindex.wav"},
		{"clip_3", "clip_00003."},
		{"clip.v2_4.wav", "clip.v2_00004.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.filename))
		})
	}
}

func TestSortNumericOrderWithinFamily(t *testing.T) {
	for i := 1; i < 200; i++ {
		for _, j := range []int{i + 1, i * 10, i*10 + 3} {
			a := models.DataItem{OriginalFilename: fmt.Sprintf("clip_%d.wav", i)}
			b := models.DataItem{OriginalFilename: fmt.Sprintf("clip_%d.wav", j)}
			assert.Negative(t, Compare(a, b), "clip_%d should sort before clip_%d", i, j)
		}
	}
}

func TestSort(t *testing.T) {
	items := []models.DataItem{
		{DataID: 9, OriginalFilename: "a_10.wav"},
		{DataID: 5, OriginalFilename: "a_1.wav"},
		{DataID: 7, OriginalFilename: "a_2.wav"},
	}

	sorted := Sort(items)

	assert.Equal(t, []int64{5, 7, 9}, ids(sorted))
	assert.Equal(t, int64(9), items[0].DataID, "input must not be reordered")
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	items := []models.DataItem{
		{DataID: 3, OriginalFilename: "a_01.wav"},
		{DataID: 1, OriginalFilename: "a_1.wav"},
		{DataID: 2, OriginalFilename: "a_001.wav"},
	}

	assert.Equal(t, []int64{3, 1, 2}, ids(Sort(items)))
}

func TestSortEmpty(t *testing.T) {
	assert.Empty(t, Sort(nil))
}

func ids(items []models.DataItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.DataID
	}
	return out
}
