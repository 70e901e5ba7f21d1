package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSorted(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"ZED": 3, "ALPHA": 1, "MID": 2}

	var keys []string
	var values []int
	for key, value := range IterSorted(m) {
		keys = append(keys, key)
		values = append(values, value)
	}

	assert.Equal([]string{"ALPHA", "MID", "ZED"}, keys)
	assert.Equal([]int{1, 2, 3}, values)
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	labels := map[string]int{"LOOP": 2, "DONE": 8}
	variables := map[string]int{"X": 200}

	var keys []string
	for key := range IterSeq2Concat(IterSorted(labels), IterSorted(variables)) {
		keys = append(keys, key)
	}
	assert.Equal([]string{"DONE", "LOOP", "X"}, keys)

	// Early exit stops every sequence.
	keys = nil
	for key := range IterSeq2Concat(IterSorted(labels), IterSorted(variables)) {
		keys = append(keys, key)
		if len(keys) == 1 {
			break
		}
	}
	assert.Equal([]string{"DONE"}, keys)
}
