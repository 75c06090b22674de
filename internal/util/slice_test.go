package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[int]float64{450: 3, 150: 1, 300: 2}

	// WHEN
	keys := SortedKeys(input)

	// THEN
	assert.Equal(t, []int{150, 300, 450}, keys)
}

func TestSortedKeys_Strings(t *testing.T) {
	// GIVEN
	input := map[string]bool{"ph_up": true, "fill": true, "grow": false}

	// WHEN
	keys := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"fill", "grow", "ph_up"}, keys)
}
