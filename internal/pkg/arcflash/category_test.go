package arcflash

import (
	"testing"

	"gotest.tools/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	// Upper bounds are inclusive.
	assert.Equal(t, Classify(0.5), CategoryNone)
	assert.Equal(t, Classify(1.2), CategoryNone)
	assert.Equal(t, Classify(1.2000001), Category1)
	assert.Equal(t, Classify(4), Category1)
	assert.Equal(t, Classify(4.0000001), Category2)
	assert.Equal(t, Classify(8), Category2)
	assert.Equal(t, Classify(25), Category3)
	assert.Equal(t, Classify(40), Category4)
	assert.Equal(t, Classify(40.1), CategoryDangerous)
}

func TestClassifyMonotonic(t *testing.T) {
	prev := CategoryNone
	for e := 0.1; e < 60; e += 0.1 {
		c := Classify(e)
		assert.Assert(t, c >= prev, "category regressed at %f", e)
		prev = c
	}
}

func TestCategoryLimits(t *testing.T) {
	limit, ok := Category1.Limit()
	assert.Assert(t, ok)
	assert.Equal(t, limit, 4.0)

	limit, ok = Category4.Limit()
	assert.Assert(t, ok)
	assert.Equal(t, limit, 40.0)

	_, ok = CategoryDangerous.Limit()
	assert.Assert(t, !ok)
}

func TestCategoryNames(t *testing.T) {
	assert.Equal(t, CategoryNone.String(), "Below arc-flash threshold (No PPE)")
	assert.Equal(t, Category3.String(), "PPE Category 3")
	assert.Equal(t, CategoryDangerous.String(), "Above PPE Category 4 (Dangerous)")
}
