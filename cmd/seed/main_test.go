package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	books := generate(50, rand.New(rand.NewSource(1)))

	assert.Len(t, books, 50)
	for _, b := range books {
		assert.NoError(t, b.Validate())
		assert.GreaterOrEqual(t, b.PublishedYear, 1950)
		assert.Less(t, b.PublishedYear, 2025)
		assert.GreaterOrEqual(t, b.Price, 5.0)
		assert.True(t, b.ID.IsZero(), "ids are assigned by the store")
	}
}

func TestGenerate_Zero(t *testing.T) {
	assert.Empty(t, generate(0, rand.New(rand.NewSource(1))))
}
