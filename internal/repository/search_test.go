package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRegexQuotesMetacharacters(t *testing.T) {
	rx := searchRegex("c++ (senior)")

	assert.Equal(t, `c\+\+ \(senior\)`, rx.Pattern)
	assert.Equal(t, "i", rx.Options)
}

func TestSearchRegexPlainTermUnchanged(t *testing.T) {
	rx := searchRegex("backend")

	assert.Equal(t, "backend", rx.Pattern)
}
