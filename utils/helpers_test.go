package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationOffset(t *testing.T) {
	p := PaginationQuery{Page: 1, Limit: 20}
	assert.Equal(t, 0, p.Offset())

	p = PaginationQuery{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
}
