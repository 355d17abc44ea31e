package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "formations:quiz:graph:qz1", GenerateCacheKey("quiz", "graph", "qz1"))
}

func TestGenerateCacheKeyWithParams(t *testing.T) {
	key := GenerateCacheKey("formation", "list", "org-1", "status", "active")
	assert.Equal(t, "formations:formation:list:org-1:status_active", key)
}
