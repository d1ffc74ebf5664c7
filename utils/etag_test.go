package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	etag := GenerateETag(id, at)
	assert.True(t, strings.HasPrefix(etag, `"`))
	assert.True(t, strings.HasSuffix(etag, `"`))

	// stable for the same inputs
	assert.Equal(t, etag, GenerateETag(id, at))

	// changes when the document changes
	assert.NotEqual(t, etag, GenerateETag(id, at.Add(time.Second)))
	assert.NotEqual(t, etag, GenerateETag(primitive.NewObjectID(), at))
}
