package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationError(t *testing.T) {
	t.Parallel()

	err := &GenerationError{Kind: KindCanceled, Attempts: 2, Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrNoValidModel)
	assert.Equal(t, "generation canceled after 2 attempts: context deadline exceeded", err.Error())

	wrapped := fmt.Errorf("handler: %w", &GenerationError{Kind: KindAllRateLimited, Attempts: 6})
	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindAllRateLimited, kind)
	assert.ErrorIs(t, wrapped, ErrAllRateLimited)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.Equal(t, "invalid generation request", (&GenerationError{Kind: KindInvalidRequest}).Error())
}
