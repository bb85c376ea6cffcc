package kafka

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCancellation(t *testing.T) {
	assert.True(t, isCancellation(context.Canceled))
	assert.True(t, isCancellation(context.DeadlineExceeded))
	assert.True(t, isCancellation(fmt.Errorf("fetching message: %w", context.Canceled)))
	assert.True(t, isCancellation(fmt.Errorf("fetching message: %w", context.DeadlineExceeded)))
	assert.False(t, isCancellation(fmt.Errorf("broker unreachable")))
	assert.False(t, isCancellation(nil))
}
