package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify(7, 7))
	assert.False(t, CanModify(7, 8))
	assert.False(t, CanModify(0, 7))
}
