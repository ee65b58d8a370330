package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeError(t *testing.T) {
	assert.Equal(t, ErrCategoryDatabase, CategorizeError(errors.New("Error 1062: Duplicate entry 'x' for key 'slug'")))
	assert.Equal(t, ErrCategoryAuth, CategorizeError(errors.New("token is expired")))
	assert.Equal(t, ErrCategoryNetwork, CategorizeError(errors.New("dial tcp 127.0.0.1:6379: connection refused")))
	assert.Equal(t, ErrCategoryValidation, CategorizeError(errors.New("quantity must be positive")))
	assert.Equal(t, ErrCategoryUnknown, CategorizeError(errors.New("boom")))
	assert.Equal(t, ErrCategoryUnknown, CategorizeError(nil))
}

func TestUserMessageIsNeverEmpty(t *testing.T) {
	for _, c := range []string{ErrCategoryDatabase, ErrCategoryAuth, ErrCategoryNetwork, ErrCategoryValidation, ErrCategoryUnknown, "other"} {
		assert.NotEmpty(t, UserMessage(c))
	}
}
