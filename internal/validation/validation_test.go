package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/templui/goalpost/internal/validation"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, validation.ValidateTitle("Run a marathon"))
	assert.ErrorIs(t, validation.ValidateTitle(""), validation.ErrTitleRequired)
	assert.ErrorIs(t, validation.ValidateTitle("   \t"), validation.ErrTitleRequired)
	assert.NoError(t, validation.ValidateTitle(strings.Repeat("é", validation.MaxTitleLength)))

	err := validation.ValidateTitle(strings.Repeat("a", validation.MaxTitleLength+1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, validation.ValidateDescription(""))
	assert.Error(t, validation.ValidateDescription(strings.Repeat("x", validation.MaxDescriptionLength+1)))
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, validation.ValidateComment("Looks good"))
	assert.ErrorIs(t, validation.ValidateComment("  \n "), validation.ErrCommentRequired)
	assert.Error(t, validation.ValidateComment(strings.Repeat("x", validation.MaxCommentLength+1)))
}

func TestClampProgress(t *testing.T) {
	tests := map[int]int{
		-20: 0,
		0:   0,
		42:  42,
		100: 100,
		101: 100,
	}
	for in, want := range tests {
		assert.Equal(t, want, validation.ClampProgress(in), "input %d", in)
	}
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validation.ValidateDateRange(start, start))
	assert.NoError(t, validation.ValidateDateRange(start, start.AddDate(0, 0, 1)))
	assert.ErrorIs(t, validation.ValidateDateRange(start, start.AddDate(0, 0, -1)), validation.ErrInvalidDateRange)
}
