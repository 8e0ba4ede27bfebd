package validation

import (
	"errors"
	"time"

	"github.com/templui/goalpost/internal/model"
)

var ErrInvalidDateRange = errors.New("end date must not be before start date")

// ClampProgress limits progress to the 0..100 range the store expects
// callers to enforce.
func ClampProgress(progress int) int {
	return min(max(progress, model.ProgressMin), model.ProgressMax)
}

func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}
