package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxCommentLength     = 2000
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrCommentRequired = errors.New("comment cannot be empty")
)

// ValidateTitle validates goal and milestone titles
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return ErrTitleRequired
	}

	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return fmt.Errorf("title is too long (max %d characters)", MaxTitleLength)
	}

	return nil
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("description is too long (max %d characters)", MaxDescriptionLength)
	}
	return nil
}

// ValidateComment validates comment content after trimming whitespace
func ValidateComment(content string) error {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return ErrCommentRequired
	}

	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return fmt.Errorf("comment is too long (max %d characters)", MaxCommentLength)
	}

	return nil
}
