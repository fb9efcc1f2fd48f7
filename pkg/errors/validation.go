package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateItemSize validates a measured item size.
// Both dimensions must be finite and non-negative; NaN and infinities are
// rejected because they poison every downstream height-sum and range-max
// computation.
func ValidateItemSize(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) {
		return New(ErrCodeInvalidItem, "item size cannot be NaN")
	}
	if math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidItem, "item size must be finite")
	}
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidItem, "item size must be non-negative, got %gx%g", width, height)
	}
	return nil
}

// ValidateSpacing validates row and column spacing values.
func ValidateSpacing(row, column float64) error {
	if math.IsNaN(row) || math.IsNaN(column) {
		return New(ErrCodeInvalidConfig, "spacing cannot be NaN")
	}
	if row < 0 {
		return New(ErrCodeInvalidConfig, "row spacing must be >= 0, got %g", row)
	}
	if column < 0 {
		return New(ErrCodeInvalidConfig, "column spacing must be >= 0, got %g", column)
	}
	return nil
}

// ValidateColumnLimit validates the upper bound on column count.
func ValidateColumnLimit(limit int) error {
	if limit < 1 {
		return New(ErrCodeInvalidConfig, "column limit must be >= 1, got %d", limit)
	}
	return nil
}

// ValidateWidthLimit validates a per-solve width limit.
// Positive infinity means "unbounded" and is accepted.
func ValidateWidthLimit(limit float64) error {
	if math.IsNaN(limit) {
		return New(ErrCodeInvalidConfig, "width limit cannot be NaN")
	}
	if math.IsInf(limit, -1) || limit < 0 {
		return New(ErrCodeInvalidConfig, "width limit must be >= 0 or unbounded, got %g", limit)
	}
	return nil
}

// ValidateManifestPath validates a manifest file path for safety.
// It prevents path traversal and ensures reasonable path length.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidManifest, "manifest path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidManifest, "manifest path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "manifest path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidManifest, "manifest path cannot contain path traversal sequences (..)")
	}

	return nil
}
