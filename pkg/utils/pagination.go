package utils

const (
	DefaultTake = 5
	MaxTake     = 100
)

// ClampTake falls back to DefaultTake below 1 and caps at MaxTake.
func ClampTake(take int) int {
	switch {
	case take < 1:
		return DefaultTake
	case take > MaxTake:
		return MaxTake
	}
	return take
}

// PageOffset is the row offset of a 1-based page.
func PageOffset(page, take int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * take
}

func TotalPages(total int64, take int) int {
	if take <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(take) - 1) / int64(take))
}
