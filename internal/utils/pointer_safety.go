package utils

// Ptr returns a pointer to v. Handy for filling optional DTO fields.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, returning T's zero value when p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
