package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// Value разыменовывает указатель, для nil возвращает нулевое значение типа
func Value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
