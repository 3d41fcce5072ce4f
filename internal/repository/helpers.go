package repository

// nullableInt64ToValue converts a *int64 to a value suitable for sqlite
// storage: SQL NULL when the pointer is nil.
func nullableInt64ToValue(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
