package mongo

// PageSnap converts an offset-based (from, size) pair into a skip/limit pair
// aligned to page boundaries: the result is the start of the page that
// contains the from offset, not the raw offset itself.
func PageSnap(from, size int) (skip, limit int64) {
	return int64(from/size) * int64(size), int64(size)
}
