package contract

// Page selects a window of a session listing. The zero value selects everything.
type Page struct {
	Limit  int
	Offset int
}

// Window applies p to an in-memory listing of n items and returns the slice bounds.
func (p Page) Window(n int) (start, end int) {
	start, end = p.Offset, n
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if p.Limit > 0 && start+p.Limit < end {
		end = start + p.Limit
	}
	return start, end
}
