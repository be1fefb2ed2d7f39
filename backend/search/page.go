package search

// Page selects a window of a ranked result. A zero Limit means the
// configured default.
type Page struct {
	Limit  int
	Offset int
}

// Config holds search policy.
type Config struct {
	DefaultPageSize        int
	MaxPageSize            int
	RequireFlatmateSeeking bool
	NearestTowns           int
}

// DefaultConfig returns the production search policy.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize:        50,
		MaxPageSize:            100,
		RequireFlatmateSeeking: true,
		NearestTowns:           3,
	}
}

// normalize applies defaults and caps to p.
func (c Config) normalize(p Page) (Page, error) {
	if p.Limit < 0 {
		return Page{}, invalidQuery("negative limit")
	}
	if p.Offset < 0 {
		return Page{}, invalidQuery("negative offset")
	}
	if p.Limit == 0 {
		p.Limit = c.DefaultPageSize
	}
	if c.MaxPageSize > 0 && p.Limit > c.MaxPageSize {
		p.Limit = c.MaxPageSize
	}
	return p, nil
}

// window returns the [start, end) bounds of p over n items.
func window(p Page, n int) (int, int) {
	if p.Offset >= n {
		return n, n
	}
	end := p.Offset + p.Limit
	if end > n {
		end = n
	}
	return p.Offset, end
}
