package models

// Helpers for Field implementations: zero optional values report absent.

func text(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	return s, true
}

func flag(b *bool) (any, bool) {
	if b == nil {
		return nil, false
	}
	return *b, true
}

func count(n *int) (any, bool) {
	if n == nil {
		return nil, false
	}
	return *n, true
}

func measure(f *float64) (any, bool) {
	if f == nil {
		return nil, false
	}
	return *f, true
}
