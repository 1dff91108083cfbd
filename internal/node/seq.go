package node

// Double-ended helpers over plain slices. Scopes, children and attachers are
// ordinary slices; these keep call sites readable.

func PushBack[E any](s []E, e E) []E {
	return append(s, e)
}

func PushFront[E any](s []E, e E) []E {
	s = append(s, e)
	copy(s[1:], s)
	s[0] = e
	return s
}

// PopBack removes the last element; ok is false on an empty slice.
func PopBack[E any](s []E) (e E, rest []E, ok bool) {
	if len(s) == 0 {
		return e, s, false
	}
	return s[len(s)-1], s[:len(s)-1], true
}

// PopFront removes the first element; ok is false on an empty slice.
func PopFront[E any](s []E) (e E, rest []E, ok bool) {
	if len(s) == 0 {
		return e, s, false
	}
	return s[0], s[1:], true
}
