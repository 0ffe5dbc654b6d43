package store

// keyed is satisfied by the entity pointers held in slice lists.
type keyed interface {
	comparable
	GetID() string
}

// replaceByID returns list with the element whose ID matches v swapped for
// v. Other elements keep their pointers. When nothing matches, list itself
// is returned.
func replaceByID[T keyed](list []T, v T) []T {
	id := v.GetID()
	idx := -1
	for i, item := range list {
		if item.GetID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	for i := idx; i < len(out); i++ {
		if out[i].GetID() == id {
			out[i] = v
		}
	}
	return out
}

// removeByID returns list without elements whose ID is id. An absent id
// returns list unchanged.
func removeByID[T keyed](list []T, id string) []T {
	found := false
	for _, item := range list {
		if item.GetID() == id {
			found = true
			break
		}
	}
	if !found {
		return list
	}
	out := make([]T, 0, len(list)-1)
	for _, item := range list {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

// replaceCurrent swaps the current slot only when it holds the same record.
func replaceCurrent[T keyed](current, v T) T {
	var zero T
	if current != zero && current.GetID() == v.GetID() {
		return v
	}
	return current
}

// clearCurrent empties the current slot when it holds id.
func clearCurrent[T keyed](current T, id string) T {
	var zero T
	if current != zero && current.GetID() == id {
		return zero
	}
	return current
}
