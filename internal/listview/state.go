package listview

// Pagination describes the page currently held by a controller.
type Pagination struct {
	Page       int
	TotalPages int64
	TotalItems int64
	Limit      int
	// Unpaged marks a list the server returns whole; its page always holds every item.
	Unpaged bool
}

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool {
	return int64(p.Page) < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// Contains reports whether page is within bounds. Before the first load every
// positive page is accepted.
func (p Pagination) Contains(page int) bool {
	if page < 1 {
		return false
	}
	return p.TotalPages == 0 || int64(page) <= p.TotalPages
}

// State is what a list view renders.
type State[T any] struct {
	Items      []T
	Loading    bool
	Error      string
	Message    string
	Pagination Pagination
}

// Page is one fetched page together with its envelope.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// SinglePage wraps an unpaginated list as page 1 of 1.
func SinglePage[T any](items []T) Page[T] {
	n := len(items)
	return Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       1,
			TotalPages: 1,
			TotalItems: int64(n),
			Limit:      n,
			Unpaged:    true,
		},
	}
}

// reconcile recomputes pagination after a patch changed the item count by delta.
// A paged list never displays more than Limit items.
func reconcile[T any](items []T, p Pagination, delta int) ([]T, Pagination) {
	if p.Unpaged || p.Limit <= 0 {
		n := len(items)
		return items, Pagination{Page: 1, TotalPages: 1, TotalItems: int64(n), Limit: n, Unpaged: true}
	}
	p.TotalItems += int64(delta)
	if p.TotalItems < 0 {
		p.TotalItems = 0
	}
	limit := int64(p.Limit)
	p.TotalPages = (p.TotalItems + limit - 1) / limit
	if len(items) > p.Limit {
		items = items[:p.Limit]
	}
	return items, p
}

// Patch reconciles the loaded items with a confirmed server write.
type Patch[T any] func(items []T) []T

// Insert appends item.
func Insert[T any](item T) Patch[T] {
	return func(items []T) []T {
		return append(items, item)
	}
}

// Replace swaps every item matching match for item.
func Replace[T any](match func(T) bool, item T) Patch[T] {
	return Update(match, func(T) T { return item })
}

// Update rewrites every item matching match.
func Update[T any](match func(T) bool, update func(T) T) Patch[T] {
	return func(items []T) []T {
		for i := range items {
			if match(items[i]) {
				items[i] = update(items[i])
			}
		}
		return items
	}
}

// Remove drops every item matching match.
func Remove[T any](match func(T) bool) Patch[T] {
	return func(items []T) []T {
		kept := items[:0]
		for _, it := range items {
			if !match(it) {
				kept = append(kept, it)
			}
		}
		return kept
	}
}
