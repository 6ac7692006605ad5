package registry

import "strings"

// List projection helpers. The displayed list is always a deterministic
// slice of the last fetched collection: filter first, then paginate.

// Ellipsis marks a gap in the page-number strip.
const Ellipsis = -1

// Filter keeps the items whose display field contains query,
// case-insensitively. An empty query keeps everything. Whitespace in
// the query is significant: "smith " only matches names containing it.
func Filter(items []Item, nameKey, query string) []Item {
	query = strings.ToLower(query)
	if query == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Display(nameKey)), query) {
			out = append(out, it)
		}
	}
	return out
}

// TotalPages is ceil(n / perPage); zero items means zero pages.
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Page returns the 1-based page slice. Out-of-range pages clamp to the
// nearest valid page so a shrinking filter can never strand the view.
func Page(items []Item, page, perPage int) []Item {
	total := TotalPages(len(items), perPage)
	if total == 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	first := (page - 1) * perPage
	last := first + perPage
	if last > len(items) {
		last = len(items)
	}
	return items[first:last]
}

// PageBounds gives the 1-based "Showing X to Y of Z" range for the footer.
func PageBounds(n, page, perPage int) (first, last int) {
	if n == 0 {
		return 0, 0
	}
	total := TotalPages(n, perPage)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	first = (page-1)*perPage + 1
	last = page * perPage
	if last > n {
		last = n
	}
	return first, last
}

// PageNumbers builds the page strip: every page when there are at most
// seven; otherwise the first and last page, a window of one around the
// current page, and Ellipsis markers filling the gaps.
func PageNumbers(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 7 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	const delta = 1
	left, right := current-delta, current+delta

	pages := []int{1}
	if left > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := max(2, left); i <= min(total-1, right); i++ {
		pages = append(pages, i)
	}
	if right < total-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, total)
}
