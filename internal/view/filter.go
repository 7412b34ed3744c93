package view

// Filter is the roster category filter. The categories are mutually
// exclusive single-select: activating one clears the others, and
// re-activating the current one returns to All.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnread
	FilterGroup
	FilterArchived
)

// String returns the label shown in the filter row.
func (f Filter) String() string {
	switch f {
	case FilterUnread:
		return "Unread"
	case FilterGroup:
		return "Groups"
	case FilterArchived:
		return "Archived"
	default:
		return "All"
	}
}

// Toggle applies a filter click: selecting the active filter clears
// it, selecting another replaces it.
func Toggle(active, clicked Filter) Filter {
	if active == clicked {
		return FilterAll
	}
	return clicked
}
