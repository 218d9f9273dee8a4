package model

import (
	"fmt"
	"strings"
)

// Filter is client-side view state over completion.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Filters lists every filter in tab order.
var Filters = []Filter{FilterAll, FilterActive, FilterDone}

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterDone:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, active or done)", s)
	}
}

func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterDone:
		return t.Completed
	default:
		return true
	}
}

// Next returns the following filter, wrapping around.
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// EmptyText is shown when nothing matches.
func (f Filter) EmptyText() string {
	if f == FilterAll || f == "" {
		return "No todos yet. Add one below!"
	}
	return fmt.Sprintf("No %s todos.", f)
}

// Apply keeps the todos matching f, in server order and unmodified.
func Apply(f Filter, todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
