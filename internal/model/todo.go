package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID is the server-assigned todo identifier. Any JSON scalar is accepted:
// strings are unquoted, numbers and booleans keep their literal text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("todo id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	if len(b) == 0 || b[0] == '{' || b[0] == '[' {
		return fmt.Errorf("todo id: not a scalar: %s", b)
	}
	*id = ID(b)
	return nil
}

func (id ID) String() string { return string(id) }

// Todo is the remote service's todo entry. The client never edits one in
// place; every change goes through the API and comes back with a re-fetch.
type Todo struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date,omitempty"`
	Completed bool   `json:"completed"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

// DisplayDate renders the due date as "2 Jan 2006". Unknown formats are
// returned as sent.
func (t Todo) DisplayDate() string {
	d := strings.TrimSpace(t.Date)
	if d == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, d); err == nil {
			return ts.Format("2 Jan 2006")
		}
	}
	return d
}

// Stats counts completed and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// StatsLine is the "<done> of <total> completed" summary shown above the list.
func StatsLine(todos []Todo) string {
	done, _ := Stats(todos)
	return fmt.Sprintf("%d of %d completed", done, len(todos))
}
