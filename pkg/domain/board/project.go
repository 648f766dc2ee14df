package board

import "fmt"

// Project identifies the board a report run was generated from.
type Project struct {
	Owner  string `json:"owner"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
}

// Slug returns the owner/number form used in filenames and log lines.
func (p Project) Slug() string {
	return fmt.Sprintf("%s/%d", p.Owner, p.Number)
}
