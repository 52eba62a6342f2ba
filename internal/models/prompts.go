package models

import (
	"encoding/json"
	"fmt"
)

// PromptItem is a tracked prompt together with the first LLM response to it
type PromptItem struct {
	Prompt   string `json:"prompt"`
	LLM      string `json:"llm,omitempty"`
	Response string `json:"response"`
}

// PromptsPagination is the pagination metadata returned by the backend
type PromptsPagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// PromptsResponse is one page of prompts as returned by the backend
type PromptsResponse struct {
	Prompts    []PromptItem      `json:"prompts"`
	Pagination PromptsPagination `json:"pagination"`
}

// PromptsPage is a prompts page plus the page numbers to show in a pagination control
type PromptsPage struct {
	Prompts    []PromptItem      `json:"prompts"`
	Pagination PromptsPagination `json:"pagination"`
	Pages      []PageItem        `json:"pages"`
}

// EllipsisMarker is how an ellipsis page item is encoded
const EllipsisMarker = "..."

// PageItem is either a page number or an ellipsis
type PageItem struct {
	Page     int
	Ellipsis bool
}

// Page returns a numeric page item
func Page(n int) PageItem {
	return PageItem{Page: n}
}

// Ellipsis returns an ellipsis page item
func Ellipsis() PageItem {
	return PageItem{Ellipsis: true}
}

// String implements fmt.Stringer
func (p PageItem) String() string {
	if p.Ellipsis {
		return EllipsisMarker
	}
	return fmt.Sprintf("%d", p.Page)
}

// MarshalJSON encodes a page as a number and an ellipsis as "..."
func (p PageItem) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(EllipsisMarker)
	}
	return json.Marshal(p.Page)
}

// UnmarshalJSON accepts either a number or the ellipsis marker
func (p *PageItem) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Page(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode page item: %w", err)
	}
	if s != EllipsisMarker {
		return fmt.Errorf("invalid page item: %q", s)
	}
	*p = Ellipsis()
	return nil
}
