package analytics

import "github.com/AI2HU/gego-site/internal/models"

const (
	// DefaultPageSize is the number of prompts per page
	DefaultPageSize = 10
	// MaxPageSize caps the per_page query parameter
	MaxPageSize = 100

	// windowCollapseThreshold is the largest page count shown without ellipses
	windowCollapseThreshold = 5
)

// ComputePageWindow returns the page numbers for a pagination control. Up to five
// pages are listed in full. Beyond that the first and last pages are always shown,
// with the current page and its neighbours in between and ellipses for the gaps.
func ComputePageWindow(currentPage, totalPages int) []models.PageItem {
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	if totalPages <= windowCollapseThreshold {
		pages := make([]models.PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			pages = append(pages, models.Page(p))
		}
		return pages
	}

	pages := []models.PageItem{models.Page(1)}
	if currentPage > 3 {
		pages = append(pages, models.Ellipsis())
	}

	start := max(2, currentPage-1)
	end := min(totalPages-1, currentPage+1)
	for p := start; p <= end; p++ {
		pages = append(pages, models.Page(p))
	}

	if currentPage < totalPages-2 {
		pages = append(pages, models.Ellipsis())
	}
	return append(pages, models.Page(totalPages))
}

// NormalizePageRequest clamps page and perPage to valid values
func NormalizePageRequest(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return page, perPage
}

// BuildPromptsPage attaches the pagination window to a backend prompts page
func BuildPromptsPage(resp *models.PromptsResponse) *models.PromptsPage {
	if resp == nil {
		resp = &models.PromptsResponse{}
	}

	prompts := resp.Prompts
	if prompts == nil {
		prompts = []models.PromptItem{}
	}

	return &models.PromptsPage{
		Prompts:    prompts,
		Pagination: resp.Pagination,
		Pages:      ComputePageWindow(resp.Pagination.Page, resp.Pagination.TotalPages),
	}
}
