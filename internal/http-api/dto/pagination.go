package dto

import (
	"net/http"
	"strconv"
)

// ListResponse is the envelope every list endpoint returns. Count is the
// total matching row count regardless of the page window; Next and
// Previous are opaque page links, null at either end of the listing.
type ListResponse struct {
	Status   string  `json:"status"`
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewListResponse builds the envelope for the given page window,
// deriving the next/previous links from the request URL.
func NewListResponse(r *http.Request, count int64, page, pageSize int, results any) ListResponse {
	resp := ListResponse{
		Status:  "success",
		Count:   count,
		Results: results,
	}
	if int64(page*pageSize) < count {
		resp.Next = pageLink(r, page+1)
	}
	if page > 1 {
		resp.Previous = pageLink(r, page-1)
	}
	return resp
}

func pageLink(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// PageParams reads page/page_size query parameters with the listing
// defaults, clamping page_size to a sane ceiling.
func PageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 1000 {
		pageSize = 1000
	}
	return page, pageSize
}
