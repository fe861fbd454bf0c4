// Package query builds canonical list requests from controller state.
// All functions are pure: state in, request descriptor out.
package query

import (
	"net/url"
	"strconv"
)

// Params are the state dimensions that select which records a page
// contains. Local refinements (status filter, sort key) never appear
// here; the server is authoritative only for page membership.
type Params struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID string
}

// Request is a ready-to-issue list request descriptor.
type Request struct {
	Endpoint string
	Values   url.Values
}

// Build produces the request for the given endpoint and params.
// Empty optional filters are omitted entirely rather than sent as
// blank parameters, keeping the request canonical and cache-friendly.
func Build(endpoint string, p Params) Request {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	if p.CategoryID != "" {
		v.Set("category_id", p.CategoryID)
	}
	return Request{Endpoint: endpoint, Values: v}
}

// URL joins the endpoint with the encoded query string.
func (r Request) URL() string {
	if len(r.Values) == 0 {
		return r.Endpoint
	}
	return r.Endpoint + "?" + r.Values.Encode()
}
