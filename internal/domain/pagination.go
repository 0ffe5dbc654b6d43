package domain

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Pagination is the metadata block of list responses. Each endpoint names
// its total differently (totalJobs, totalCompanies, ...); all of them land
// in Total.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Total       int  `json:"total"`
	PerPage     int  `json:"perPage"`
	HasNext     bool `json:"hasNextPage,omitempty"`
	HasPrev     bool `json:"hasPrevPage,omitempty"`
}

func (p *Pagination) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Pagination
	for key, value := range raw {
		switch {
		case key == "currentPage" || key == "page":
			out.CurrentPage = intValue(value)
		case key == "totalPages":
			out.TotalPages = intValue(value)
		case key == "hasNextPage":
			out.HasNext = boolValue(value)
		case key == "hasPrevPage":
			out.HasPrev = boolValue(value)
		case strings.HasPrefix(key, "total"):
			out.Total = intValue(value)
		case key == "limit" || strings.HasSuffix(key, "PerPage"):
			out.PerPage = intValue(value)
		}
	}
	*p = out
	return nil
}

func intValue(raw json.RawMessage) int {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		n = json.Number(s)
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return int(i)
}

func boolValue(raw json.RawMessage) bool {
	var b bool
	_ = json.Unmarshal(raw, &b)
	return b
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ListParams are the paging parameters accepted by every list endpoint.
type ListParams struct {
	Page  int
	Limit int
}

// DefaultPageSize is used when a list call does not set Limit.
const DefaultPageSize = 10

// OrDefault fills in page 1 and DefaultPageSize for unset fields.
func (p ListParams) OrDefault() ListParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	return p
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	p.apply(v)
	return v
}

func (p ListParams) apply(v url.Values) {
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
