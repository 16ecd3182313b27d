package gentypes

import (
	u "github.com/araddon/gou"
)

var _ = u.EMPTY

type (
	// Query is the top Level Request to Elasticsearch
	//
	//    {"query": {"filtered": {"filter": [ <filter> ]}}}
	Query struct {
		Query FilteredQuery `json:"query"`
	}
	// FilteredQuery wraps the filtered query clause
	FilteredQuery struct {
		Filtered Filtered `json:"filtered"`
	}
	// Filtered holds exactly one root filter
	Filtered struct {
		Filter []interface{} `json:"filter" jsonschema:"minItems=1,maxItems=1"`
	}
)

// NewQuery wraps a root filter in the filtered query envelope.
func NewQuery(filter interface{}) *Query {
	return &Query{Query: FilteredQuery{Filtered: Filtered{Filter: []interface{}{filter}}}}
}

// Filter the single root filter of this query
func (q *Query) Filter() interface{} {
	if len(q.Query.Filtered.Filter) == 0 {
		return nil
	}
	return q.Query.Filtered.Filter[0]
}
