package esgen

import (
	u "github.com/araddon/gou"
)

/*
	Native go data types that map to the Elasticsearch 2.x
	filter DSL
*/
var _ = u.EMPTY

// BoolFilter  {"bool": {...}}
type BoolFilter struct {
	Occurs BoolOccurrence `json:"bool"`
}

// BoolOccurrence each occurrence holds either a list of filters or a single
// filter object.
type BoolOccurrence struct {
	Must    interface{} `json:"must,omitempty"`
	Should  interface{} `json:"should,omitempty"`
	MustNot interface{} `json:"must_not,omitempty"`
}

func AndFilter(v []interface{}) *BoolFilter { return &BoolFilter{Occurs: BoolOccurrence{Must: v}} }
func OrFilter(v []interface{}) *BoolFilter  { return &BoolFilter{Occurs: BoolOccurrence{Should: v}} }

// NotFilter  {"bool": {"must_not": [filter]}}
func NotFilter(v interface{}) *BoolFilter {
	return &BoolFilter{Occurs: BoolOccurrence{MustNot: []interface{}{v}}}
}

// MustFilter wraps a single filter object  {"bool": {"must": filter}}
func MustFilter(v interface{}) *BoolFilter { return &BoolFilter{Occurs: BoolOccurrence{Must: v}} }

// MustNotFilter wraps a single filter object  {"bool": {"must_not": filter}}
func MustNotFilter(v interface{}) *BoolFilter {
	return &BoolFilter{Occurs: BoolOccurrence{MustNot: v}}
}

// Filter structs

type term struct {
	Term map[string]interface{} `json:"term"`
}

// Term creates a new Elasticsearch term filter {"term": {field: value}}
func Term(fieldName string, value interface{}) *term {
	return &term{map[string]interface{}{fieldName: value}}
}

// RangeQry is the bound of a range filter  {"gte": 7}
type RangeQry map[string]interface{}

type RangeFilter struct {
	Range map[string]RangeQry `json:"range"`
}

// Range creates a new Elasticsearch range filter {"range": {field: {op: value}}}
func Range(fieldName, op string, value interface{}) *RangeFilter {
	return &RangeFilter{Range: map[string]RangeQry{fieldName: {op: value}}}
}

type regexp struct {
	Regexp map[string]string `json:"regexp"`
}

// Regexp creates a new Elasticsearch regexp filter {"regexp": {field: pattern}}
//
// The pattern is passed through as written, Elasticsearch interprets it.
func Regexp(fieldName, pattern string) *regexp {
	return &regexp{map[string]string{fieldName: pattern}}
}
