package testutil

import (
	"sort"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
)

var _ = u.EMPTY

// User is the document indexed for the search suite.
type User struct {
	Favorites struct {
		Color string `json:"color"`
	} `json:"favorites"`
	Firstname string `json:"firstname"`
	Height    int    `json:"height"`
	Lastname  string `json:"lastname"`
}

func newUser(color, first string, height int, last string) *User {
	usr := &User{Firstname: first, Height: height, Lastname: last}
	usr.Favorites.Color = color
	return usr
}

// Users keyed by document id
var Users = map[string]*User{
	"abe":   newUser("purple", "abraham", 73, "haskins"),
	"obie":  newUser("blue", "obie", 70, "fernandez"),
	"sanni": newUser("green", "ome", 100, "sanni"),
	"tim":   newUser("blue", "timothy", 73, "jackson"),
}

// SuiteSpec an expression, the root filter it compiles to and the ids of
// the Users it matches.
type SuiteSpec struct {
	Expr   string
	Filter string
	Hits   []string
}

// Suite is the expression test suite run against Users.
var Suite = []SuiteSpec{
	{`height == 73`,
		`{"term":{"height":73}}`,
		[]string{"abe", "tim"}},
	{`height != 73`,
		`{"bool":{"must_not":{"term":{"height":73}}}}`,
		[]string{"obie", "sanni"}},
	{`height > 0`,
		`{"range":{"height":{"gt":0}}}`,
		[]string{"abe", "obie", "sanni", "tim"}},
	{`height < 0`,
		`{"range":{"height":{"lt":0}}}`,
		nil},
	{`height < 73`,
		`{"range":{"height":{"lt":73}}}`,
		[]string{"obie"}},
	{`height > 73`,
		`{"range":{"height":{"gt":73}}}`,
		[]string{"sanni"}},
	{`height >= 73`,
		`{"range":{"height":{"gte":73}}}`,
		[]string{"abe", "tim", "sanni"}},
	{`height <= 73`,
		`{"range":{"height":{"lte":73}}}`,
		[]string{"abe", "tim", "obie"}},
	{`height < 73 and height > 99`,
		`{"bool":{"must":[{"range":{"height":{"lt":73}}},{"range":{"height":{"gt":99}}}]}}`,
		nil},
	{`height < 73 or height > 99`,
		`{"bool":{"should":[{"range":{"height":{"lt":73}}},{"range":{"height":{"gt":99}}}]}}`,
		[]string{"obie", "sanni"}},
	{`firstname ~= "o.+"`,
		`{"bool":{"must":{"regexp":{"firstname":"o.+"}}}}`,
		[]string{"obie", "sanni"}},
	{`firstname ~!= "o.+"`,
		`{"bool":{"must_not":{"regexp":{"firstname":"o.+"}}}}`,
		[]string{"abe", "tim"}},
	{`favorites.color == "green"`,
		`{"term":{"favorites.color":"green"}}`,
		[]string{"sanni"}},
	{`not (favorites.color == "green")`,
		`{"bool":{"must_not":[{"term":{"favorites.color":"green"}}]}}`,
		[]string{"tim", "obie", "abe"}},
	{`(not (height < 72 and height > 74) and (firstname ~= "a.raham" or firstname == "timothy")) or favorites.color == "green"`,
		`{"bool":{"should":[
			{"bool":{"must":[
				{"bool":{"must_not":[{"bool":{"must":[{"range":{"height":{"lt":72}}},{"range":{"height":{"gt":74}}}]}}]}},
				{"bool":{"should":[{"bool":{"must":{"regexp":{"firstname":"a.raham"}}}},{"term":{"firstname":"timothy"}}]}}
			]}},
			{"term":{"favorites.color":"green"}}
		]}}`,
		[]string{"tim", "abe", "sanni"}},
}

// RunCompileSuite compiles every Suite expression comparing the root filter.
func RunCompileSuite(t *testing.T, compile CompileFunc) {
	for _, s := range Suite {
		TestCompile(t, compile, s.Expr, s.Filter)
	}
}

// SearchFunc runs a compiled query returning the matching document ids.
type SearchFunc func(t *testing.T, query []byte) []string

// RunSearchSuite compiles every Suite expression, runs it and compares hits.
func RunSearchSuite(t *testing.T, compile CompileFunc, search SearchFunc) {
	for _, s := range Suite {
		query, err := compile(s.Expr)
		if !assert.NoError(t, err, s.Expr) {
			continue
		}
		hits := search(t, query)
		assert.Equal(t, sortedIds(s.Hits), sortedIds(hits), "hits for %s", s.Expr)
	}
}

func sortedIds(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
