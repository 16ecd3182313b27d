// Test only package for harness to load, implements compile and
// Elasticsearch integration tests
package testutil

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"sync"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	verbose   *bool
	setupOnce = sync.Once{}
)

// Setup enables -vv verbose logging or sends logs to /dev/null
// env var VERBOSELOGS=true was added to support verbose logging with alltests
func Setup() {
	setupOnce.Do(func() {

		if flag.CommandLine.Lookup("vv") == nil {
			verbose = flag.Bool("vv", false, "Verbose Logging?")
		}

		flag.Parse()
		logger := u.GetLogger()
		if logger != nil {
			// don't re-setup
		} else {
			if (verbose != nil && *verbose) || os.Getenv("VERBOSELOGS") != "" {
				u.SetupLogging("debug")
				u.SetColorOutput()
			} else {
				// make sure logging is always non-nil
				dn, _ := os.Open(os.DevNull)
				u.SetLogger(log.New(dn, "", 0), "error")
			}
		}
	})
}

// CompileFunc compiles an expression into its json query document.
type CompileFunc func(expression string) ([]byte, error)

// CompileSpec one expression and the root filter it must compile to.
type CompileSpec struct {
	Expr   string
	Filter string // expected json of the single root filter
	HasErr bool
}

// ExecSpec compile the spec's expression and compare the root filter.
func ExecSpec(t *testing.T, compile CompileFunc, q *CompileSpec) {
	t.Helper()
	by, err := compile(q.Expr)
	if q.HasErr {
		assert.Error(t, err, "expected error but got %s for %s", by, q.Expr)
		return
	}
	require.NoError(t, err, "expected no error for %s", q.Expr)

	var doc struct {
		Query struct {
			Filtered struct {
				Filter []json.RawMessage `json:"filter"`
			} `json:"filtered"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(by, &doc), "%s", by)
	require.Equal(t, 1, len(doc.Query.Filtered.Filter), "%s", by)
	assert.JSONEq(t, q.Filter, string(doc.Query.Filtered.Filter[0]), "for %s", q.Expr)
}

// TestCompile compile and compare against expected root filter json.
func TestCompile(t *testing.T, compile CompileFunc, expr, filter string) {
	t.Helper()
	ExecSpec(t, compile, &CompileSpec{Expr: expr, Filter: filter})
}

// TestCompileErr compile and expect an error.
func TestCompileErr(t *testing.T, compile CompileFunc, expr string) {
	t.Helper()
	ExecSpec(t, compile, &CompileSpec{Expr: expr, HasErr: true})
}
