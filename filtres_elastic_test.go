//go:build docker

package filtres_test

import (
	"testing"

	"github.com/araddon/filtres/testutil"
)

func TestElasticSearchSuite(t *testing.T) {
	es := testutil.StartElastic(t)
	es.IndexUsers(t)
	testutil.RunSearchSuite(t, compileJSON, es.Search)
}
