//go:build docker

package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	elastic "gopkg.in/olivere/elastic.v3"
)

const (
	// ElasticImage the last Elasticsearch line that accepts the filtered query
	ElasticImage = "elasticsearch:2.4"
	elasticPort  = "9200/tcp"

	// ElasticIndex, ElasticType where the suite Users are indexed
	ElasticIndex = "filtres"
	ElasticType  = "user"
)

// Elastic is a throwaway Elasticsearch container.
type Elastic struct {
	URL    string
	client *elastic.Client
}

// StartElastic runs an Elasticsearch container for the life of the test.
func StartElastic(t *testing.T) *Elastic {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.Run(ctx, ElasticImage,
		testcontainers.WithExposedPorts(elasticPort),
		testcontainers.WithEnv(map[string]string{
			"ES_JAVA_OPTS": "-Xms256m -Xmx256m",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").WithPort(elasticPort).WithStartupTimeout(3*time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)

	endpoint, err := c.PortEndpoint(ctx, elasticPort, "http")
	require.NoError(t, err)
	u.Debugf("elasticsearch running at %s", endpoint)

	client, err := elastic.NewClient(
		elastic.SetURL(endpoint),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	require.NoError(t, err)
	return &Elastic{URL: endpoint, client: client}
}

// IndexUsers indexes the suite Users, refreshing so they are searchable.
func (e *Elastic) IndexUsers(t *testing.T) {
	t.Helper()
	for id, user := range Users {
		_, err := e.client.Index().
			Index(ElasticIndex).
			Type(ElasticType).
			Id(id).
			BodyJson(user).
			Refresh(true).
			Do()
		require.NoError(t, err, id)
	}
}

// Search runs the raw query document returning the ids of the hits.
func (e *Elastic) Search(t *testing.T, query []byte) []string {
	t.Helper()
	res, err := e.client.Search().
		Index(ElasticIndex).
		Type(ElasticType).
		Source(json.RawMessage(query)).
		Do()
	require.NoError(t, err, "%s", query)
	if res.Hits == nil {
		return nil
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		ids = append(ids, h.Id)
	}
	return ids
}
