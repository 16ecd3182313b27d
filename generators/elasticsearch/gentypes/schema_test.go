package gentypes

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEnvelope(t *testing.T) {
	q := NewQuery(map[string]interface{}{"term": map[string]interface{}{"height": 73}})
	by, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"filtered":{"filter":[{"term":{"height":73}}]}}}`, string(by))
	assert.NotNil(t, q.Filter())

	empty := &Query{}
	assert.Nil(t, empty.Filter())
}

func TestQuerySchema(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(v.Schema(), &schema))
	assert.Equal(t, schemaID, schema["$id"])
	assert.Equal(t, "object", schema["type"])

	good := []string{
		`{"query":{"filtered":{"filter":[{"term":{"height":73}}]}}}`,
		`{"query":{"filtered":{"filter":[{"bool":{"must_not":[{"term":{"x":1}}]}}]}}}`,
	}
	for _, doc := range good {
		assert.NoError(t, v.Validate([]byte(doc)), doc)
	}

	bad := []string{
		`{"query":{"filtered":{"filter":[]}}}`,
		`{"query":{"filtered":{"filter":[{"term":{"a":1}},{"term":{"b":2}}]}}}`,
		`{"query":{"filtered":{"filter":[null]}}}`,
		`{"query":{"filtered":{"filter":[73]}}}`,
		`{"query":{"filtered":{}}}`,
		`{"query":{"filtered":{"filter":[{"term":{"a":1}}]}},"size":0}`,
		`{}`,
	}
	for _, doc := range bad {
		err := v.Validate([]byte(doc))
		require.Error(t, err, doc)
		var me *MalformedOutputError
		assert.True(t, errors.As(err, &me), doc)
		assert.Equal(t, doc, me.Doc)
	}

	// not json at all
	err = v.Validate([]byte(`{"query":`))
	var me *MalformedOutputError
	assert.True(t, errors.As(err, &me))
}

func TestMalformedOutputError(t *testing.T) {
	cause := errors.New("left side of == must be a field")
	err := Malformed(`"a" == 1`, cause)
	assert.Equal(t, `malformed output for "\"a\" == 1": left side of == must be a field`, err.Error())
	assert.True(t, errors.Is(err, cause))

	err = Malformedf("x", "bad %s", "value")
	assert.Equal(t, "bad value", err.Err.Error())
}
