package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  Opt[string] `json:"name"`
	Count Opt[int]    `json:"count"`
}

func TestUnmarshalDistinguishesOmittedNullAndValue(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"hello"}`), &p))

	assert.True(t, p.Name.Set)
	assert.False(t, p.Name.Null)
	assert.Equal(t, "hello", p.Name.Value)

	// count was omitted entirely
	assert.False(t, p.Count.Set)

	var q payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"count":3}`), &q))

	assert.True(t, q.Name.Set)
	assert.True(t, q.Name.Null)
	assert.True(t, q.Count.Set)
	assert.Equal(t, 3, q.Count.Value)
}

func TestGetAndPtr(t *testing.T) {
	v, ok := Of("x").Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = Null[string]().Get()
	assert.False(t, ok)

	var unset Opt[string]
	_, ok = unset.Get()
	assert.False(t, ok)
	assert.Nil(t, unset.Ptr())

	p := Of(42).Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 42, *p)
	assert.Nil(t, Null[int]().Ptr())
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(payload{Name: Of("a"), Count: Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","count":null}`, string(data))
}
