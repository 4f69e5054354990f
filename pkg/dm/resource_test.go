package dm

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceID(t *testing.T) {
	rid, err := ParseResourceID("8")
	require.NoError(t, err)
	assert.Equal(t, CollectionPeriod, rid)

	_, err = ParseResourceID("9")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ParseResourceID("start")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ParseResourceID("-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDescribe(t *testing.T) {
	r, ok := Describe(CollectionPeriod)
	require.True(t, ok)
	assert.Equal(t, "collection-period", r.Name)
	assert.Equal(t, "RW", r.Access.String())

	r, ok = Describe(StopCollection)
	require.True(t, ok)
	assert.Equal(t, "E", r.Access.String())

	_, ok = Describe(9)
	assert.False(t, ok)
	assert.Equal(t, "resource(9)", ResourceID(9).String())
}

func TestSupportedResources(t *testing.T) {
	list := SupportedResources()
	require.Len(t, list, 9)
	for i, r := range list {
		assert.Equal(t, ResourceID(i), r.ID)
	}

	// The returned slice is a copy.
	list[0].Name = "changed"
	r, _ := Describe(SMSTxCounter)
	assert.Equal(t, "sms-tx-counter", r.Name)

	b, err := json.Marshal(list[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"name":"tx-kilobytes","access":"R","type":"int64"}`, string(b))
}

func TestErrorStatus(t *testing.T) {
	err := fail(StatusBadRequest, "execute", StopCollection, errors.New("not collecting"))
	assert.Equal(t, "execute stop: bad_request: not collecting", err.Error())
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.False(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("host: %w", err)
	assert.Equal(t, StatusBadRequest, StatusOf(wrapped))
	assert.Equal(t, StatusOK, StatusOf(nil))
	assert.Equal(t, StatusInternal, StatusOf(errors.New("boom")))

	assert.Equal(t, "status(2.05)", Status(2<<5|5).String())
}

func TestAccessText(t *testing.T) {
	var a Access
	require.NoError(t, a.UnmarshalText([]byte("RW")))
	assert.Equal(t, AccessRead|AccessWrite, a)
	assert.Error(t, a.UnmarshalText([]byte("X")))

	var r Resource
	require.NoError(t, json.Unmarshal([]byte(`{"id":6,"name":"start","access":"E"}`), &r))
	assert.Equal(t, StartCollection, r.ID)
	assert.Equal(t, AccessExecute, r.Access)
}
