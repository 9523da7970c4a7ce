package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	StreetName string `json:"streetName" alias:"street_name"`
	City       string `json:"city"`
}

type employee struct {
	FullName string   `json:"fullName" alias:"full_name"`
	Age      float64  `json:"age"`
	Nickname *string  `json:"nickname"`
	Tags     []string `json:"tags"`
	Address  address  `json:"homeAddress" alias:"home_address"`
}

func TestUnmarshalRecasedKeys(t *testing.T) {
	data := []byte(`{
		"fullName": "Ada",
		"age": 36,
		"tags": ["math"],
		"homeAddress": {"streetName": "Main St", "city": "London"}
	}`)

	var e employee
	require.NoError(t, Unmarshal(data, &e))

	assert.Equal(t, "Ada", e.FullName)
	assert.Equal(t, float64(36), e.Age)
	assert.Equal(t, []string{"math"}, e.Tags)
	assert.Equal(t, "Main St", e.Address.StreetName)
	assert.Equal(t, "London", e.Address.City)
}

func TestUnmarshalAliasKeys(t *testing.T) {
	data := []byte(`{
		"full_name": "Ada",
		"age": 36,
		"home_address": {"street_name": "Main St", "city": "London"}
	}`)

	var e employee
	require.NoError(t, Unmarshal(data, &e))

	assert.Equal(t, "Ada", e.FullName)
	assert.Equal(t, "Main St", e.Address.StreetName)
}

func TestUnmarshalJSONKeyWinsOverAlias(t *testing.T) {
	data := []byte(`{"fullName": "Ada", "full_name": "Grace", "age": 1}`)

	var e employee
	require.NoError(t, Unmarshal(data, &e))

	assert.Equal(t, "Ada", e.FullName)
}

func TestUnmarshalPointerField(t *testing.T) {
	t.Run("null leaves nil", func(t *testing.T) {
		var e employee
		require.NoError(t, Unmarshal([]byte(`{"nickname": null, "age": 0}`), &e))
		assert.Nil(t, e.Nickname)
	})

	t.Run("value allocates", func(t *testing.T) {
		var e employee
		require.NoError(t, Unmarshal([]byte(`{"nickname": "queen", "age": 0}`), &e))
		require.NotNil(t, e.Nickname)
		assert.Equal(t, "queen", *e.Nickname)
	})
}

func TestUnmarshalSliceOfStructs(t *testing.T) {
	type roster struct {
		Employees []employee `json:"employees" alias:"staff"`
	}

	data := []byte(`{"staff": [
		{"full_name": "Ada", "age": 36},
		{"fullName": "Grace", "age": 45}
	]}`)

	var r roster
	require.NoError(t, Unmarshal(data, &r))

	require.Len(t, r.Employees, 2)
	assert.Equal(t, "Ada", r.Employees[0].FullName)
	assert.Equal(t, "Grace", r.Employees[1].FullName)
}

func TestUnmarshalMissingKeysLeaveZero(t *testing.T) {
	var e employee
	require.NoError(t, Unmarshal([]byte(`{}`), &e))

	assert.Empty(t, e.FullName)
	assert.Zero(t, e.Age)
	assert.Nil(t, e.Tags)
}

func TestUnmarshalNullStruct(t *testing.T) {
	e := employee{FullName: "stale"}
	require.NoError(t, Unmarshal([]byte(`null`), &e))
	assert.Empty(t, e.FullName)
}

func TestUnmarshalErrors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		err := Unmarshal([]byte(`{}`), nil)
		require.Error(t, err)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		var e employee
		err := Unmarshal([]byte(`{}`), e)
		require.Error(t, err)
	})

	t.Run("type mismatch names the field", func(t *testing.T) {
		var e employee
		err := Unmarshal([]byte(`{"age": "old"}`), &e)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Age")
	})
}
