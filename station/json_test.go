package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONArray(t *testing.T) {
	data := []byte(`[
		{"sno":"0001","sna":"捷運市政府站","tot":180,"lat":25.0408578889,"act":true,"sbi":null,"extra":"x"},
		{"sno":"0002","sna":"捷運國父紀念館站"}
	]`)

	records, err := DecodeJSONArray(Legacy, data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "0001", records[0].String("sno"))
	assert.Equal(t, "180", records[0].String("tot"))
	assert.Equal(t, "25.0408578889", records[0].String("lat"))
	assert.Nil(t, records[0].Value("sbi"))
	assert.Equal(t, "0002", records[1].String("sno"))
	assert.Nil(t, records[1].Value("tot"))
}

func TestDecodeJSONArray_BooleansInCurrentSchema(t *testing.T) {
	records, err := DecodeJSONArray(Current, []byte(`[{"act":false}]`))
	require.NoError(t, err)
	assert.Equal(t, "false", records[0].String("act"))
}

func TestDecodeJSONArray_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not an array", data: `{"sno":"1"}`},
		{name: "nested object", data: `[{"sno":{"a":1}}]`},
		{name: "nested array", data: `[{"sna":[1,2]}]`},
		{name: "truncated", data: `[{"sno":"1"`},
		{name: "null document", data: `null`},
		{name: "empty document", data: ``},
		{name: "null element", data: `[null]`},
		{name: "scalar element", data: `[{"sno":"1"},"2"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeJSONArray(Legacy, []byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, records)
		})
	}
}

func TestDecodeJSONArray_Empty(t *testing.T) {
	records, err := DecodeJSONArray(Legacy, []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
