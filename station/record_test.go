package station

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "legacy", want: Legacy},
		{in: "CURRENT", want: Current},
		{in: " current ", want: Current},
		{in: "v2", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumns(t *testing.T) {
	assert.Len(t, Columns(Legacy), 11)
	assert.Len(t, Columns(Current), 20)
	assert.Equal(t, "sno", Columns(Legacy)[0])
	assert.Equal(t, "_id", Columns(Current)[0])

	// callers get a copy
	cols := Columns(Legacy)
	cols[0] = "changed"
	assert.Equal(t, "sno", Columns(Legacy)[0])

	for _, c := range []string{ColCode, ColNameZH, ColNameEN, ColCapacity, ColLatitude, ColLongitude} {
		assert.True(t, Legacy.Has(c), c)
		assert.True(t, Current.Has(c), c)
	}
	assert.False(t, Legacy.Has("bemp"))
}

func TestRecord_NullAndEmptyAreDistinct(t *testing.T) {
	r := NewRecord(Legacy)
	require.NoError(t, r.Set(ColCode, Str("")))

	v, ok := r.Get(ColCode)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = r.Get(ColLatitude)
	assert.False(t, ok)
	assert.Nil(t, r.Value(ColLatitude))
}

func TestRecord_SetUnknownColumn(t *testing.T) {
	r := NewRecord(Legacy)
	err := r.Set("bemp", Str("3"))
	assert.Error(t, err)
}

func TestRecord_ValueIsCopied(t *testing.T) {
	r := NewRecord(Legacy)
	s := "0001"
	require.NoError(t, r.Set(ColCode, &s))
	s = "mutated"
	assert.Equal(t, "0001", r.String(ColCode))

	p := r.Value(ColCode)
	*p = "mutated"
	assert.Equal(t, "0001", r.String(ColCode))
}

func TestRecord_MarshalJSONKeepsColumnOrder(t *testing.T) {
	r := FromFields(Legacy, []string{"0001", "捷運市政府站(3號出口)", "180"})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"sno":"0001","sna":"捷運市政府站(3號出口)","tot":"180","sbi":null,"sarea":null,"lat":null,"lng":null,"ar":null,"sareaen":null,"snaen":null,"aren":null}`,
		string(b))
}

func TestFromFields(t *testing.T) {
	r := FromFields(Legacy, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, r.Strings())

	short := FromFields(Legacy, []string{"1"})
	assert.Equal(t, "1", short.String(ColCode))
	assert.Nil(t, short.Value(ColNameZH))
}

func TestFromMap(t *testing.T) {
	r := FromMap(Current, map[string]*string{
		"sno":     Str("500101001"),
		"unknown": Str("dropped"),
		"lat":     nil,
	})

	assert.Equal(t, Current, r.Version())
	assert.Equal(t, "500101001", r.String("sno"))
	assert.Nil(t, r.Value("lat"))

	m := r.Map()
	assert.Len(t, m, 20)
	assert.NotContains(t, m, "unknown")
}
