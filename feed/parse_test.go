package feed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youbike-osm/youbike-osm/station"
)

func TestParseLegacy_SortsByRawToken(t *testing.T) {
	records := ParseLegacy([]byte("002_StationA_10|001_StationB_20"))

	require.Len(t, records, 2)
	assert.Equal(t, "001", records[0].String("sno"))
	assert.Equal(t, "StationB", records[0].String("sna"))
	assert.Equal(t, "20", records[0].String("tot"))
	assert.Equal(t, "002", records[1].String("sno"))
	assert.Equal(t, "StationA", records[1].String("sna"))
	assert.Equal(t, "10", records[1].String("tot"))

	// columns the feed did not provide are null
	assert.Nil(t, records[0].Value("sbi"))
	assert.Nil(t, records[0].Value("aren"))
	assert.Equal(t, station.Legacy, records[0].Version())
}

func TestParseLegacy_FullRecord(t *testing.T) {
	body := "0001_捷運市政府站(3號出口)_180_21_信義區_25.0408578889_121.567904444_忠孝東路/松仁路(東南側)_Xinyi Dist._MRT Taipei City Hall Stataion(Exit 3)-2_The S.W. side of Road Zhongxiao East Road & Road Chung Yan.\n"

	records := ParseLegacy([]byte(body))

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "捷運市政府站(3號出口)", r.String("sna"))
	assert.Equal(t, "25.0408578889", r.String("lat"))
	assert.Equal(t, "121.567904444", r.String("lng"))
	assert.Equal(t, "Xinyi Dist.", r.String("sareaen"))
	assert.Equal(t, "MRT Taipei City Hall Stataion(Exit 3)-2", r.String("snaen"))
	assert.Equal(t, "The S.W. side of Road Zhongxiao East Road & Road Chung Yan.", r.String("aren"))
}

func TestParseLegacy_EmptyFields(t *testing.T) {
	records := ParseLegacy([]byte("0003__30_5__"))

	require.Len(t, records, 1)
	r := records[0]
	// an inner empty field stays an empty string
	v, ok := r.Get("sna")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	// trailing empty fields are dropped
	assert.Nil(t, r.Value("sarea"))
}

func TestParseLegacy_Empty(t *testing.T) {
	assert.Empty(t, ParseLegacy(nil))
	assert.Empty(t, ParseLegacy([]byte("  \n")))
	assert.Len(t, ParseLegacy([]byte("0001_a||0002_b|")), 2)
}

func TestParseCurrent_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "result array",
			body: `{"retCode":1,"result":[{"sno":"500101002","sna":"YouBike2.0_捷運公館站(2號出口)","tot":28},{"sno":"500101001","sna":"YouBike2.0_捷運科技大樓站"}]}`,
		},
		{
			name: "result page",
			body: `{"result":{"limit":2,"results":[{"sno":"500101002","sna":"YouBike2.0_捷運公館站(2號出口)","tot":28},{"sno":"500101001","sna":"YouBike2.0_捷運科技大樓站"}]}}`,
		},
		{
			name: "bare array",
			body: `[{"sno":"500101002","sna":"YouBike2.0_捷運公館站(2號出口)","tot":28},{"sno":"500101001","sna":"YouBike2.0_捷運科技大樓站"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseCurrent([]byte(tt.body))
			require.NoError(t, err)
			require.Len(t, records, 2)

			// feed order, no sorting
			assert.Equal(t, "500101002", records[0].String("sno"))
			assert.Equal(t, "500101001", records[1].String("sno"))
			assert.Equal(t, "28", records[0].String("tot"))
			assert.Nil(t, records[1].Value("tot"))
			assert.Equal(t, station.Current, records[0].Version())
		})
	}
}

func TestParseCurrent_Errors(t *testing.T) {
	for _, body := range []string{
		``,
		`not json`,
		`{"retCode":1}`,
		`{"result":null}`,
		`{"result":{"results":{}}}`,
		`{"result":[{"sno":{"nested":true}}]}`,
	} {
		t.Run(body, func(t *testing.T) {
			_, err := ParseCurrent([]byte(body))
			require.Error(t, err)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParse_DispatchesOnVersion(t *testing.T) {
	records, err := Parse(station.Legacy, []byte("0001_a"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, station.Legacy, records[0].Version())

	records, err = Parse(station.Current, []byte(`{"result":[]}`))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = Parse(station.Version(9), nil)
	assert.ErrorIs(t, err, station.ErrUnknownVersion)
}
