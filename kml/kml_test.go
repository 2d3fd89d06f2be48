package kml_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"locsplit.dev/locsplit/kml"
	"locsplit.dev/locsplit/takeout"
)

func TestAppendPlacemark(t *testing.T) {
	p := takeout.Point{LatitudeE7: 356895000, LongitudeE7: 1396917100, Timestamp: "2013-04-15T10:00:00Z"}

	got := string(kml.AppendPlacemark(nil, p))
	assert.Equal(t, `<Placemark>`+
		`<TimeStamp><when>2013-04-15T10:00:00Z</when></TimeStamp>`+
		`<Point><coordinates>139.69171,35.6895</coordinates></Point>`+
		`<ExtendedData><Data name="activeFlag"><value>true</value></Data></ExtendedData>`+
		`</Placemark>`+"\n", got)
}

func TestAppendPlacemark_Coordinates(t *testing.T) {
	cases := []struct {
		lat, lng int32
		want     string
	}{
		{0, 0, "0,0"},
		{350000000, 1390000000, "139,35"},
		{-338688000, 1512093000, "151.2093,-33.8688"},
		{1, -1, "-0.0000001,0.0000001"},
		{900000000, -1800000000, "-180,90"},
	}
	for _, tc := range cases {
		p := takeout.Point{LatitudeE7: tc.lat, LongitudeE7: tc.lng, Timestamp: "2013-04"}
		got := string(kml.AppendPlacemark(nil, p))
		assert.Contains(t, got, "<coordinates>"+tc.want+"</coordinates>")
	}
}

func TestAppendPlacemark_IdenticalPointsAreIdentical(t *testing.T) {
	p := takeout.Point{LatitudeE7: 1, LongitudeE7: 2, Timestamp: "2013-04-15"}
	buf := kml.AppendPlacemark(nil, p)
	buf = kml.AppendPlacemark(buf, p)

	lines := strings.SplitAfter(string(buf), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, lines[0], lines[1])
	assert.Empty(t, lines[2])
}

func TestDocumentIsWellFormed(t *testing.T) {
	doc := []byte(kml.Preamble)
	doc = kml.AppendPlacemark(doc, takeout.Point{LatitudeE7: 1, LongitudeE7: 2, Timestamp: "2013-04-15"})
	doc = append(doc, kml.Epilogue...)

	var parsed struct {
		XMLName  xml.Name `xml:"http://earth.google.com/kml/2.2 kml"`
		Document struct {
			Name       string `xml:"name"`
			Placemarks []struct {
				When        string `xml:"TimeStamp>when"`
				Coordinates string `xml:"Point>coordinates"`
				Active      string `xml:"ExtendedData>Data>value"`
			} `xml:"Placemark"`
		} `xml:"Document"`
	}
	require.NoError(t, xml.Unmarshal(doc, &parsed))
	assert.Equal(t, "1log location logs", parsed.Document.Name)
	require.Len(t, parsed.Document.Placemarks, 1)
	assert.Equal(t, "2013-04-15", parsed.Document.Placemarks[0].When)
	assert.Equal(t, "0.0000002,0.0000001", parsed.Document.Placemarks[0].Coordinates)
	assert.Equal(t, "true", parsed.Document.Placemarks[0].Active)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "2013-04.kml", kml.FileName("2013-04"))
}
