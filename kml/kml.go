// Package kml encodes points as KML placemarks.
package kml

import (
	"strconv"

	"locsplit.dev/locsplit/takeout"
)

// Extension is the file extension of every KML document.
const Extension = ".kml"

// Preamble opens a document. It is followed by zero or more placemarks and
// then Epilogue.
const Preamble = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<kml xmlns="http://earth.google.com/kml/2.2">` +
	`<Document>` +
	`<name>1log location logs</name>` + "\n"

// Epilogue closes the elements opened by Preamble.
const Epilogue = `</Document></kml>` + "\n"

// AppendPlacemark appends one placemark line for p to buf. The timestamp is
// written verbatim and the coordinates as longitude,latitude in decimal
// degrees.
func AppendPlacemark(buf []byte, p takeout.Point) []byte {
	buf = append(buf, `<Placemark>`...)
	buf = append(buf, `<TimeStamp><when>`...)
	buf = append(buf, p.Timestamp...)
	buf = append(buf, `</when></TimeStamp>`...)
	buf = append(buf, `<Point><coordinates>`...)
	buf = strconv.AppendFloat(buf, p.Longitude(), 'f', -1, 64)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, p.Latitude(), 'f', -1, 64)
	buf = append(buf, `</coordinates></Point>`...)
	buf = append(buf, `<ExtendedData><Data name="activeFlag"><value>true</value></Data></ExtendedData>`...)
	buf = append(buf, `</Placemark>`...)
	return append(buf, '\n')
}

// FileName is the document name for a group key, for example 2013-04.kml.
func FileName(key string) string {
	return key + Extension
}
