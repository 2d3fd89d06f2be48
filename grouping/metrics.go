package grouping

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	recordsWritten  = metrics.NewCounter("locsplit_records_written_total")
	recordsFiltered = metrics.NewCounter("locsplit_records_filtered_total")
	segmentsOpened  = metrics.NewCounter("locsplit_segments_opened_total")
	segmentsClosed  = metrics.NewCounter("locsplit_segments_closed_total")
)

func ResetMetrics() {
	recordsWritten.Set(0)
	recordsFiltered.Set(0)
	segmentsOpened.Set(0)
	segmentsClosed.Set(0)
}

// WriteMetrics writes the conversion counters in Prometheus text format.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
