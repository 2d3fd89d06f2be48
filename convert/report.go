package convert

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"locsplit.dev/locsplit/grouping"
)

// WriteReport prints one line per document in closing order followed by the
// totals and any sampled points.
func WriteReport(w io.Writer, result *grouping.Result) error {
	p := message.NewPrinter(language.English)
	if len(result.Segments) == 0 {
		if _, err := p.Fprintf(w, "no locations found\n"); err != nil {
			return err
		}
	}
	for _, s := range result.Segments {
		if _, err := p.Fprintf(w, "%s\t%d\n", s.URI, s.Count); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "total\t%d\n", result.Total()); err != nil {
		return err
	}
	if result.Filtered > 0 {
		if _, err := p.Fprintf(w, "filtered\t%d\n", result.Filtered); err != nil {
			return err
		}
	}
	for _, pt := range result.Sample {
		if _, err := p.Fprintf(w, "sample\t%s\n", pt.String()); err != nil {
			return err
		}
	}
	return nil
}
