// Package csvparse implements the CSV parsing engine described in the
// ingestion spec: automatic delimiter detection, quote-aware line
// splitting, header normalization, per-column type inference, and
// timestamp resolution (explicit column, combined date+time pair, or
// row index), assembled by a streaming row loop with progress reporting
// and cancellation.
//
// # Usage
//
//	result, err := csvparse.ParseCSVString(text, csvparse.DefaultConfig(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, col := range result.Columns {
//	    fmt.Println(col.Name, col.NumericLen(), col.StringLen())
//	}
//
// As a component, csvparse.Loader wraps a single bounded parse of a file
// on disk: Start runs the parse in the background, and the result is
// drained into a sink.PlotDataSink when that parse completes. It registers
// itself under the factory name "csv-loader".
//
// # Warnings, not errors
//
// Shape problems in the input (a ragged row, an unparseable timestamp,
// duplicate header names, non-monotonic time) are recorded as warnings on
// the CsvParseResult rather than failing the parse — only an empty input
// or an unsatisfiable skip_rows count return success=false with no
// columns.
package csvparse
