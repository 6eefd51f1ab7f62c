// Package export renders stored episodes into portable transcripts and
// archives them to a [Sink]. Two sinks ship with the package: local
// disk and S3-compatible object stores.
package export
