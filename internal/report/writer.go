package report

import "github.com/csrbfs/bfs500/pkg/writer"

// JSONWriter writes a TreeGraph as JSON.
type JSONWriter = writer.JSONWriter[*TreeGraph]

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter() *JSONWriter {
	return writer.NewJSONWriter[*TreeGraph]()
}

// NewPrettyJSONWriter creates a JSON writer with pretty printing.
func NewPrettyJSONWriter() *JSONWriter {
	return writer.NewPrettyJSONWriter[*TreeGraph]()
}

// GzipWriter writes a TreeGraph as gzipped JSON.
type GzipWriter = writer.GzipWriter[*TreeGraph]

// NewGzipWriter creates a new gzip writer with default compression.
func NewGzipWriter() *GzipWriter {
	return writer.NewGzipWriter[*TreeGraph]()
}
