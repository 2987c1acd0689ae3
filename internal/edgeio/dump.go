package edgeio

import (
	"github.com/csrbfs/bfs500/internal/bfs"
	"github.com/csrbfs/bfs500/internal/graph"
	"github.com/csrbfs/bfs500/pkg/writer"
)

// CSRDump is a serializable snapshot of a built CSR, one adjacency list per
// vertex, used for archival and for inspecting a build outside this module.
type CSRDump struct {
	NumVertices int64     `json:"numVertices"`
	Adjacency   [][]int64 `json:"adjacency"`
}

// DumpCSR captures c as a CSRDump.
func DumpCSR(c *graph.CSR) *CSRDump {
	d := &CSRDump{
		NumVertices: c.NV(),
		Adjacency:   make([][]int64, c.NV()),
	}
	for v := int64(0); v < c.NV(); v++ {
		nbrs := c.Neighbors(v)
		cp := make([]int64, len(nbrs))
		copy(cp, nbrs)
		d.Adjacency[v] = cp
	}
	return d
}

// CSRWriter writes a CSRDump as gzipped JSON.
type CSRWriter = writer.GzipWriter[*CSRDump]

// NewCSRWriter creates a writer for CSR dumps with default compression.
func NewCSRWriter() *CSRWriter {
	return writer.NewGzipWriter[*CSRDump]()
}

// TreeWriter writes a completed BFS tree as gzipped JSON.
type TreeWriter = writer.GzipWriter[*bfs.Tree]

// NewTreeWriter creates a writer for BFS tree dumps with default compression.
func NewTreeWriter() *TreeWriter {
	return writer.NewGzipWriter[*bfs.Tree]()
}
