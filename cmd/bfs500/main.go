// Command bfs500 builds CSR graphs from edge lists and runs the
// direction-optimizing BFS driver against them.
package main

import "github.com/csrbfs/bfs500/cmd/bfs500/cmd"

func main() {
	cmd.Execute()
}
