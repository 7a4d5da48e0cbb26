// Command fmpart partitions a hypergraph netlist into two balanced parts
// using the Fiduccia-Mattheyses min-cut heuristic.
package main

import "github.com/fmpart/fmpart/cmd/fmpart/cmd"

func main() {
	cmd.Execute()
}
