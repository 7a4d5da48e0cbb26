// Command fmpart-batch partitions many independent netlist files
// concurrently, one Fiduccia-Mattheyses session per file.
package main

import "github.com/fmpart/fmpart/cmd/fmpart-batch/cmd"

func main() {
	cmd.Execute()
}
