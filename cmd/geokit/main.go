// Command geokit runs planar geometry operations from the command line and
// hosts the terminal viewer.
package main

import "geokit/internal/cli"

func main() {
	cli.Execute()
}
