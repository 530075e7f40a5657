// Command otl turns KiCad boards into laser-ready SVG files.
package main

import "github.com/OpenTraceLab/OpenTraceLaser/cmd/otl/cmd"

func main() {
	cmd.Execute()
}
