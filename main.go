package main

import "chart-catalog/cmd"

func main() {
	cmd.Execute()
}
