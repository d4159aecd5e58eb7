package main

import "github.com/iksnae/support-analytics/cmd"

func main() {
	cmd.Execute()
}
