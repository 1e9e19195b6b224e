package main

import "md-table-sync/cmd"

func main() {
	cmd.Execute()
}
