package main

import "animal-search-admin/cmd"

func main() {
	cmd.Execute()
}
