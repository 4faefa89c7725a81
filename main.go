package main

import "github.com/plazahq/plaza/cmd"

func main() {
	cmd.Execute()
}
