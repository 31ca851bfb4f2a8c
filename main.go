package main

import "bundle-manager/cmd"

func main() {
	cmd.Execute()
}
