package main

import "github.com/assetvault/asset-management/cmd"

func main() {
	cmd.Execute()
}
