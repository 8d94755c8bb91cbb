package main

import (
	"github.com/AzielCF/az-planner/cmd"
)

func main() {
	cmd.Execute()
}
