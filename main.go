package main

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/cmd"
)

func main() {
	cmd.Execute()
}
