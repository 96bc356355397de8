package main

import (
	"github.com/arthur-debert/appimg/cmd/appimg"
)

func main() {
	appimg.Execute()
}
