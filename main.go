package main

import (
	"os"

	"github.com/scan-io-git/apiprops/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
