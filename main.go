package main

import (
	"os"

	"github.com/Rakhulsr/go-seller-ms/app/cmd"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}
	cmd.Serve()
}
