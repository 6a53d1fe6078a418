package main

import (
	"os"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/cli"
)

// @title curconv API
// @version 1.0
// @description Debounced crypto to fiat converter

// @host localhost:8080
// @BasePath /

func main() {
	os.Exit(cli.Execute())
}
