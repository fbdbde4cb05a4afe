package main

import (
	"github.com/magiclamp-finance/lampd/internal/cli"
)

func main() {
	cli.Execute()
}
