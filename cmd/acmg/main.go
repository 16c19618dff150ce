package main

import (
	"github.com/mchmarny/acmg/pkg/cli"
)

func main() {
	cli.Execute()
}
