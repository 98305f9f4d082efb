package main

import (
	"github.com/cluequest/cluequest-go/internal/cli"
)

func main() {
	cli.Execute()
}
