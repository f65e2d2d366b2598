package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/naka-gawa/contrib-graph/cmd"
)

func main() {
	cmd.Execute()
}
