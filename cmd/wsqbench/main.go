package main

import (
	"context"
	"log"

	"github.com/nsqlite/wsq/internal/wsqbench"
)

func main() {
	if err := wsqbench.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
