package main

import (
	"context"
	"log"

	"github.com/nsqlite/wsq/internal/wsqsh"
)

func main() {
	if err := wsqsh.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
