package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"lightnovel-reader/cmd"
)

func main() {
	if err := cmd.RootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
