package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dbytex91/tvcrawl/internal/logging"
)

var version = "1.0.0"

func main() {
	logging.Setup(os.Stdout, os.Stderr, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
