package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/toldya/internal/client/api"
	"github.com/dmitrijs2005/toldya/internal/client/cli"
	"github.com/dmitrijs2005/toldya/internal/client/config"
)

func main() {
	cfg, args, err := config.Parse(os.Args[1:], os.Environ(), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := api.New(cfg.ServerURL, &http.Client{Timeout: cfg.Timeout})
	app := cli.NewApp(cfg, client, os.Stdin, os.Stdout, os.Stderr)

	os.Exit(app.Run(context.Background(), args))
}
