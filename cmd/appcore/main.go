package main

import (
	"context"
	"embed"
	"os"
	"os/signal"

	"github.com/ariel-frischer/appcore/internal/application"
	"github.com/ariel-frischer/appcore/internal/cli"
	"github.com/ariel-frischer/appcore/internal/distribution"
)

// packageName identifies the installed distribution in the registry.
const packageName = "github.com/ariel-frischer/appcore"

//go:embed data
var data embed.FS

func main() {
	distribution.Register(packageName, distribution.Distribution{Name: application.DefaultName, Data: data})

	app := cli.NewApplication(application.Information{Name: application.DefaultName})
	app.Preparation.Locator = distribution.PrepareOptions{Package: packageName}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, app, os.Args[1:])
	stop()
	os.Exit(code)
}
