package main

import (
	"github.com/spf13/pflag"

	"github.com/eringen/homepage"
)

func runServe(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configPath := fs.String("config", "site.yaml", "site config file")
	dbPath := fs.String("db", "", "content artifact path (overrides the config)")
	addr := fs.String("addr", "", "listen address (overrides the config)")
	staticDir := fs.String("static", "public", "directory served under /public")
	dev := fs.Bool("dev", false, "development mode: debug logging and a live feed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := homepage.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	cfg = cfg.ApplyEnv()
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dev {
		cfg.Mode = homepage.ModeDevelopment
	}

	app, err := homepage.Open(cfg, homepage.ViewFuncs{}, homepage.WithStaticDir(*staticDir))
	if err != nil {
		return err
	}
	return app.Start()
}
