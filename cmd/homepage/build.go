package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"

	"github.com/eringen/homepage"
	"github.com/eringen/homepage/content"
	"github.com/eringen/homepage/edge"
	"github.com/eringen/homepage/markdown"
)

type buildOptions struct {
	contentDir string
	configPath string
	dbPath     string
	outDir     string
	target     string
	dev        bool
	edgeConfig string
	watch      bool
}

func parseBuildFlags(args []string) (buildOptions, error) {
	var o buildOptions
	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	fs.StringVar(&o.contentDir, "content", "content", "content directory holding blog/ and pages/")
	fs.StringVar(&o.configPath, "config", "site.yaml", "site config file")
	fs.StringVar(&o.dbPath, "db", "", "content artifact path (overrides the config)")
	fs.StringVar(&o.outDir, "out", "dist", "output directory for generated files")
	fs.StringVar(&o.target, "target", homepage.EnvOr("DEPLOY_TARGET", ""), "deployment target (vercel)")
	fs.BoolVar(&o.dev, "dev", false, "development build, skips edge rules")
	fs.StringVar(&o.edgeConfig, "edge-config", edge.DefaultConfigPath, "routing config receiving edge rules")
	fs.BoolVar(&o.watch, "watch", false, "rebuild when content changes")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func runBuild(args []string) error {
	o, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	if err := build(o); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch(ctx, o.contentDir, func() error { return build(o) })
}

// build runs one full pipeline pass. A failing step leaves the previous
// artifact in place.
func build(o buildOptions) error {
	cfg, err := homepage.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	cfg = cfg.ApplyEnv()
	if o.dbPath != "" {
		cfg.DatabasePath = o.dbPath
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/content.db"
	}

	var renderOpts []markdown.Option
	if cfg.Highlight {
		renderOpts = append(renderOpts, markdown.WithHighlighting())
	}
	extractor := content.NewExtractor(markdown.NewRenderer(renderOpts...))
	if cfg.Location != nil {
		extractor.Location = cfg.Location
	}
	m, err := extractor.Extract(o.contentDir)
	if err != nil {
		return fmt.Errorf("extract %s: %w", o.contentDir, err)
	}
	paths := content.NegotiablePaths(m)
	log.Infof("extracted %d posts and %d pages, %d negotiable paths", len(m.Posts()), len(m.Pages()), len(paths))

	store, err := content.NewStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
	}
	defer store.Close()
	if err := store.Save(m, paths); err != nil {
		return fmt.Errorf("save %s: %w", cfg.DatabasePath, err)
	}
	log.Infof("wrote %s", cfg.DatabasePath)

	feedCfg := cfg
	feedCfg.Mode = homepage.ModePrerender
	doc, err := homepage.NewFeed(m, feedCfg, nil).Generate()
	if err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}
	feedFile := filepath.Join(o.outDir, filepath.FromSlash(homepage.FeedPath))
	if err := os.WriteFile(feedFile, doc, 0o644); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	log.Infof("wrote %s", feedFile)

	injector := edge.Injector{Target: o.target, Dev: o.dev, ConfigPath: o.edgeConfig}
	changed, err := injector.Inject()
	if err != nil {
		return err
	}
	switch {
	case changed:
		log.Infof("injected negotiation rules into %s", o.edgeConfig)
	case injector.Enabled():
		log.Infof("negotiation rules already present in %s", o.edgeConfig)
	}
	return nil
}
