package main

import (
	"flag"
	"log"

	"github.com/danmuck/plcstub/internal/config"
)

const defaultPath = "cmd/plcstubd/config.toml"

func main() {
	kind := flag.String("kind", "server", "config kind: server")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to cmd/plcstubd/config.toml)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if _, err := config.Template(*kind); err != nil {
		log.Fatal(err)
	}

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath
		}
		cfg, err := config.LoadServerConfig(path)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated %s config at %s (%d tags)", *kind, path, len(cfg.Tags))
		return
	}

	target := *output
	if target == "" {
		target = defaultPath
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}
