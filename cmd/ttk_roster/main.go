package main

import (
	"flag"
	"os"

	"github.com/aurceive/ttk_roster/internal/app"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "path to ttk_config.yaml (default: searched upward from the working directory)")
	flag.StringVar(&opts.Mode, "mode", app.ModeRank, "rank, summary, log, compare or stats")
	flag.StringVar(&opts.Weapon, "weapon", "", "weapon id (comma separated list in rank mode)")
	flag.StringVar(&opts.Shield, "shield", "", "shield id, overrides the config")
	level := flag.Int("level", 1, "weapon level 1-4")
	headshot := flag.Float64("headshot", 0, "headshot ratio 0.0-1.0")
	flag.BoolVar(&opts.XLSX, "xlsx", false, "export ranked tables to xlsx")
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Only flags given on the command line override the config.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			opts.Level = level
		case "headshot":
			opts.Headshot = headshot
		}
	})

	os.Exit(app.RunWithOptions(opts))
}
