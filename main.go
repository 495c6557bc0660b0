//go:build !gui

package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/karitori/leaf/internal/cli"
	"github.com/karitori/leaf/internal/output"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// build assembles the version string. When installed via
// `go install module@version` ldflags aren't set, so version stays
// "dev"; fall back to the module info Go records automatically.
func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	if err := cli.New(build()).Run(context.Background(), os.Args); err != nil {
		output.NewFormatter(false, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}
