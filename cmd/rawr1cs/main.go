// Command rawr1cs inspects serialized rank-1 constraint systems.
//
// Usage:
//
//	rawr1cs info  <file>
//	rawr1cs stats <file>
//	rawr1cs dump  <file>
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/zkmatter/rawr1cs/logger"
)

func app() *cli.App {
	return &cli.App{
		Name:  "rawr1cs",
		Usage: "inspect serialized rank-1 constraint systems",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print version, scalar field and counters",
				ArgsUsage: "<file>",
				Action:    info,
			},
			{
				Name:      "stats",
				Usage:     "print per-matrix term and column statistics",
				ArgsUsage: "<file>",
				Action:    stats,
			},
			{
				Name:      "dump",
				Usage:     "print the A, B and C matrices",
				ArgsUsage: "<file>",
				Action:    dump,
			},
		},
	}
}

func main() {
	if err := app().Run(os.Args); err != nil {
		log := logger.Logger()
		log.Fatal().Err(err).Msg("command failed")
	}
}
