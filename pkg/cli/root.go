/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sarahbx/must-oc/pkg/logging"
)

// version is injected at build time via ldflags.
var version = "dev"

var (
	mustGatherDirFlag = &cli.StringSliceFlag{
		Name:    "must-gather-dir",
		Aliases: []string{"d"},
		Value:   []string{"."},
		Usage:   "Path to a directory containing must-gather archives (repeatable)",
	}

	showSecretsFlag = &cli.BoolFlag{
		Name:  "show-secrets",
		Usage: "Disable sensitive data redaction",
	}

	namespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Usage:   "Namespace to query",
	}
)

// Root builds the top-level must-oc command.
func Root() *cli.Command {
	return &cli.Command{
		Name:                  "must-oc",
		Usage:                 "oc-like read-only queries against must-gather archives",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			mustGatherDirFlag,
			showSecretsFlag,
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Setup(logging.Options{
				Debug: cmd.Bool("debug"),
				JSON:  cmd.Bool("log-json"),
			})
			return ctx, nil
		},
		Commands: []*cli.Command{
			getCmd(),
			describeCmd(),
			logsCmd(),
			updateTypesCmd(),
		},
	}
}
