/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sarahbx/must-oc/pkg/archive"
	"github.com/sarahbx/must-oc/pkg/oc"
)

func logsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "logs",
		EnableShellCompletion: true,
		Usage:                 "Print captured container logs for a pod",
		ArgsUsage:             "POD",
		Description: `Streams the captured log of a pod's container to stdout. When the pod has
a single container it is selected automatically; otherwise -c is required.
Output stops with a notice once the size ceiling is reached.

# Examples

  must-oc logs etcd-0 -n openshift-etcd
  must-oc logs etcd-0 -n openshift-etcd -c etcdctl
  must-oc logs etcd-0 -n openshift-etcd --previous`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "namespace",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Namespace of the pod",
			},
			&cli.StringFlag{
				Name:    "container",
				Aliases: []string{"c"},
				Usage:   "Container name (required when the pod has several)",
			},
			&cli.BoolFlag{
				Name:  "previous",
				Usage: "Read previous.log instead of current.log",
			},
		},
		Action: runLogs,
	}
}

func runLogs(ctx context.Context, cmd *cli.Command) error {
	pod, err := requireArg(cmd, 0, "pod name")
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	variant := archive.LogCurrent
	if cmd.Bool("previous") {
		variant = archive.LogPrevious
	}

	return engine.StreamLog(oc.LogHandle{
		Namespace: cmd.String("namespace"),
		Pod:       pod,
		Container: cmd.String("container"),
		Variant:   variant,
	}, os.Stdout)
}
