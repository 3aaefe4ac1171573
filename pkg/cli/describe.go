/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sarahbx/must-oc/pkg/archive"
	"github.com/sarahbx/must-oc/pkg/printer"
)

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "describe",
		EnableShellCompletion: true,
		Usage:                 "Show a single resource in key/value form",
		ArgsUsage:             "RESOURCE_TYPE NAME",
		Description: `Finds one resource by name and prints it in oc-describe style.
Sensitive values are redacted unless --show-secrets is given.

# Examples

  must-oc describe pod etcd-0 -n openshift-etcd
  must-oc describe clusterversion version`,
		Flags: []cli.Flag{
			namespaceFlag,
		},
		Action: runDescribe,
	}
}

func runDescribe(ctx context.Context, cmd *cli.Command) error {
	resourceType, err := requireArg(cmd, 0, "resource type")
	if err != nil {
		return err
	}
	name, err := requireArg(cmd, 1, "resource name")
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	namespace := cmd.String("namespace")
	q, err := engine.BuildQuery(resourceType, namespace, false, name)
	if err != nil {
		return err
	}
	if q.Scope == archive.ScopeNamespace && namespace == "" {
		return fmt.Errorf("must specify -n <namespace> for namespaced resource type %q", resourceType)
	}

	record, err := engine.Get(q, cmd.Bool("show-secrets"))
	if err != nil {
		return err
	}

	return printer.Describe(record, os.Stdout)
}
