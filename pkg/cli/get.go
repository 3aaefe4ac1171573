/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sarahbx/must-oc/pkg/archive"
	"github.com/sarahbx/must-oc/pkg/labels"
	"github.com/sarahbx/must-oc/pkg/printer"
	"github.com/sarahbx/must-oc/pkg/resource"
	"github.com/sarahbx/must-oc/pkg/serializer"
)

func getCmd() *cli.Command {
	return &cli.Command{
		Name:                  "get",
		EnableShellCompletion: true,
		Usage:                 "List resources from a must-gather archive",
		ArgsUsage:             "RESOURCE_TYPE [NAME]",
		Description: `Lists resources of a given type, or fetches a single resource by name.
Accepts the same plural names and short aliases as oc (pods, po, deploy, ...).

# Examples

List pods in one namespace:
  must-oc get pods -n openshift-etcd

List deployments everywhere, filtered by label:
  must-oc get deploy -A -l app=etcd

Fetch one resource as YAML:
  must-oc get pod etcd-0 -n openshift-etcd -o yaml

Cluster-scoped types need no namespace:
  must-oc get nodes`,
		Flags: []cli.Flag{
			namespaceFlag,
			&cli.BoolFlag{
				Name:    "all-namespaces",
				Aliases: []string{"A"},
				Usage:   "Query every namespace in the archive",
			},
			&cli.StringFlag{
				Name:    "selector",
				Aliases: []string{"l"},
				Usage:   "Label selector (key=value, key==value, key!=value; comma-separated)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("Output format (%s)", serializer.SupportedFormats()),
			},
		},
		Action: runGet,
	}
}

func runGet(ctx context.Context, cmd *cli.Command) error {
	resourceType, err := requireArg(cmd, 0, "resource type")
	if err != nil {
		return err
	}
	name := cmd.Args().Get(1)

	namespace := cmd.String("namespace")
	allNamespaces := cmd.Bool("all-namespaces")

	selector, err := labels.Parse(cmd.String("selector"))
	if err != nil {
		return err
	}

	var outFormat serializer.Format
	if raw := cmd.String("output"); raw != "" {
		outFormat = serializer.Format(raw)
		if outFormat.IsUnknown() {
			return fmt.Errorf("unknown output format: %q, valid formats are: %s", raw, serializer.SupportedFormats())
		}
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	q, err := engine.BuildQuery(resourceType, namespace, allNamespaces, name)
	if err != nil {
		return err
	}
	if q.Scope == archive.ScopeNamespace && namespace == "" {
		return fmt.Errorf("must specify -n <namespace> or -A for namespaced resource type %q", resourceType)
	}

	records, err := engine.List(q, selector, cmd.Bool("show-secrets"))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		if namespace != "" {
			fmt.Printf("No resources found in namespace %s.\n", namespace)
		} else {
			fmt.Println("No resources found.")
		}
		return nil
	}

	if !outFormat.IsUnknown() {
		return writeStructured(ctx, outFormat, records)
	}

	table := printer.NewResourceTable(records, q.Plural == "pods", q.Scope == archive.ScopeAllNamespaces, time.Now())
	return table.Render(os.Stdout)
}

// writeStructured emits records as a v1 List document in the requested
// format, mirroring what oc get -o yaml produces.
func writeStructured(ctx context.Context, format serializer.Format, records []resource.Record) error {
	items := make([]map[string]any, len(records))
	for i, record := range records {
		items[i] = record.Object
	}
	list := map[string]any{
		"apiVersion": "v1",
		"kind":       "List",
		"items":      items,
	}
	return serializer.NewWriter(format, os.Stdout).Serialize(ctx, list)
}
