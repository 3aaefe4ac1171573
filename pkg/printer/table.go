/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/duration"

	"github.com/sarahbx/must-oc/pkg/resource"
)

// Table is a column-aligned listing in the style of `oc get`.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table with upper-cased headers and at least two spaces
// between columns.
func (t Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, len(t.Headers))
	for i, header := range t.Headers {
		headers[i] = strings.ToUpper(header)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FormatAge renders a creationTimestamp as a relative age like kubectl does
// (e.g. 5d, 3h20m). Unparseable or missing timestamps render as <unknown>.
func FormatAge(timestamp string, now time.Time) string {
	if timestamp == "" {
		return "<unknown>"
	}
	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "<unknown>"
	}
	age := now.Sub(parsed)
	if age < 0 {
		age = 0
	}
	return duration.HumanDuration(age)
}

// NewResourceTable builds the listing for records of one kind. Pods get the
// READY/STATUS/RESTARTS columns; everything else lists NAME and AGE. With
// withNamespace a NAMESPACE column is prepended.
func NewResourceTable(records []resource.Record, isPods, withNamespace bool, now time.Time) Table {
	table := Table{}
	if isPods {
		table.Headers = []string{"name", "ready", "status", "restarts", "age"}
	} else {
		table.Headers = []string{"name", "age"}
	}
	if withNamespace {
		table.Headers = append([]string{"namespace"}, table.Headers...)
	}

	for _, record := range records {
		var row []string
		if withNamespace {
			row = append(row, record.GetNamespace())
		}
		row = append(row, record.GetName())
		if isPods {
			row = append(row, podColumns(record)...)
		}
		row = append(row, FormatAge(record.CreationTimestamp(), now))
		table.Rows = append(table.Rows, row)
	}
	return table
}

// podColumns extracts READY, STATUS and RESTARTS by projecting the record
// into a typed Pod. Records that do not convert fall back to placeholders
// rather than failing the listing.
func podColumns(record resource.Record) []string {
	var pod corev1.Pod
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(record.Object, &pod); err != nil {
		return []string{"0/0", podPhaseOf(record), "0"}
	}

	ready := 0
	restarts := int32(0)
	for _, status := range pod.Status.ContainerStatuses {
		if status.Ready {
			ready++
		}
		restarts += status.RestartCount
	}

	phase := string(pod.Status.Phase)
	if phase == "" {
		phase = "Unknown"
	}

	return []string{
		fmt.Sprintf("%d/%d", ready, len(pod.Status.ContainerStatuses)),
		phase,
		fmt.Sprintf("%d", restarts),
	}
}

func podPhaseOf(record resource.Record) string {
	phase, found, err := unstructured.NestedString(record.Object, "status", "phase")
	if !found || err != nil {
		return "Unknown"
	}
	return phase
}
