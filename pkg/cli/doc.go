/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the must-oc tool.
//
// # Overview
//
// must-oc answers oc-style queries against an offline must-gather archive:
// listing resources, describing a single resource, and printing container
// logs, plus a maintenance command that teaches the tool new resource types
// by scanning an archive.
//
// # Commands
//
// get - List resources or fetch one by name:
//
//	must-oc get pods -n openshift-etcd
//	must-oc get deploy -A -l app=etcd
//	must-oc get secrets my-secret -n ns1 --show-secrets
//	must-oc get nodes -o yaml
//
// describe - Show a single resource in key/value form:
//
//	must-oc describe pod etcd-0 -n openshift-etcd
//
// logs - Print captured container logs:
//
//	must-oc logs etcd-0 -n openshift-etcd
//	must-oc logs etcd-0 -n openshift-etcd -c etcdctl --previous
//
// update-types - Discover resource types from an archive and grow the
// registry (strictly additive; manual edits survive):
//
//	must-oc update-types -d ./must-gather.local.123
//
// # Global Flags
//
//	--must-gather-dir, -d  Path containing must-gather archives (repeatable, default ".")
//	--show-secrets         Disable sensitive data redaction
//	--debug                Enable debug logging
//	--log-json             Output logs in JSON format
//
// # Environment Variables
//
//	MUST_OC_CONFIG_DIR      Registry directory (default $HOME/.config/must-oc)
//	MUST_OC_MAX_YAML_BYTES  Resource file size ceiling (default 100MiB)
//	MUST_OC_MAX_LOG_BYTES   Log output ceiling before truncation (default 100MiB)
//	LOG_LEVEL               Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  Any error (unknown type, missing resource, corrupt configuration)
//
// Diagnostics and warnings go to stderr; stdout carries only query output.
package cli
