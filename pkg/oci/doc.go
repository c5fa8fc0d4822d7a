/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package oci publishes trained model artifacts to OCI registries using ORAS.
//
// A model is pushed as an OCI 1.1 artifact manifest whose layers are the
// model blob and, when present, its checksum file:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/acme/flight-model:v1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{
//	    Reference: ref,
//	    Files:     []string{"data/model.json", "data/model.json.sha256"},
//	})
//
// Registry credentials are read from the Docker credential store.
package oci
