// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer provides encoding and decoding of service data in
// multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable representation used for the model blob and API responses
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable; used for prediction request files and training reports
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Aligned text for terminal viewing (text/tabwriter)
//   - Types implementing TableRenderer control their own layout
//   - Write-only (no deserialization support)
//
// # Destinations
//
// NewFileWriterOrStdout selects the destination from a path:
//
//   - "" writes to stdout
//   - "cm://namespace/name" applies a ConfigMap in the current cluster
//   - anything else creates a local file
//
// # Usage
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "report.yaml")
//	defer w.(serializer.Closer).Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// Reading typed data from a file, format detected by extension:
//
//	req, err := serializer.FromFile[inference.Request]("flights.yaml")
package serializer
