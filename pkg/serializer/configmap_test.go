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

package serializer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/mchmarny/flight-delay/pkg/header"
)

type kindedReport struct {
	header.Header `json:",inline" yaml:",inline"`
	Accuracy      float64 `json:"accuracy" yaml:"accuracy"`
}

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		namespace string
		cmName    string
		wantErr   bool
	}{
		{name: "valid", uri: "cm://ml/flight-report", namespace: "ml", cmName: "flight-report"},
		{name: "trims spaces", uri: "cm:// ml / report ", namespace: "ml", cmName: "report"},
		{name: "wrong scheme", uri: "file://ml/report", wantErr: true},
		{name: "missing name", uri: "cm://ml", wantErr: true},
		{name: "empty namespace", uri: "cm:///report", wantErr: true},
		{name: "empty name", uri: "cm://ml/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, ns)
			assert.Equal(t, tt.cmName, name)
		})
	}
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	kc := fake.NewClientset()
	w := NewConfigMapWriter("ml", "flight-report", FormatYAML, WithKubeClient(kc))

	err := w.Serialize(context.Background(), kindedReport{Header: header.New(header.KindTrainingResult, "test"), Accuracy: 0.81})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	cm, err := kc.CoreV1().ConfigMaps("ml").Get(context.Background(), "flight-report", metav1.GetOptions{})
	require.NoError(t, err)

	assert.Equal(t, "yaml", cm.Data["format"])
	assert.NotEmpty(t, cm.Data["timestamp"])
	assert.True(t, strings.Contains(cm.Data["report.yaml"], "accuracy: 0.81"))
	assert.True(t, strings.Contains(cm.Data["report.yaml"], "kind: TrainingResult"))
	assert.Equal(t, "trainingresult", cm.Labels["app.kubernetes.io/component"])
	assert.Equal(t, appLabel, cm.Labels["app.kubernetes.io/name"])
}

func TestConfigMapWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	kc := fake.NewClientset()
	w := NewConfigMapWriter("ml", "r", Format("xml"), WithKubeClient(kc))

	require.NoError(t, w.Serialize(context.Background(), map[string]int{"n": 1}))

	cm, err := kc.CoreV1().ConfigMaps("ml").Get(context.Background(), "r", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Contains(t, cm.Data, "report.json")
	assert.Equal(t, "report", cm.Labels["app.kubernetes.io/component"])
}
