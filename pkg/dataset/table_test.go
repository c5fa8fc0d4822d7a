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

package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/flight-delay/pkg/errors"
	"github.com/mchmarny/flight-delay/pkg/flight"
)

const sampleCSV = `Fecha-I,Vlo-I,Ori-I,Des-I,Emp-I,Fecha-O,Vlo-O,Ori-O,Des-O,Emp-O,DIA,MES,AÑO,DIANOM,TIPOVUELO,OPERA,SIGLAORI,SIGLADES
2017-01-01 23:30:00,226,SCEL,KMIA,AAL,2017-01-01 23:33:00,226,SCEL,KMIA,AAL,1,1,2017,Domingo,I,American Airlines,Santiago,Miami
2017-07-02 23:30:00,226,SCEL,KMIA,AAL,2017-07-02 23:59:00,226,SCEL,KMIA,AAL,2,7,2017,Lunes,I,Grupo LATAM,Santiago,Miami
`

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 2, tbl.Len())
	assert.Contains(t, tbl.Header, "Vlo-I")
	assert.Empty(t, tbl.Missing(flight.TrainingColumns()...))

	first := tbl.Records[0]
	assert.Equal(t, "American Airlines", first.Operator)
	assert.Equal(t, "I", first.FlightType)
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "Miami", first.Destination)
	assert.Equal(t, "Domingo", first.DayName)

	diff, err := tbl.Records[1].MinuteDiff()
	require.NoError(t, err)
	assert.InDelta(t, 29.0, diff, 1e-9)
}

func TestRead_BOM(t *testing.T) {
	tbl, err := Read(strings.NewReader("\xEF\xBB\xBFOPERA,TIPOVUELO,MES\nSky Airline,N,3\n"))
	require.NoError(t, err)
	assert.Equal(t, "OPERA", tbl.Header[0])
	assert.Equal(t, "Sky Airline", tbl.Records[0].Operator)
}

func TestRead_QuotedFields(t *testing.T) {
	tbl, err := Read(strings.NewReader("OPERA,TIPOVUELO,MES\n\"Copa Air, S.A.\",I,12\n"))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Copa Air, S.A.", tbl.Records[0].Operator)
	assert.Equal(t, 12, tbl.Records[0].Month)
	assert.Equal(t, []string{"OPERA", "TIPOVUELO", "MES"}, tbl.Header)
}

func TestRead_RaggedRow(t *testing.T) {
	_, err := Read(strings.NewReader("OPERA,TIPOVUELO,MES\nSky Airline,N\n"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestRead_HeaderOnly(t *testing.T) {
	tbl, err := Read(strings.NewReader("OPERA,TIPOVUELO,MES\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))

	_, err = Read(strings.NewReader("OPERA,TIPOVUELO,MES\nSky Airline,N,march\n"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestTable_Require(t *testing.T) {
	tbl := &Table{Header: []string{"OPERA", "MES"}}

	assert.NoError(t, tbl.Require("OPERA"))

	err := tbl.Require(flight.EncodingColumns()...)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
	assert.Contains(t, err.Error(), "TIPOVUELO")
	assert.Equal(t, []string{"TIPOVUELO"}, tbl.Missing(flight.EncodingColumns()...))
}

func TestFromDescriptors(t *testing.T) {
	tbl := FromDescriptors([]flight.Descriptor{
		{Operator: "Copa Air", FlightType: "I", Month: 10},
		{Operator: "Sky Airline", FlightType: "N", Month: 4},
	})
	assert.Equal(t, 2, tbl.Len())
	assert.Empty(t, tbl.Missing(flight.EncodingColumns()...))
	assert.NotEmpty(t, tbl.Missing(flight.LabelColumns()...))
	assert.Equal(t, "Copa Air", tbl.Records[0].Operator)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}
