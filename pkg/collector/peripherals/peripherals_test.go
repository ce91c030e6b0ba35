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

package peripherals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/command/commandtest"
)

func TestCollector_Collect(t *testing.T) {
	r := commandtest.New().
		On(command.NameUSB, "InstanceId=USB\\VID_1\r\n", 0).
		On(command.NamePnP, "Class=Net\r\nClass=USB\r\n", 0).
		On(command.NameNetAdapter, "Name=Ethernet\r\n", 0).
		On(command.NameLogicalDevice, "", 0).
		On(command.NameBluetooth, "Gerät=Maus\n", 0)
	c := &Collector{Deps: session.Deps{Runner: r, Catalog: command.Windows()}}

	sum, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.NoError(t, sum.Validate())

	want := map[string]int{
		"usb_entries_length":           len("InstanceId=USB\\VID_1\r\n"),
		"pnp_entries_length":           len("Class=Net\r\nClass=USB\r\n"),
		"netadapter_entries_length":    len("Name=Ethernet\r\n"),
		"logicaldevice_entries_length": 0,
		"bluetooth_entries_length":     11,
	}
	for k, v := range want {
		require.True(t, sum.Has(k), k)
		assert.Equal(t, v, sum.Get(k).Any(), k)
	}
	assert.Len(t, sum, len(want)+2)
	assert.Len(t, r.Calls(), 5)
}

func TestCollector_FailedCommands(t *testing.T) {
	r := commandtest.New()
	r.ByName[command.NameUSB] = command.Failed("TIMEOUT: usb exceeded 40s")
	c := &Collector{Deps: session.Deps{Runner: r, Catalog: command.Unix()}}

	sum, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Get("usb_entries_length").Any())
}
