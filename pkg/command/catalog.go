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

package command

import (
	"runtime"
	"slices"
	"time"

	"github.com/jettox/diagnostics/pkg/parser"
)

// Domain names, in collection order.
const (
	DomainSystem      = "system"
	DomainHardware    = "hardware"
	DomainFirmware    = "firmware"
	DomainStorage     = "storage"
	DomainPeripherals = "peripherals"
)

// Domains returns the domain names in their fixed collection order.
func Domains() []string {
	return []string{DomainSystem, DomainHardware, DomainFirmware, DomainStorage, DomainPeripherals}
}

// Logical command names shared by every catalogue.
const (
	NameSystemInfo     = "systeminfo"
	NameTaskList       = "tasklist"
	NameEventSystem    = "event_system"
	NameEventApp       = "event_app"
	NameDriverQuery    = "driverquery"
	NameServices       = "services"
	NameCPU            = "cpu"
	NameBIOS           = "bios"
	NameBaseboard      = "baseboard"
	NameVideo          = "video"
	NameBootConfig     = "bootconfig"
	NamePowerCfg       = "powercfg"
	NameDxDiag         = "dxdiag"
	NameFirmwareEvents = "firmware_events"
	NameDiskDrive      = "diskdrive"
	NamePhysicalDisk   = "physicaldisk"
	NamePartition      = "partition"
	NameSmartScan      = "smartctl_scan"
	NameSmartHealth    = "smartctl_health"
	NameUSB            = "usb"
	NamePnP            = "pnp"
	NameNetAdapter     = "netadapter"
	NameLogicalDevice  = "logicaldevice"
	NameBluetooth      = "bluetooth"
)

// DxDiagSideFile is the report file dxdiag writes, relative to the artifact
// root. The catalogue line takes its absolute path as the single argument.
const DxDiagSideFile = "dxdiag_output.txt"

// Catalog is an immutable, ordered set of command specs.
type Catalog struct {
	specs []Spec
}

// NewCatalog creates a catalogue from specs, preserving their order.
func NewCatalog(specs ...Spec) *Catalog {
	return &Catalog{specs: slices.Clone(specs)}
}

// Lookup returns the spec registered under domain and name.
func (c *Catalog) Lookup(domain, name string) (Spec, bool) {
	for _, s := range c.specs {
		if s.Domain == domain && s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Domain returns the specs of one domain in catalogue order.
func (c *Catalog) Domain(domain string) []Spec {
	var out []Spec
	for _, s := range c.specs {
		if s.Domain == domain {
			out = append(out, s)
		}
	}
	return out
}

// Specs returns a copy of every spec in catalogue order.
func (c *Catalog) Specs() []Spec {
	return slices.Clone(c.specs)
}

// DefaultCatalog returns the catalogue for the running operating system.
func DefaultCatalog() *Catalog {
	if runtime.GOOS == "windows" {
		return Windows()
	}
	return Unix()
}

func sec(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Windows returns the catalogue of built-in Windows inspection tools.
func Windows() *Catalog {
	const (
		usbQuery = `powershell -Command "Get-PnpDevice -PresentOnly | Where-Object { $_.InstanceId -like 'USB*' } | Format-List -Property *"`
		btQuery  = `powershell -Command "Get-PnpDevice -PresentOnly | Where-Object { $_.Class -like 'Bluetooth' } | Format-List -Property *"`
		mcQuery  = `powershell -Command "Get-WinEvent -FilterHashtable @{LogName='System';Level=3} -MaxEvents 200 | Where-Object { $_.Message -match 'microcode' } | Format-List -Property TimeCreated,Id,Message"`
	)

	return NewCatalog(
		Spec{Domain: DomainSystem, Name: NameSystemInfo, Line: "systeminfo", Timeout: sec(30), Delimiter: ":"},
		Spec{Domain: DomainSystem, Name: NameTaskList, Line: "tasklist /V /FO CSV", Timeout: sec(30), Format: parser.FormatCSV},
		Spec{Domain: DomainSystem, Name: NameEventSystem, Line: "wevtutil qe System /c:200 /f:text", Timeout: sec(40)},
		Spec{Domain: DomainSystem, Name: NameEventApp, Line: "wevtutil qe Application /c:200 /f:text", Timeout: sec(40)},
		Spec{Domain: DomainSystem, Name: NameDriverQuery, Line: "driverquery /v /fo list", Timeout: sec(40), Marker: "Driver Name"},
		Spec{Domain: DomainSystem, Name: NameServices, Line: "wmic service get /format:list", Timeout: sec(40)},

		Spec{Domain: DomainHardware, Name: NameCPU, Line: "wmic cpu get /format:list", Timeout: sec(20)},
		Spec{Domain: DomainHardware, Name: NameBIOS, Line: "wmic bios get /format:list", Timeout: sec(20)},
		Spec{Domain: DomainHardware, Name: NameBaseboard, Line: "wmic baseboard get /format:list", Timeout: sec(20)},
		Spec{Domain: DomainHardware, Name: NameVideo, Line: "wmic path win32_VideoController get /format:list", Timeout: sec(20)},

		Spec{Domain: DomainFirmware, Name: NameBIOS, Line: "wmic bios get /format:list", Timeout: sec(15)},
		Spec{Domain: DomainFirmware, Name: NameBootConfig, Line: "bcdedit /enum all", Timeout: sec(20)},
		Spec{Domain: DomainFirmware, Name: NamePowerCfg, Line: "powercfg /q", Timeout: sec(20)},
		Spec{Domain: DomainFirmware, Name: NameDxDiag, Line: `dxdiag /t "%s"`, Timeout: sec(30), SideFile: DxDiagSideFile},
		Spec{Domain: DomainFirmware, Name: NameFirmwareEvents, Line: mcQuery, Timeout: sec(30)},

		Spec{Domain: DomainStorage, Name: NameDiskDrive, Line: "wmic diskdrive get /format:list", Timeout: sec(30)},
		Spec{Domain: DomainStorage, Name: NamePhysicalDisk, Line: `powershell -Command "Get-PhysicalDisk | Format-List *"`, Timeout: sec(30)},
		Spec{Domain: DomainStorage, Name: NamePartition, Line: `powershell -Command "Get-Partition | Format-List *"`, Timeout: sec(30)},
		Spec{Domain: DomainStorage, Name: NameSmartScan, Line: "smartctl --scan", Timeout: sec(20), Tool: "smartctl"},
		Spec{Domain: DomainStorage, Name: NameSmartHealth, Line: "smartctl -H %s", Timeout: sec(20), Tool: "smartctl"},

		Spec{Domain: DomainPeripherals, Name: NameUSB, Line: usbQuery, Timeout: sec(40)},
		Spec{Domain: DomainPeripherals, Name: NamePnP, Line: `powershell -Command "Get-PnpDevice -PresentOnly | Format-List -Force"`, Timeout: sec(40)},
		Spec{Domain: DomainPeripherals, Name: NameNetAdapter, Line: `powershell -Command "Get-NetAdapter | Format-List *"`, Timeout: sec(30)},
		Spec{Domain: DomainPeripherals, Name: NameLogicalDevice, Line: "wmic path CIM_LogicalDevice get /format:list", Timeout: sec(30)},
		Spec{Domain: DomainPeripherals, Name: NameBluetooth, Line: btQuery, Timeout: sec(20)},
	)
}

// Unix returns the catalogue of Linux inspection tools. Every entry is
// read-only; tools that need root degrade to an error in stderr.
func Unix() *Catalog {
	return NewCatalog(
		Spec{Domain: DomainSystem, Name: NameSystemInfo, Line: "hostnamectl status", Timeout: sec(30), Delimiter: ":"},
		Spec{Domain: DomainSystem, Name: NameTaskList, Line: "ps -eo user,pid,ppid,pcpu,pmem,stat,etime,comm", Timeout: sec(30), Format: parser.FormatFields},
		Spec{Domain: DomainSystem, Name: NameEventSystem, Line: "journalctl -k -n 200 --no-pager", Timeout: sec(40)},
		Spec{Domain: DomainSystem, Name: NameEventApp, Line: "journalctl -p warning -n 200 --no-pager", Timeout: sec(40)},
		Spec{Domain: DomainSystem, Name: NameDriverQuery, Line: "lsmod", Timeout: sec(40)},
		Spec{Domain: DomainSystem, Name: NameServices, Line: "systemctl list-units --type=service --all --no-pager", Timeout: sec(40)},

		Spec{Domain: DomainHardware, Name: NameCPU, Line: "lscpu", Timeout: sec(20), Delimiter: ":"},
		Spec{Domain: DomainHardware, Name: NameBIOS, Line: "dmidecode -t bios", Timeout: sec(20), Delimiter: ":"},
		Spec{Domain: DomainHardware, Name: NameBaseboard, Line: "dmidecode -t baseboard", Timeout: sec(20), Delimiter: ":"},
		Spec{Domain: DomainHardware, Name: NameVideo, Line: "lspci -vmm -d ::0300", Timeout: sec(20), Delimiter: ":"},

		Spec{Domain: DomainFirmware, Name: NameBIOS, Line: "dmidecode -t bios", Timeout: sec(15), Delimiter: ":"},
		Spec{Domain: DomainFirmware, Name: NameBootConfig, Line: "efibootmgr -v", Timeout: sec(20)},
		Spec{Domain: DomainFirmware, Name: NamePowerCfg, Line: "cat /sys/devices/system/cpu/cpu*/cpufreq/scaling_governor", Timeout: sec(20)},
		Spec{Domain: DomainFirmware, Name: NameDxDiag, Line: "lspci -nnk", Timeout: sec(30)},
		Spec{Domain: DomainFirmware, Name: NameFirmwareEvents, Line: "journalctl -k -n 200 --no-pager --grep=microcode", Timeout: sec(30)},

		Spec{Domain: DomainStorage, Name: NameDiskDrive, Line: "lsblk -d -o NAME,MODEL,SERIAL,SIZE,ROTA,TRAN", Timeout: sec(30)},
		Spec{Domain: DomainStorage, Name: NamePhysicalDisk, Line: "lsblk -J -O", Timeout: sec(30)},
		Spec{Domain: DomainStorage, Name: NamePartition, Line: "cat /proc/partitions", Timeout: sec(30)},
		Spec{Domain: DomainStorage, Name: NameSmartScan, Line: "smartctl --scan", Timeout: sec(20), Tool: "smartctl"},
		Spec{Domain: DomainStorage, Name: NameSmartHealth, Line: "smartctl -H %s", Timeout: sec(20), Tool: "smartctl"},

		Spec{Domain: DomainPeripherals, Name: NameUSB, Line: "lsusb", Timeout: sec(40)},
		Spec{Domain: DomainPeripherals, Name: NamePnP, Line: "lspci", Timeout: sec(40)},
		Spec{Domain: DomainPeripherals, Name: NameNetAdapter, Line: "ip -details link show", Timeout: sec(30)},
		Spec{Domain: DomainPeripherals, Name: NameLogicalDevice, Line: "lsblk", Timeout: sec(30)},
		Spec{Domain: DomainPeripherals, Name: NameBluetooth, Line: "bluetoothctl devices", Timeout: sec(20)},
	)
}
