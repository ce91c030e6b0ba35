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

// Package command runs the diagnostic command catalogue.
//
// A Spec names a literal command line, its timeout and how its output is
// read. ShellRunner executes specs through the host shell (cmd /C on
// Windows, /bin/sh -c elsewhere) and always returns a Result: a timeout or a
// failure to start yields RC -1 with the reason in Stderr, while a non-zero
// exit is an ordinary completion.
//
// Usage:
//
//	r := command.NewShellRunner(command.WithLogger(logger))
//	spec, _ := command.DefaultCatalog().Lookup(command.DomainSystem, command.NameTaskList)
//	res := r.Run(ctx, spec)
//	if res.RunnerFailed() {
//	    // res.Stderr explains why
//	}
//
// Output is decoded with Decoder: UTF-16 with a byte order mark is honoured,
// valid UTF-8 is kept verbatim, and anything else goes through the platform
// fallback code page.
//
// Two catalogues ship with the package: Windows (wmic, PowerShell, wevtutil
// and friends) and Unix (hostnamectl, ps, journalctl, lsblk, ...). Both
// define the same logical names so collectors are platform-neutral.
package command
