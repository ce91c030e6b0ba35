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

// Package session implements the workflow shared by every domain collector.
//
// A collector begins a Session, runs its catalogue commands in order (each
// one appends a RawBlock to the transcript regardless of exit code), parses
// selected outputs into the Summary, wraps optional extractions in Step so a
// failure becomes a "<key>_error" field, and calls Finish to stamp
// elapsed_seconds and persist summary.json and raw.txt:
//
//	s := session.Begin(command.DomainHardware, deps)
//	spec, res := s.Run(ctx, command.NameCPU)
//	s.Summary.Set("cpu", summary.Map(parser.ParseKV(res.Stdout, spec.KVOptions()...)))
//	s.Step("psutil", func() error { ... })
//	return s.Finish(ctx)
package session
