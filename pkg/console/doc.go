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

// Package console renders operator-facing run progress: the banner, the
// privilege notice, one line per domain start and finish, and the final
// panel pointing at the artifact folders.
//
// Colour comes from fatih/color and is enabled only when the output is a
// terminal (go-isatty). Nop implements Renderer for quiet runs.
package console
