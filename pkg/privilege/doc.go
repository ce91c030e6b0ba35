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

// Package privilege reports whether the current process runs with
// administrative rights.
//
// On Windows the process token is asked for its elevation state through
// golang.org/x/sys/windows; on Unix an effective uid of 0 counts as
// elevated. The result is informational only: collection never changes
// behaviour based on it, although some commands produce less output
// without elevation.
package privilege
