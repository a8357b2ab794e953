// Copyright 2025 The Nestops Authors
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

package helm

// Release Constants
const (
	// ManagedByValue marks Helm release objects created by nestops so
	// List can filter out foreign releases.
	ManagedByValue = "nestops"

	// DefaultStorageDriver is where Helm stores release state.
	DefaultStorageDriver = "secret"

	// HistoryLimit caps how many revisions History fetches.
	HistoryLimit = 10
)
