// Copyright 2025 The claimlog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package websearch looks up consumer-rights information on the public web.
//
// Queries are scoped to the current year and to UK sites, since the refund
// and warranty rules the tracker cares about are jurisdiction-specific.
// Results come from DuckDuckGo's HTML endpoint, with the instant-answer API
// as a fallback when the HTML page cannot be fetched.
package websearch
