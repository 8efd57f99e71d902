// Copyright 2025 The claimlog Authors
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

// Package chat simulates a retailer support conversation for
// rehearsing a dispute before making the real call.
//
// Replies come from an OpenAI-compatible endpoint when one is
// configured, with a rule-based local generator as both the fallback
// and the offline default. The local generator classifies the
// utterance's intent and sentiment and picks a templated reply, so a
// dead endpoint degrades the experience but never breaks it.
//
// Exchanges can optionally be recorded into the communications
// collection against the refund or warranty claim being rehearsed.
package chat
