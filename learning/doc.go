// Copyright 2025 Poiesic Systems
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


// Package learning maintains the self-learning term library.
//
// A Learner records each issued search: the full normalized phrase gains 1.0
// frequency and each constituent word of two or more runes gains 0.5. After
// the library statistics are updated, the installed SweepTrigger runs; the
// IntervalTrigger returned by EveryN invokes the Sweeper inline on every
// hundredth recorded search.
//
// A Sweeper removes terms that are both low-frequency and stale, then
// reconciles the stored term count.
package learning
