// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package constants

const Version = "0.1.0"

const (
	ConnectionModule = "connection"
	GenericModule    = "generic"
	XSetModule       = "xset"
)

const (
	ConnectionCategory = "connection"
	FastCategory       = "fast"
	KeyspaceCategory   = "keyspace"
	ReadCategory       = "read"
	SlowCategory       = "slow"
	WriteCategory      = "write"
	XSetCategory       = "xset"
)

const (
	OkResponse        = "+OK\r\n"
	WrongArgsResponse = "wrong number of arguments"
	SyntaxErrorResponse = "syntax error"
)

const (
	PruningMinScore = "minscore"
	PruningMaxScore = "maxscore"
)
