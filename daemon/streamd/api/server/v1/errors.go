// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package v1

var (
	errFailedToParseAddress      = "failed to parse the address"
	errFailedToParseStreamID     = "failed to parse the stream id"
	errFailedToParseTerms        = "failed to parse the proposed terms"
	errFailedToDecodeTransaction = "failed to decode the signed transaction"
	errFailedLookingUpLedger     = "failed to retrieve information from the ledger"
	errInternalFailure           = "internal failure"
	errServiceShuttingDown       = "operation aborted as server is shutting down"
	errRESTPayloadZeroLength     = "payload was of zero length"
	errRESTPayloadTooLarge       = "payload exceeds the maximum transaction size"
)
