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

// Package client is the REST client of streamd.
package client

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/algorand/go-streampay/daemon/streamd/api/server/lib/middlewares"
	v1 "github.com/algorand/go-streampay/daemon/streamd/api/server/v1"
	spec "github.com/algorand/go-streampay/daemon/streamd/api/spec/v1"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/node"
	"github.com/algorand/go-streampay/protocol"
)

const (
	authHeader          = middlewares.TokenHeader
	healthCheckEndpoint = "/health"
	maxRawResponseBytes = 50e6
	requestTimeout      = 30 * time.Second
)

// unauthorizedRequestError is generated when we receive 401 error from the server. This error includes the inner error
// as well as the likely parameters that caused the issue.
type unauthorizedRequestError struct {
	errorString string
	apiToken    string
	url         string
}

// Error format an error string for the unauthorizedRequestError error.
func (e unauthorizedRequestError) Error() string {
	return fmt.Sprintf("Unauthorized request to `%s` when using token `%s` : %s", e.url, e.apiToken, e.errorString)
}

// HTTPError is generated when we receive an unhandled error from the server. This error contains the error string.
type HTTPError struct {
	StatusCode  int
	Status      string
	ErrorString string
}

// Error formats an error string.
func (e HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s: %s", e.Status, e.ErrorString)
}

// LedgerError is a rejection reported by the server's ledger. It implements
// ledgercore.KindedError so callers can branch on ledgercore.KindOf.
type LedgerError struct {
	StatusCode int
	ErrorKind  ledgercore.ErrorKind
	Message    string
}

// Error formats an error string.
func (e LedgerError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorKind, e.Message)
}

// Kind implements ledgercore.KindedError.
func (e LedgerError) Kind() ledgercore.ErrorKind {
	return e.ErrorKind
}

// RestClient manages the REST interface for a calling user.
type RestClient struct {
	serverURL url.URL
	apiToken  string
}

// MakeRestClient is the factory for constructing a RestClient for a given endpoint
func MakeRestClient(url url.URL, apiToken string) RestClient {
	return RestClient{
		serverURL: url,
		apiToken:  apiToken,
	}
}

// filterASCII filter out the non-ascii printable characters out of the given input string.
// It's used as a security qualifier before adding network provided data into an error message.
func filterASCII(unfilteredString string) (filteredString string) {
	for i, r := range unfilteredString {
		if int(r) >= 0x20 && int(r) <= 0x7e {
			filteredString += string(unfilteredString[i])
		}
	}
	return
}

// extractError checks if the response signifies an error (for now, StatusCode != 200 or StatusCode != 201).
// If so, it returns the error.
// Otherwise, it returns nil.
func extractError(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}

	errorBuf, _ := io.ReadAll(resp.Body) // ignore returned error
	var errorJSON spec.ErrorResponse
	decodeErr := protocol.DecodeJSON(errorBuf, &errorJSON)

	var errorString string
	if decodeErr == nil {
		errorString = errorJSON.Message
	} else {
		errorString = string(errorBuf)
	}
	errorString = filterASCII(errorString)

	if decodeErr == nil {
		if kind, ok := responseKind(errorJSON); ok {
			return LedgerError{StatusCode: resp.StatusCode, ErrorKind: kind, Message: errorString}
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiToken := resp.Request.Header.Get(authHeader)
		return unauthorizedRequestError{errorString, apiToken, resp.Request.URL.String()}
	}

	return HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, ErrorString: errorString}
}

// responseKind classifies a ledger rejection by its code, falling back to
// the kind name for servers that leave the code out.
func responseKind(resp spec.ErrorResponse) (ledgercore.ErrorKind, bool) {
	if resp.Code != nil {
		return ledgercore.ErrorKind(*resp.Code), true
	}
	if resp.Kind != "" {
		return ledgercore.ParseErrorKind(resp.Kind)
	}
	return 0, false
}

// submitForm is a helper used for submitting (ex.) GETs and POSTs to the server
// if expectNoContent is true, then it is expected that the response received will have a content length of zero
func (client RestClient) submitForm(response interface{}, path string, params interface{}, body []byte, requestMethod string, expectNoContent bool) error {
	var err error
	queryURL := client.serverURL
	queryURL.Path = path

	if params != nil {
		var v url.Values
		v, err = query.Values(params)
		if err != nil {
			return err
		}
		queryURL.RawQuery = v.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(requestMethod, queryURL.String(), bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", v1.MsgpackContentType)
	}

	if path != healthCheckEndpoint && client.apiToken != "" {
		req.Header.Set(authHeader, client.apiToken)
	}

	httpClient := &http.Client{Timeout: requestTimeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}

	// Ensure response isn't too large
	resp.Body = http.MaxBytesReader(nil, resp.Body, maxRawResponseBytes)
	defer resp.Body.Close()

	err = extractError(resp)
	if err != nil {
		return err
	}

	if expectNoContent {
		if resp.ContentLength <= 0 {
			return nil
		}
		return fmt.Errorf("expected empty response but got response of %d bytes", resp.ContentLength)
	}

	dec := protocol.NewJSONDecoder(resp.Body)
	return dec.Decode(response)
}

// get performs a GET request to the specific path against the server
func (client RestClient) get(response interface{}, path string, request interface{}) error {
	return client.submitForm(response, path, request, nil, http.MethodGet, false)
}

// post sends a POST request with a raw msgpack body.
func (client RestClient) post(response interface{}, path string, body []byte) error {
	return client.submitForm(response, path, nil, body, http.MethodPost, false)
}

// HealthCheck does a health check on the potentially running node,
// returning an error if the API is down
func (client RestClient) HealthCheck() error {
	return client.submitForm(nil, healthCheckEndpoint, nil, nil, http.MethodGet, true)
}

// Status retrieves the StatusReport from the running node
func (client RestClient) Status() (response node.StatusReport, err error) {
	err = client.get(&response, "/v1/status", nil)
	return
}

// WaitForRound polls the node until its evaluation round reaches round,
// giving up after waitTime.
func (client RestClient) WaitForRound(round basics.Round, waitTime time.Duration) (status node.StatusReport, err error) {
	timeout := time.After(waitTime)
	for {
		status, err = client.Status()
		if err != nil {
			return
		}

		if status.Round >= round {
			return
		}
		select {
		case <-timeout:
			return node.StatusReport{}, fmt.Errorf("timeout waiting for round %v with round = %v", round, status.Round)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// LatestStreamID returns the id the next opened stream will get.
func (client RestClient) LatestStreamID() (response spec.LatestStreamResponse, err error) {
	err = client.get(&response, "/v1/streams/latest", nil)
	return
}

// StreamInformation gets a stream and its derived amounts.
func (client RestClient) StreamInformation(id streams.StreamID) (response spec.StreamResponse, err error) {
	err = client.get(&response, fmt.Sprintf("/v1/streams/%d", id), nil)
	return
}

// StreamBalance gets the claim of who on a stream.
func (client RestClient) StreamBalance(id streams.StreamID, who basics.Address) (response spec.BalanceResponse, err error) {
	err = client.get(&response, fmt.Sprintf("/v1/streams/%d/balance/%s", id, who), nil)
	return
}

type termsHashParams struct {
	PaymentPerBlock uint64 `url:"payment-per-block"`
	StartBlock      uint64 `url:"start-block"`
	StopBlock       uint64 `url:"stop-block"`
}

// TermsHash asks the node for the digest of proposed terms.
func (client RestClient) TermsHash(id streams.StreamID, paymentPerBlock basics.Units, tf streams.Timeframe) (response spec.TermsHashResponse, err error) {
	params := termsHashParams{
		PaymentPerBlock: paymentPerBlock.Raw,
		StartBlock:      uint64(tf.StartBlock),
		StopBlock:       uint64(tf.StopBlock),
	}
	err = client.get(&response, fmt.Sprintf("/v1/streams/%d/terms-hash", id), params)
	return
}

// AccountInformation gets the external balance of an address.
func (client RestClient) AccountInformation(address basics.Address) (response spec.AccountResponse, err error) {
	err = client.get(&response, fmt.Sprintf("/v1/accounts/%s", address), nil)
	return
}

// SendRawTransaction submits a signed transaction to the node.
func (client RestClient) SendRawTransaction(stxn transactions.SignedTxn) (response spec.TransactionResponse, err error) {
	err = client.post(&response, "/v1/transactions", stxn.Encode())
	return
}
