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

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/algorand/go-streampay/config"
	"github.com/algorand/go-streampay/crypto"
	"github.com/algorand/go-streampay/daemon/streamd/api/client"
	"github.com/algorand/go-streampay/daemon/streamd/api/server/lib/middlewares"
	"github.com/algorand/go-streampay/data/basics"
	"github.com/algorand/go-streampay/data/bookkeeping"
	"github.com/algorand/go-streampay/data/streams"
	"github.com/algorand/go-streampay/data/transactions"
	"github.com/algorand/go-streampay/ledger/ledgercore"
	"github.com/algorand/go-streampay/logging"
	"github.com/algorand/go-streampay/node"
	"github.com/algorand/go-streampay/protocol"
	"github.com/algorand/go-streampay/util/metrics"
	"github.com/algorand/go-streampay/util/tokens"
)

var (
	senderKey    = crypto.GenerateSignatureSecrets(crypto.Seed{1})
	recipientKey = crypto.GenerateSignatureSecrets(crypto.Seed{2})
	strangerKey  = crypto.GenerateSignatureSecrets(crypto.Seed{3})
	sender       = basics.Address(senderKey.SignatureVerifier)
	recipient    = basics.Address(recipientKey.SignatureVerifier)
	stranger     = basics.Address(strangerKey.SignatureVerifier)
)

const testGenesisID = "resttest-v1"

type testServer struct {
	*httptest.Server
	node   *node.StreamNode
	client client.RestClient
	token  string
	reg    *metrics.Registry
}

func makeTestServer(t *testing.T) testServer {
	genesis := bookkeeping.Genesis{
		SchemaID: "v1",
		Network:  "resttest",
		Round:    10,
		Allocation: []bookkeeping.GenesisAllocation{
			{Address: sender, Balance: basics.Units{Raw: 1000}},
		},
	}
	cfg := config.GetDefaultLocal()
	cfg.StoreBackend = "memory"

	reg := metrics.MakeRegistry()
	log := logging.TestingLog(t)
	n, err := node.MakeStreamNode(log, t.TempDir(), cfg, genesis, reg)
	require.NoError(t, err)
	t.Cleanup(n.Stop)

	token := tokens.GenerateAPIToken()
	e := NewRouter(log, n, make(chan struct{}), token, reg)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return testServer{Server: srv, node: n, client: client.MakeRestClient(*u, token), token: token, reg: reg}
}

func header(typ protocol.TxType, snd basics.Address) transactions.Transaction {
	return transactions.Transaction{
		Type:   typ,
		Header: transactions.Header{Sender: snd, FirstValid: 10, LastValid: 100, GenesisID: testGenesisID},
	}
}

func openTxn(deposit uint64) transactions.SignedTxn {
	tx := header(protocol.OpenStreamTx, sender)
	tx.Recipient = recipient
	tx.Deposit = basics.Units{Raw: deposit}
	tx.PaymentPerBlock = basics.Units{Raw: 1}
	tx.Timeframe = streams.MakeTimeframe(10, 60)
	return tx.Sign(senderKey)
}

func callTxn(typ protocol.TxType, key *crypto.SignatureSecrets, id streams.StreamID, amount uint64) transactions.SignedTxn {
	tx := header(typ, basics.Address(key.SignatureVerifier))
	tx.StreamID = id
	tx.Amount = basics.Units{Raw: amount}
	return tx.Sign(key)
}

func requireLedgerKind(t *testing.T, err error, kind ledgercore.ErrorKind, status int) {
	t.Helper()
	var lerr client.LedgerError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, kind, lerr.Kind())
	require.Equal(t, status, lerr.StatusCode)
}

func TestRoute(t *testing.T) {
	e := echo.New()
	registerHandlers(e, nil)

	func() {
		path := "/v1/streams/latest"
		ctx := e.NewContext(nil, nil)
		e.Router().Find(http.MethodGet, path, ctx)
		require.Equal(t, path, ctx.Path())
	}()

	func() {
		path := "/v1/streams/7/balance/some-address"
		ctx := e.NewContext(nil, nil)
		e.Router().Find(http.MethodGet, path, ctx)
		require.Equal(t, "/v1/streams/:id/balance/:address", ctx.Path())
		require.Equal(t, "7", ctx.Param("id"))
		require.Equal(t, "some-address", ctx.Param("address"))
	}()
}

func TestStreamLifecycleOverREST(t *testing.T) {
	ts := makeTestServer(t)
	c := ts.client

	require.NoError(t, c.HealthCheck())

	status, err := c.Status()
	require.NoError(t, err)
	require.Equal(t, testGenesisID, status.GenesisID)
	require.Equal(t, basics.Round(10), status.Round)

	latest, err := c.LatestStreamID()
	require.NoError(t, err)
	require.Equal(t, streams.StreamID(0), latest.StreamID)

	resp, err := c.SendRawTransaction(openTxn(50))
	require.NoError(t, err)
	require.Equal(t, protocol.OpenStreamTx, resp.Receipt.Type)
	require.Equal(t, streams.StreamID(0), resp.Receipt.StreamID)
	require.Equal(t, openTxn(50).ID().String(), resp.TxID)

	info, err := c.StreamInformation(0)
	require.NoError(t, err)
	require.Equal(t, sender, info.Stream.Sender)
	require.Equal(t, recipient, info.Stream.Recipient)
	require.Equal(t, uint64(50), info.Stream.Balance.Raw)
	require.Equal(t, uint64(0), info.Vested.Raw)
	require.Equal(t, uint64(0), info.Excess.Raw)

	bal, err := c.StreamBalance(0, sender)
	require.NoError(t, err)
	require.Equal(t, uint64(50), bal.Balance.Raw)

	acct, err := c.AccountInformation(sender)
	require.NoError(t, err)
	require.Equal(t, uint64(950), acct.Amount.Raw)

	// renegotiate to a shorter window with the recipient's consent
	newTF := streams.MakeTimeframe(10, 40)
	hash, err := c.TermsHash(0, basics.Units{Raw: 1}, newTF)
	require.NoError(t, err)
	require.Equal(t, streams.HashTerms(0, basics.Units{Raw: 1}, newTF).String(), hash.Hash)
	require.Equal(t, uint64(0), hash.BlockDelta)

	update := header(protocol.UpdateStreamTx, sender)
	update.StreamID = 0
	update.PaymentPerBlock = basics.Units{Raw: 1}
	update.Timeframe = newTF
	update.Signer = recipient
	update.SignerSig = streams.Terms{StreamID: 0, PaymentPerBlock: basics.Units{Raw: 1}, Timeframe: newTF}.Sign(recipientKey)
	_, err = c.SendRawTransaction(update.Sign(senderKey))
	require.NoError(t, err)

	resp, err = c.SendRawTransaction(callTxn(protocol.RefundStreamTx, senderKey, 0, 0))
	require.NoError(t, err)
	require.Equal(t, uint64(20), resp.Receipt.Amount.Raw)

	latest, err = c.LatestStreamID()
	require.NoError(t, err)
	require.Equal(t, streams.StreamID(1), latest.StreamID)
}

func TestErrorMapping(t *testing.T) {
	ts := makeTestServer(t)
	c := ts.client

	_, err := c.SendRawTransaction(openTxn(50))
	require.NoError(t, err)

	_, err = c.StreamInformation(9)
	requireLedgerKind(t, err, ledgercore.NotFound, http.StatusNotFound)

	_, err = c.SendRawTransaction(callTxn(protocol.WithdrawStreamTx, strangerKey, 0, 0))
	requireLedgerKind(t, err, ledgercore.Unauthorized, http.StatusForbidden)

	_, err = c.SendRawTransaction(callTxn(protocol.RefuelStreamTx, senderKey, 0, 5000))
	requireLedgerKind(t, err, ledgercore.InsufficientFunds, http.StatusPaymentRequired)

	_, err = c.SendRawTransaction(callTxn(protocol.RefuelStreamTx, senderKey, 0, 0))
	requireLedgerKind(t, err, ledgercore.InvalidArgument, http.StatusBadRequest)

	tf := streams.MakeTimeframe(10, 40)
	forged := header(protocol.UpdateStreamTx, sender)
	forged.PaymentPerBlock = basics.Units{Raw: 1}
	forged.Timeframe = tf
	forged.Signer = recipient
	forged.SignerSig = streams.Terms{PaymentPerBlock: basics.Units{Raw: 1}, Timeframe: tf}.Sign(strangerKey)
	_, err = c.SendRawTransaction(forged.Sign(senderKey))
	requireLedgerKind(t, err, ledgercore.InvalidSignature, http.StatusUnauthorized)

	// the same signed transaction twice
	_, err = c.SendRawTransaction(openTxn(50))
	var herr client.HTTPError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, http.StatusConflict, herr.StatusCode)

	_, err = c.StreamBalance(0, stranger)
	require.NoError(t, err)
}

func TestBadRequests(t *testing.T) {
	ts := makeTestServer(t)

	get := func(path string) (int, string) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set(middlewares.TokenHeader, ts.token)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return res.StatusCode, string(body)
	}

	code, body := get("/v1/streams/abc")
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, body, "failed to parse the stream id")

	code, _ = get("/v1/accounts/not-an-address")
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = get("/v1/streams/0/terms-hash?payment-per-block=1&start-block=3")
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = get("/v1/no/such/route")
	require.Equal(t, http.StatusNotFound, code)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/transactions", strings.NewReader(""))
	require.NoError(t, err)
	req.Header.Set(middlewares.TokenHeader, ts.token)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJSONSubmission(t *testing.T) {
	ts := makeTestServer(t)

	stxn := openTxn(50)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/transactions", strings.NewReader(string(protocol.EncodeJSON(&stxn))))
	require.NoError(t, err)
	req.Header.Set(middlewares.TokenHeader, ts.token)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	_, err = ts.client.StreamInformation(0)
	require.NoError(t, err)
}

func TestAuthAndMetrics(t *testing.T) {
	ts := makeTestServer(t)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	anonymous := client.MakeRestClient(*u, "")
	require.NoError(t, anonymous.HealthCheck())
	_, err = anonymous.Status()
	require.Error(t, err)
	require.Contains(t, err.Error(), middlewares.InvalidTokenMessage)

	_, err = ts.client.Status()
	require.NoError(t, err)

	res, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `streampay_rest_requests_total{code="200",route="/v1/status"} 1`)
	require.Contains(t, string(body), `streampay_rest_requests_total{code="401",route="/v1/status"} 1`)
}
