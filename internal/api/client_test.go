// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Get() string { return s.token }

func envelopeJSON(t *testing.T, data interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"data":    data,
		"success": true,
		"message": "ok",
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func newTestClient(serverURL, token string) *Client {
	return NewClient(serverURL, &staticTokens{token: token}).WithRateLimit(0, 0)
}

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write(envelopeJSON(t, &model.LoginResponse{Username: "jdoe", Token: "tok"}))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "aaa.bbb.ccc")
	resp, err := c.Login(context.Background(), model.LoginRequest{Username: "jdoe", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Username != "jdoe" {
		t.Errorf("username = %q", resp.Username)
	}
	if gotAuth != "Bearer aaa.bbb.ccc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write(envelopeJSON(t, &model.LoginResponse{Token: "tok"}))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	if _, err := c.Login(context.Background(), model.LoginRequest{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sawAuth {
		t.Error("Authorization header sent without a session")
	}
}

func TestClient_RequestPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(envelopeJSON(t, []model.PayeeResponse{}))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok")
	if _, err := c.Payees(context.Background(), 42); err != nil {
		t.Fatalf("Payees: %v", err)
	}
	if gotPath != "/api/payees/user/42" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestClient_EnvelopeRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "insufficient funds",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok")
	_, err := c.Withdraw(context.Background(), model.WithdrawalRequest{AccountNo: "ACC1", Amount: 1e9})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestClient_UnauthorizedFiresCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "stale")
	var fired int32
	c.OnSessionExpired(func() { atomic.AddInt32(&fired, 1) })

	_, err := c.Transactions(context.Background(), model.GetTransactionsRequest{AccountNo: "ACC1"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("callback fired %d times, want 1", n)
	}

	// Unsubscribed callback must stay silent
	c.OnSessionExpired(nil)
	c.Transactions(context.Background(), model.GetTransactionsRequest{AccountNo: "ACC1"})
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("callback fired after unsubscribe, count=%d", n)
	}
}

func TestClient_NotFoundNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok")
	_, err := c.Loan(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("404 retried: %d attempts", n)
	}
}

func TestClient_ServerErrorRetriesThenSucceeds(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(envelopeJSON(t, &model.TransactionResponse{NewBalance: 1500}))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok")
	resp, err := c.Deposit(context.Background(), model.DepositRequest{AccountNo: "ACC1", Amount: 500})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if resp.NewBalance != 1500 {
		t.Errorf("new balance = %v", resp.NewBalance)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok").WithMaxRetries(2)
	_, err := c.Loans(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("err = %v, want wrapped 503", err)
	}
}

func TestClient_ContextCancelStopsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(srv.URL, "tok")
	_, err := c.Loans(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestClient_TransferViaBillPayment(t *testing.T) {
	var gotBody model.BillPaymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write(envelopeJSON(t, &model.BillPaymentResponse{BillPaymentNo: "BP-7", Amount: 250, TranNo: "TXN-9"}))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok")
	resp, err := c.PayBill(context.Background(), model.BillPaymentRequest{
		CustomerAccount: "ACC1",
		PayeeAccount:    "ACC2",
		PaymentType:     model.PaymentTypeOnce,
		Amount:          250,
	})
	if err != nil {
		t.Fatalf("PayBill: %v", err)
	}
	if resp.BillPaymentNo != "BP-7" || resp.TranNo != "TXN-9" {
		t.Errorf("response = %+v", resp)
	}
	if gotBody.CustomerAccount != "ACC1" || gotBody.PaymentType != model.PaymentTypeOnce {
		t.Errorf("request body = %+v", gotBody)
	}
}
