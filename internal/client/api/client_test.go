package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/messages", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"name":"A","subject":"S","message":"secret","revealTime":1700000000}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"response_message":"id-1"}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL+"/", nil).Create(context.Background(), CreateRequest{
		Name: "A", Subject: "S", Message: "secret", RevealTime: 1_700_000_000,
	})
	require.NoError(t, err)
	require.Equal(t, "id-1", id)
}

func TestCreate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"response_message":"Field length exceeded"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Create(context.Background(), CreateRequest{})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Field length exceeded", apiErr.Message)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "a b", r.URL.Query().Get("message_id"))
		_, _ = w.Write([]byte(`{"name":"A","subject":"S","revealTime":1700000000,"messageCreateTime":1600000000.5,"message":null}`))
	}))
	defer srv.Close()

	m, err := New(srv.URL, nil).Get(context.Background(), "a b")
	require.NoError(t, err)
	require.Equal(t, "A", m.Name)
	require.Nil(t, m.Message)
	require.Equal(t, json.Number("1700000000"), m.RevealTime)
	require.Equal(t, json.Number("1600000000.5"), m.CreateTime)
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"name":null,"subject":null,"revealTime":null,"messageCreateTime":null,"message":null,"response_message":"This message does not exist. Invalid message Id"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Get(context.Background(), "x")
	require.EqualError(t, err, "server returned 500: This message does not exist. Invalid message Id")
}

func TestDo_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Get(context.Background(), "x")
	require.ErrorContains(t, err, "decode response (status 200)")
}
