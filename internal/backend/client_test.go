package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tapcard/internal/config"
	"tapcard/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zap.NewNop())
	return c, &hits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetCard_Found(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/card/ark001", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"username":     "ark001",
				"isActivated":  true,
				"redirect_url": "https://a.com",
				"taps_count":   12,
			},
		})
	})

	card, err := c.GetCard(context.Background(), "ark001")
	require.NoError(t, err)
	assert.True(t, card.IsActivated)
	assert.Equal(t, "https://a.com", card.Redirect())
	assert.EqualValues(t, 12, card.TapsCount)
}

func TestGetCard_Classification(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantOutcome Outcome
		wantMessage string
	}{
		{
			name: "404 without body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantOutcome: OutcomeNotFound,
		},
		{
			name: "404 with json body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Card not found"})
			},
			wantOutcome: OutcomeRejected,
			wantMessage: "Card not found",
		},
		{
			name: "200 success false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"success": false})
			},
			wantOutcome: OutcomeRejected,
		},
		{
			name: "500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "db down"})
			},
			wantOutcome: OutcomeUnavailable,
		},
		{
			name: "malformed 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>proxy</html>"))
			},
			wantOutcome: OutcomeUnavailable,
		},
		{
			name: "success without data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"success": true})
			},
			wantOutcome: OutcomeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			_, err := c.GetCard(context.Background(), "ghost")
			ce, ok := AsCallError(err)
			require.True(t, ok, "expected CallError, got %v", err)
			assert.Equal(t, tt.wantOutcome, ce.Outcome)
			assert.Equal(t, "get_card", ce.Op)
			assert.Equal(t, tt.wantMessage, ce.Message)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, zap.NewNop())
	_, err := c.GetCard(context.Background(), "slow")
	ce, ok := AsCallError(err)
	require.True(t, ok)
	assert.Equal(t, OutcomeUnavailable, ce.Outcome)
	assert.Equal(t, "timeout", ce.Detail)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(config.BackendConfig{BaseURL: addr, Timeout: time.Second}, zap.NewNop())
	_, err := c.GetCard(context.Background(), "ark001")
	ce, ok := AsCallError(err)
	require.True(t, ok)
	assert.Equal(t, OutcomeUnavailable, ce.Outcome)
	assert.Equal(t, "connection", ce.Detail)
}

func TestActivateCard_SendsBearerAndBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/card/activate", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ark001", body["card_id"])
		assert.Equal(t, "https://a.com", body["redirect_url"])
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "activated"})
	})

	msg, err := c.ActivateCard(context.Background(), "tok", "ark001", "https://a.com")
	require.NoError(t, err)
	assert.Equal(t, "activated", msg)
}

func TestActivateCard_MissingSuccessFlagIsNotSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
	})

	_, err := c.ActivateCard(context.Background(), "tok", "ark001", "https://a.com")
	ce, ok := AsCallError(err)
	require.True(t, ok)
	assert.Equal(t, OutcomeRejected, ce.Outcome)
}

func TestUpdateRedirect_UsesPatch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/card/update", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	_, err := c.UpdateRedirect(context.Background(), "tok", "https://y.com")
	require.NoError(t, err)
}

func TestListUserCards(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/card/user/cards", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"username": "a_1", "isActivated": true}, {"username": "b_2"}},
		})
	})

	cards, err := c.ListUserCards(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "a_1", cards[0].Username)
}

func TestCreateOrder(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var o model.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&o))
		assert.Equal(t, "NGN", o.Currency)
		writeJSON(w, http.StatusCreated, map[string]any{"paymentUrl": "https://pay.example/x"})
	})

	conf, err := c.CreateOrder(context.Background(), model.Order{Currency: "NGN"})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/x", conf.PaymentURL)
}

func TestClient_CanceledContextSendsNothing(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ValidateDiscount(ctx, "FREE")
	ce, ok := AsCallError(err)
	require.True(t, ok)
	assert.Equal(t, OutcomeUnavailable, ce.Outcome)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestClient_UnencodablePayloadIsCallError(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	_, err := c.doMessage(context.Background(), "update_redirect", http.MethodPatch, "/api/card/redirect", "tok",
		map[string]any{"url": make(chan int)})
	ce, ok := AsCallError(err)
	require.True(t, ok)
	assert.Equal(t, OutcomeUnavailable, ce.Outcome)
	assert.Equal(t, "bad request", ce.Detail)
	assert.Error(t, ce.Unwrap())
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}
