package quizclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/questions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []map[string]any{
				{"id": 1, "label": "Q1", "choices": []string{"a", "b"}, "correctIndex": 1},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	questions, err := client.GetQuestions(context.Background())

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, uint(1), questions[0].ID)
	assert.Equal(t, 1, questions[0].CorrectIndex)
	assert.Equal(t, []string{"a", "b"}, []string(questions[0].Choices))
}

func TestClient_GetSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"appName": "Mon Quiz"})
	}))
	defer server.Close()

	appName, err := NewClient(server.URL).GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Mon Quiz", appName)
}

func TestClient_SubmitAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/attempts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req services.SubmitAttemptRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "marie@example.com", req.UserEmail)

		json.NewEncoder(w).Encode(map[string]any{"id": 12, "durationMs": 5000})
	}))
	defer server.Close()

	score := 4
	total := 5
	resp, err := NewClient(server.URL).SubmitAttempt(context.Background(), &services.SubmitAttemptRequest{
		UserFirstName:     "Marie",
		UserLastName:      "Durand",
		UserEmail:         "marie@example.com",
		Score:             &score,
		TotalQuestions:    &total,
		Answers:           []models.Answer{},
		QuestionsSnapshot: []models.Question{},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(12), resp.ID)
	require.NotNil(t, resp.DurationMs)
	assert.Equal(t, int64(5000), *resp.DurationMs)
}

func TestClient_GetAttemptByEmail(t *testing.T) {
	t.Run("decodes a stored attempt", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/attempts/by-email", r.URL.Path)
			assert.Equal(t, "marie+test@example.com", r.URL.Query().Get("email"))
			json.NewEncoder(w).Encode(map[string]any{
				"attempt": map[string]any{"id": 3, "userEmail": "marie+test@example.com"},
			})
		}))
		defer server.Close()

		attempt, err := NewClient(server.URL).GetAttemptByEmail(context.Background(), "marie+test@example.com")

		require.NoError(t, err)
		require.NotNil(t, attempt)
		assert.Equal(t, uint(3), attempt.ID)
	})

	t.Run("null attempt decodes to nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"attempt": nil})
		}))
		defer server.Close()

		attempt, err := NewClient(server.URL).GetAttemptByEmail(context.Background(), "nobody@example.com")

		require.NoError(t, err)
		assert.Nil(t, attempt)
	})
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"email is required"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetAttemptByEmail(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
