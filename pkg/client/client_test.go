package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["email"] != "student@advisorhub.app" {
			t.Errorf("email = %q", body["email"])
		}

		json.NewEncoder(w).Encode(LoginResult{
			Token:     "tok-123",
			ExpiresIn: 86400,
			User:      User{Role: "student", Name: "Lan Pham", Email: "student@advisorhub.app"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Login(context.Background(), "student@advisorhub.app", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if result.User.Role != "student" {
		t.Errorf("role = %q, want student", result.User.Role)
	}
	if c.Token() != "tok-123" {
		t.Errorf("client token = %q, want tok-123", c.Token())
	}
}

func TestListQuestionsSendsFiltersAndBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("Authorization = %q", got)
		}

		q := r.URL.Query()
		if q.Get("status") != "pending" || q.Get("category") != "Courses" || q.Get("q") != "elective" {
			t.Errorf("unexpected query: %v", q)
		}

		json.NewEncoder(w).Encode([]Question{
			{ID: 1, Title: "Which electives count?", Status: "pending", Category: "Courses"},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok-abc"))
	questions, err := c.ListQuestions(context.Background(), ListFilter{
		Status:   "pending",
		Category: "Courses",
		Keyword:  "elective",
	})
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != 1 {
		t.Fatalf("questions = %+v", questions)
	}
}

func TestCreateAnswerReturnsRefreshedQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/questions/7/answers" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Question{
			ID:     7,
			Status: "answered",
			AnswerHistory: []AnswerVersion{
				{Version: 1, Content: "First answer"},
				{Version: 2, Content: "Revised answer"},
			},
			LatestAnswer: &AnswerVersion{Version: 2, Content: "Revised answer"},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok-abc"))
	question, err := c.CreateAnswer(context.Background(), 7, "Revised answer", "policy change")
	if err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}

	if question.Status != "answered" {
		t.Errorf("status = %q, want answered", question.Status)
	}
	if len(question.AnswerHistory) != 2 || question.LatestAnswer == nil || question.LatestAnswer.Version != 2 {
		t.Errorf("history = %+v latest = %+v", question.AnswerHistory, question.LatestAnswer)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       string
	}{
		{
			name:       "nested error message wins",
			statusCode: 401,
			body:       `{"success":false,"message":"outer","error":{"code":"AUTH_001","message":"Invalid credentials"}}`,
			want:       "Invalid credentials",
		},
		{
			name:       "top level message as fallback",
			statusCode: 400,
			body:       `{"message":"title cannot be empty"}`,
			want:       "title cannot be empty",
		},
		{
			name:       "structured details do not mask the message",
			statusCode: 400,
			body:       `{"message":"validation failed","error":{"code":"VAL_001","message":"Invalid request format","details":{"field":"title"}}}`,
			want:       "Invalid request format",
		},
		{
			name:       "status text for unparseable body",
			statusCode: 502,
			body:       `<html>bad gateway</html>`,
			want:       "Bad Gateway",
		},
		{
			name:       "status text for empty body",
			statusCode: 500,
			body:       ``,
			want:       "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New(server.URL)
			_, err := c.GetQuestion(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}

			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error type = %T", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if apiErr.Message != tt.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}

func TestLoginPersistsSessionAndNewPicksItUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(LoginResult{
			Token: "tok-777",
			User:  User{Role: "advisor", Name: "Mai Tran", Email: "advisor@advisorhub.app"},
		})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path)

	c := New(server.URL, WithSessionStore(store))
	if _, err := c.Login(context.Background(), "advisor@advisorhub.app", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if session == nil || session.Token != "tok-777" || session.Role != "advisor" {
		t.Fatalf("session = %+v", session)
	}

	// A fresh client over the same store resumes the session
	resumed := New(server.URL, WithSessionStore(store))
	if resumed.Token() != "tok-777" {
		t.Errorf("resumed token = %q, want tok-777", resumed.Token())
	}

	if err := resumed.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if resumed.Token() != "" {
		t.Error("token not cleared on logout")
	}
	if session, _ := store.Load(); session != nil {
		t.Errorf("session survived logout: %+v", session)
	}
}

func TestForgotPasswordReturnsResetToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"message":    "If the email is registered, a reset link has been sent",
			"resetToken": "reset-xyz",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	token, err := c.ForgotPassword(context.Background(), "student@advisorhub.app")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if token != "reset-xyz" {
		t.Errorf("token = %q, want reset-xyz", token)
	}
}
