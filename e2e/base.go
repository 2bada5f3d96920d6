// Package e2e runs black-box scenarios against a deployed server.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping e2e scenarios")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Banner prints a colorized header for the scenario step in logs
func (s *BaseSuite) Banner(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Post sends a JSON body and decodes the standard envelope.
func (s *BaseSuite) Post(t *testing.T, path, token string, body any) map[string]any {
	t.Helper()
	return s.request(t, http.MethodPost, path, token, body)
}

func (s *BaseSuite) Get(t *testing.T, path, token string) map[string]any {
	t.Helper()
	return s.request(t, http.MethodGet, path, token, nil)
}

func (s *BaseSuite) Put(t *testing.T, path, token string, body any) map[string]any {
	t.Helper()
	return s.request(t, http.MethodPut, path, token, body)
}

func (s *BaseSuite) request(t *testing.T, method, path, token string, body any) map[string]any {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}

	request, err := http.NewRequest(method, s.Config.ServerAddr+path, &payload)
	s.Require().NoError(err)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("token", token)
	}

	resp, err := s.client.Do(request)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	if s.Config.DebugJSON {
		dump, _ := json.MarshalIndent(decoded, "", "  ")
		t.Logf("%s %s -> %d\n%s", method, path, resp.StatusCode, dump)
	}
	return decoded
}

// Dial opens the live connection for the given token.
func (s *BaseSuite) Dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(s.Config.ServerAddr, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
