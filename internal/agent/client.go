package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/pkg/config"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

// GeminiClient is a thin HTTP client for the Gemini generateContent API.
// All four analysis agents share one instance; the client holds no per-call
// state.
type GeminiClient struct {
	cfg    config.GeminiConfig
	client *http.Client
	logger *zap.Logger
}

// NewGeminiClient constructs the client. The configured timeout is a
// backstop; callers bound individual calls through their context.
func NewGeminiClient(cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string {
	return c.cfg.Model
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResp struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one instruction+prompt exchange and returns the model text.
// Context cancellation and transport timeouts map to AGENT_TIMEOUT, every
// other upstream failure to AGENT_FAILURE.
func (c *GeminiClient) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	if instructions != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: instructions}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAgentFailure.Code, appErrors.ErrAgentFailure.Status, "encode agent request")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAgentFailure.Code, appErrors.ErrAgentFailure.Status, "build agent request")
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if timeoutError(ctx, err) {
			return "", appErrors.Wrap(err, appErrors.ErrAgentTimeout.Code, appErrors.ErrAgentTimeout.Status, appErrors.ErrAgentTimeout.Message)
		}
		return "", appErrors.Wrap(err, appErrors.ErrAgentFailure.Code, appErrors.ErrAgentFailure.Status, "agent call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrMsg(resp.Body)
		c.logger.Warn("gemini call failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.cfg.Model),
			zap.Duration("latency", time.Since(start)),
		)
		return "", appErrors.Wrap(
			fmt.Errorf("gemini status=%d msg=%s", resp.StatusCode, msg),
			appErrors.ErrAgentFailure.Code, appErrors.ErrAgentFailure.Status, appErrors.ErrAgentFailure.Message)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAgentFailure.Code, appErrors.ErrAgentFailure.Status, "decode agent response")
	}
	if len(decoded.Candidates) == 0 {
		return "", appErrors.Clone(appErrors.ErrAgentFailure, "agent returned no candidates")
	}

	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", appErrors.Clone(appErrors.ErrAgentFailure, "agent returned empty analysis")
	}

	c.logger.Debug("gemini call completed",
		zap.String("model", c.cfg.Model),
		zap.Duration("latency", time.Since(start)),
	)
	return text.String(), nil
}

func timeoutError(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

func readErrMsg(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var decoded geminiErrorResp
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.Error.Message == "" {
		return strings.TrimSpace(string(raw))
	}
	return decoded.Error.Message
}
