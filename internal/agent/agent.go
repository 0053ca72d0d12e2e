package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/models"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

// Analyzer is the single capability every analysis agent provides. Agents
// are stateless per call; no shared base state exists between them.
type Analyzer interface {
	DecisionType() models.DecisionType
	Analyze(ctx context.Context, payload any) (*models.AnalysisResult, error)
}

// textGenerator abstracts the LLM call so agents are testable without a
// live model endpoint.
type textGenerator interface {
	Generate(ctx context.Context, instructions, prompt string) (string, error)
	Model() string
}

// promptProfile couples an agent's standing instructions with a renderer
// turning a typed payload into the request prompt.
type promptProfile struct {
	decisionType models.DecisionType
	instructions string
	render       func(payload any) (prompt, studentName, subject string, err error)
}

// Agent runs one prompt profile against the shared model client.
type Agent struct {
	profile promptProfile
	gen     textGenerator
	logger  *zap.Logger
}

func newAgent(profile promptProfile, gen textGenerator, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{profile: profile, gen: gen, logger: logger}
}

// DecisionType identifies which analysis this agent produces.
func (a *Agent) DecisionType() models.DecisionType {
	return a.profile.decisionType
}

// Analyze renders the payload into a prompt, invokes the model once, and
// wraps the text into a structured result. No retries: retry policy belongs
// to the caller.
func (a *Agent) Analyze(ctx context.Context, payload any) (*models.AnalysisResult, error) {
	prompt, studentName, subject, err := a.profile.render(payload)
	if err != nil {
		return nil, err
	}

	analysis, err := a.gen.Generate(ctx, a.profile.instructions, prompt)
	if err != nil {
		a.logger.Warn("analysis failed",
			zap.String("decision_type", string(a.profile.decisionType)),
			zap.String("student", studentName),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("analysis completed",
		zap.String("decision_type", string(a.profile.decisionType)),
		zap.String("student", studentName),
	)
	return &models.AnalysisResult{
		DecisionType: a.profile.decisionType,
		StudentName:  studentName,
		Subject:      subject,
		Analysis:     analysis,
		Model:        a.gen.Model(),
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

func wrongPayload(decisionType models.DecisionType) error {
	return appErrors.Clone(appErrors.ErrValidation, "unexpected payload type for "+string(decisionType)+" analysis")
}
