package agent

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
)

const learningPathInstructions = `You are an expert educational curriculum designer and learning specialist.
Your role is to:
1. Design custom, personalized learning routes for each student
2. Recommend high-quality resources (videos, books, interactive tools)
3. Sequence topics logically from foundational to advanced
4. Estimate realistic time needed for each section
5. Set achievable learning milestones
6. Adapt learning paths based on student progress

Guidelines:
- Personalize based on student's learning style and preferences
- Consider available time and commitment level
- Recommend proven, effective learning resources
- Create achievable milestones to maintain motivation
- Balance challenge with confidence-building
- Include variety in learning methods (videos, practice, theory, projects)
- Build from weakness areas identified in assessment
- Provide clear daily/weekly study recommendations`

// NewLearningPathAgent builds the agent recommending personalized
// curricula.
func NewLearningPathAgent(gen textGenerator, logger *zap.Logger) *Agent {
	return newAgent(promptProfile{
		decisionType: models.DecisionTypeLearningPath,
		instructions: learningPathInstructions,
		render:       renderLearningPathPrompt,
	}, gen, logger)
}

func renderLearningPathPrompt(payload any) (string, string, string, error) {
	p, ok := payload.(*dto.LearningPathPayload)
	if !ok {
		return "", "", "", wrongPayload(models.DecisionTypeLearningPath)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a personalized learning path for this student:\n\n")
	fmt.Fprintf(&b, "Student: %s\n", p.StudentName)
	fmt.Fprintf(&b, "Subject: %s\n", p.Subject)
	fmt.Fprintf(&b, "Current Level: %s\n", orDefault(p.SkillLevel, "Intermediate"))
	fmt.Fprintf(&b, "Goal Level: %s\n", orDefault(p.TargetLevel, "Advanced"))
	fmt.Fprintf(&b, "Learning Style: %s\n", orDefault(p.LearningStyle, "mixed"))
	fmt.Fprintf(&b, "Available Time: %d hours per week\n", p.HoursPerWeek)
	fmt.Fprintf(&b, "Weak Areas: %s\n", joinOrNA(p.WeakAreas))
	fmt.Fprintf(&b, "Strong Areas: %s\n\n", joinOrNA(p.StrongAreas))
	b.WriteString(`Please provide:
1. Recommended topic sequence (from foundational to advanced)
2. Estimated completion timeline
3. Daily/weekly study schedule and time breakdown
4. Resource recommendations:
   - Video tutorials (with specific titles/platforms)
   - Textbooks and study materials
   - Interactive practice tools
   - Real-world projects
5. Weekly milestones and checkpoints
6. Specific practice problems or exercises recommended
7. Difficulty progression strategy
8. Integration opportunities (how topics connect)
9. Review and reinforcement schedule
10. Success checklist and assessment points

Format with clear sections, timelines, and specific resources.`)

	return b.String(), p.StudentName, p.Subject, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return strings.Join(values, ", ")
}
