package agent

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
)

const assessmentInstructions = `You are an expert educational assessment specialist.
Your role is to:
1. Analyze student quiz/test responses
2. Identify correct vs incorrect answers
3. Recognize knowledge gaps and misconceptions
4. Measure proficiency in specific topics
5. Calculate accuracy percentages
6. Determine overall skill level (Beginner/Intermediate/Advanced)

Guidelines:
- Be thorough in evaluating understanding
- Identify both conceptual and procedural knowledge gaps
- Provide constructive feedback highlighting both strengths and areas for improvement
- Consider difficulty level when assessing
- Give confidence scores for each topic
- Be encouraging while being honest about areas needing work`

// NewAssessmentAgent builds the agent evaluating student knowledge and
// skill levels.
func NewAssessmentAgent(gen textGenerator, logger *zap.Logger) *Agent {
	return newAgent(promptProfile{
		decisionType: models.DecisionTypeAssessment,
		instructions: assessmentInstructions,
		render:       renderAssessmentPrompt,
	}, gen, logger)
}

func renderAssessmentPrompt(payload any) (string, string, string, error) {
	p, ok := payload.(*dto.AssessmentPayload)
	if !ok {
		return "", "", "", wrongPayload(models.DecisionTypeAssessment)
	}

	difficulty := p.DifficultyLevel
	if difficulty == "" {
		difficulty = "intermediate"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this student assessment:\n\n")
	fmt.Fprintf(&b, "Student: %s\n", p.StudentName)
	fmt.Fprintf(&b, "Subject: %s\n", p.Subject)
	fmt.Fprintf(&b, "Difficulty Level: %s\n", difficulty)
	fmt.Fprintf(&b, "Total Questions: %d\n\n", p.QuestionsCount)
	fmt.Fprintf(&b, "Assessment Data:\n")
	fmt.Fprintf(&b, "- Correct Answers: %d\n", p.CorrectAnswers)
	fmt.Fprintf(&b, "- Incorrect Answers: %d\n", p.IncorrectAnswers)
	fmt.Fprintf(&b, "- Partial Answers: %d\n\n", p.PartialAnswers)
	b.WriteString(`Please provide:
1. Overall accuracy percentage
2. Skill level determination (Beginner/Intermediate/Advanced)
3. Performance breakdown by topic (if applicable)
4. Identified strengths
5. Identified weaknesses and knowledge gaps
6. Confidence scores for each area
7. Misconceptions detected
8. Specific, actionable feedback for each weak area
9. Estimated effort needed to improve
10. Overall assessment summary

Format with clear sections and bullet points.`)

	return b.String(), p.StudentName, p.Subject, nil
}
