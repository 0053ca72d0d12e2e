package agent

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
)

const recommendationInstructions = `You are an expert educational advisor and career guidance counselor.
Your role is to:
1. Recommend next topics to study based on progress
2. Suggest proven and effective study techniques
3. Recommend similar or alternative content
4. Find and suggest peer study groups
5. Recommend tools, apps, and resources
6. Provide career path guidance aligned with learning goals

Guidelines:
- Make recommendations based on learning style and preferences
- Suggest tools and techniques with documented effectiveness
- Consider student's career aspirations
- Identify synergies between topics and career paths
- Predict success factors based on data
- Provide multiple options/alternatives
- Explain the 'why' behind recommendations
- Be encouraging and supportive
- Consider time and resource constraints`

// NewRecommendationAgent builds the agent producing personalized study
// suggestions.
func NewRecommendationAgent(gen textGenerator, logger *zap.Logger) *Agent {
	return newAgent(promptProfile{
		decisionType: models.DecisionTypeRecommendation,
		instructions: recommendationInstructions,
		render:       renderRecommendationPrompt,
	}, gen, logger)
}

func renderRecommendationPrompt(payload any) (string, string, string, error) {
	p, ok := payload.(*dto.RecommendationPayload)
	if !ok {
		return "", "", "", wrongPayload(models.DecisionTypeRecommendation)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide personalized learning recommendations for this student:\n\n")
	fmt.Fprintf(&b, "Student: %s\n", p.StudentName)
	fmt.Fprintf(&b, "Subject: %s\n", p.Subject)
	fmt.Fprintf(&b, "Current Level: %s\n", orDefault(p.SkillLevel, "Intermediate"))
	fmt.Fprintf(&b, "Learning Style: %s\n", orDefault(p.LearningStyle, "mixed"))
	fmt.Fprintf(&b, "Weak Areas: %s\n", joinOrNA(p.WeakAreas))
	fmt.Fprintf(&b, "Strong Areas: %s\n", joinOrNA(p.StrongAreas))
	fmt.Fprintf(&b, "Career Interests: %s\n", orDefault(p.CareerInterests, "Not specified"))
	fmt.Fprintf(&b, "Available Time: %d hours/week\n", p.HoursPerWeek)
	fmt.Fprintf(&b, "Previous Attempts: %d\n\n", p.PreviousAssessments)
	b.WriteString(`Please provide:
1. Next topic recommendation (with justification)
2. Why this topic is important
3. Prerequisites check (are prerequisites met?)
4. Recommended study techniques
5. Resource recommendations (courses, books, tools, podcasts)
6. Similar/alternative content and formats
7. Study group recommendations
8. Tool recommendations (practice platforms, visualization, productivity)
9. Career path alignment and industry relevance
10. Success factors, potential challenges, and how to overcome them
11. Timeline and milestones
12. Motivational message

Format with clear sections, specific recommendations, and actionable next steps.`)

	return b.String(), p.StudentName, p.Subject, nil
}
