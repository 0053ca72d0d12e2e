package agent

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eduintel/eli-api/internal/dto"
	"github.com/eduintel/eli-api/internal/models"
)

const progressInstructions = `You are an expert learning analytics specialist and educational psychologist.
Your role is to:
1. Track learning metrics and progress over time
2. Analyze improvement trends and patterns
3. Measure goal achievement and milestone completion
4. Identify struggling areas and learning plateaus
5. Recognize and celebrate progress and achievements
6. Suggest targeted interventions and adjustments

Guidelines:
- Use data-driven insights to identify trends
- Celebrate progress while identifying areas for improvement
- Be encouraging and motivational in tone
- Detect early warning signs of struggle
- Suggest specific interventions based on data patterns
- Account for external factors affecting progress
- Provide realistic projections for goal achievement
- Track both quantitative and qualitative improvements`

// NewProgressAgent builds the agent analyzing learning progress over time.
func NewProgressAgent(gen textGenerator, logger *zap.Logger) *Agent {
	return newAgent(promptProfile{
		decisionType: models.DecisionTypeProgress,
		instructions: progressInstructions,
		render:       renderProgressPrompt,
	}, gen, logger)
}

func renderProgressPrompt(payload any) (string, string, string, error) {
	p, ok := payload.(*dto.ProgressPayload)
	if !ok {
		return "", "", "", wrongPayload(models.DecisionTypeProgress)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the learning progress for this student:\n\n")
	fmt.Fprintf(&b, "Student: %s\n", p.StudentName)
	fmt.Fprintf(&b, "Subject: %s\n\n", p.Subject)
	fmt.Fprintf(&b, "Assessment History:\n")
	fmt.Fprintf(&b, "- Initial Score: %.1f\n", p.InitialScore)
	fmt.Fprintf(&b, "- Current Score: %.1f\n", p.CurrentScore)
	fmt.Fprintf(&b, "- Number of Assessments: %d\n", p.AssessmentsCompleted)
	fmt.Fprintf(&b, "- Time Period: %d weeks\n\n", p.StudyWeeks)
	fmt.Fprintf(&b, "Learning Activity:\n")
	fmt.Fprintf(&b, "- Topics Completed: %d\n", p.TopicsCompleted)
	fmt.Fprintf(&b, "- Total Topics: %d\n", p.TotalTopics)
	fmt.Fprintf(&b, "- Practice Hours: %.1f\n", p.PracticeHours)
	fmt.Fprintf(&b, "- Average Daily Study: %d minutes\n\n", p.DailyStudyMinutes)
	fmt.Fprintf(&b, "Milestone Status:\n")
	fmt.Fprintf(&b, "- Completed: %d\n", p.MilestonesCompleted)
	fmt.Fprintf(&b, "- In Progress: %d\n", p.MilestonesInProgress)
	fmt.Fprintf(&b, "- Remaining: %d\n\n", p.MilestonesRemaining)
	b.WriteString(`Please provide:
1. Overall progress score and summary
2. Improvement rate and trajectory analysis
3. Topic-by-topic progress breakdown
4. Strengths and improvements achieved
5. Areas still needing work
6. Progress trends (accelerating/steady/plateauing/declining)
7. Detected learning patterns
8. Milestone achievement analysis
9. Estimated time to goal completion
10. Specific recommendations for optimization
11. Motivational assessment and encouragement
12. Risk factors or areas of concern

Format with clear sections, data-backed insights, and actionable recommendations.`)

	return b.String(), p.StudentName, p.Subject, nil
}
