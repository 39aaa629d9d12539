// internal/app/collab/notices.go
package collab

import (
	"fmt"
	"strings"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

// Texts of the automated messages posted into conversation threads.

const defaultCollaborationProject = "General Collaboration"

func interviewScheduledText(iv models.Interview) string {
	topic := iv.Topic
	if topic == "" {
		topic = "Interview"
	}
	return fmt.Sprintf("Interview scheduled: %s on %s at %s.", topic, iv.Date, iv.Time)
}

func hiredText(m models.HiredMember) string {
	return fmt.Sprintf("Congratulations %s! You have been HIRED for %s. Start date: %s.",
		m.Name, m.Project, m.StartDate)
}

func rejectedText(iv models.Interview) string {
	return fmt.Sprintf("Thank you for your time, %s. After careful consideration we are moving forward with other candidates.",
		iv.ParticipantName)
}

func collaborationText(user models.User, m models.HiredMember) string {
	who := strings.TrimSpace(user.Organization)
	if who == "" {
		who = user.Name
	}
	return fmt.Sprintf("Collaboration accepted! %s and %s are now working together on %s.",
		who, m.Name, m.Project)
}
