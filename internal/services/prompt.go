package services

import (
	"fmt"
	"strings"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt creates the resume scoring prompt.
func (pb *PromptBuilder) BuildScreeningPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an AI HR Recruiter and Resume Evaluator. Your task is to analyze a resume against a job description and return a structured JSON output.

== INSTRUCTIONS ==
1. **Extract Candidate Details**: From the resume text, extract the candidate's full name and email address. If they are not available, use "N/A".
2. **Score the Resume**: Score the candidate out of 100 based on the following criteria and weights:
   - Domain Experience: 30%%
   - Technical Skills Match: 25%%
   - Summary/Keyword Density: 15%%
   - Job Role Match: 15%%
   - Education Relevance: 15%%
3. **Categorize Domain**: Identify the most relevant job domain from this list: [%s].
4. **Provide a Summary**: Write a concise, one-line comment summarizing the candidate's fit for the role.

== RESPONSE FORMAT ==
Provide your response as a single, valid JSON object with the following keys:
- "name": (string) Candidate's full name.
- "email": (string) Candidate's email address.
- "score": (integer) The final score from 0 to 100.
- "domain": (string) The matched job domain.
- "comment": (string) A one-line summary.

Example:
{
  "name": "John Doe",
  "email": "john.doe@example.com",
  "score": 85,
  "domain": "Information Technology",
  "comment": "Strong candidate with relevant experience in cloud technologies."
}

Resume:
%s

Job Description:
%s`,
		quotedCategoryList(), resumeText, jobDescription)
}

// BuildInvitationPrompt creates the prompt for a personalized interview
// invitation email body.
func (pb *PromptBuilder) BuildInvitationPrompt(candidateName, jobTitle, interviewLink string) string {
	return fmt.Sprintf(
		"Write a professional email to %s informing them they are shortlisted for the position of %s. "+
			"Invite them to attend an AI-powered interview at this link: %s. "+
			"Keep the tone friendly and formal. Sign off as 'HR Team'. "+
			"Return only the email body, no subject line.",
		candidateName, jobTitle, interviewLink)
}

// BuildInterviewSystemPrompt creates the system instruction that drives the
// whole interview conversation.
func (pb *PromptBuilder) BuildInterviewSystemPrompt(candidateName, resumeText string) string {
	return fmt.Sprintf(`You are a professional AI HR Recruiter interviewing %s.
- Start with a warm greeting: "Hi, I'm an AI interviewer. Let's start with a quick introduction about yourself."
- Ask CV-based questions (Work Experience first, then Skills). One question at a time. Ask up to 2 follow-ups per topic if needed.
- Keep each question short enough to be spoken aloud.
- Conclude politely when the conversation has covered the candidate's background.

Candidate's Resume:
%s`, candidateName, resumeText)
}

// BuildReportPrompt creates the final evaluation prompt from the interview
// transcript.
func (pb *PromptBuilder) BuildReportPrompt(candidateName, transcript string) string {
	return fmt.Sprintf(`You are a senior HR Analyst. Based on the following interview transcript with %s, provide a detailed evaluation.

Interview Transcript:
---
%s
---

Your Task:
Provide the final evaluation based on the transcript. Give:
- Strengths: The candidate's key strengths.
- Weaknesses: Their potential weaknesses or areas for improvement.
- Interview Score: A score out of 100.
- Decision: A final decision ("Shortlisted", "Hold", or "Reject").

Output your response as a single, valid JSON object with the keys: "strengths", "weaknesses", "interview_score", "status".`,
		candidateName, transcript)
}

// FormatTranscript renders the conversation history for the report prompt,
// skipping the system instruction.
func FormatTranscript(history []models.Message) string {
	var lines []string
	for _, msg := range history {
		if msg.Role == "system" {
			continue
		}
		role := "interviewer"
		if msg.Role == "user" {
			role = "candidate"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func quotedCategoryList() string {
	quoted := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
