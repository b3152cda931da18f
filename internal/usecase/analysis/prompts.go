package analysis

import "fmt"

// summaryPrompt asks the LLM for the review summary JSON shape. Due dates
// come back as free text and are normalized afterwards.
func summaryPrompt(transcript string) string {
	return fmt.Sprintf(`You are a meeting analyst. Read the meeting transcript below and return ONLY a JSON object with this exact shape:

{
  "topic_summary": "one paragraph on what the meeting was about",
  "content_summary": "a longer summary of the discussion",
  "decisions": ["each concrete decision as one sentence"],
  "action_items": [
    { "name": "owner name or empty string", "task": "what has to be done", "due": "due date as mentioned, or empty string" }
  ]
}

Do not invent action items. Keep due dates exactly as spoken (for example "next friday", "2025-11-03", "tomorrow").

Transcript:
%s`, transcript)
}

// meetingDatePrompt asks the LLM to estimate when the meeting took place so
// relative due phrases can be anchored to a real date.
func meetingDatePrompt(transcript string) string {
	return fmt.Sprintf(`Read the meeting transcript and estimate the date the meeting actually took place, resolving relative phrases (today, next week, and so on). Return ONLY JSON:

{ "meeting_date": "YYYY-MM-DD" }

Transcript:
%s`, transcript)
}
