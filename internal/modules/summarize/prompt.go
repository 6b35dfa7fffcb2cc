package summarize

import (
	"fmt"
	"strings"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	maxCaptionsLen    = 100000

	defaultTitle       = "No title available"
	defaultDescription = "No description available"
)

const generatorSystemPrompt = `You are an expert video content analyst.

Your task is to analyze the provided video information, including the title, description, and full transcript captions, and generate a comprehensive content summary in JSON format. Your output must contain the following components:

1. Outline with Timestamps
   - Identify the main sections and key ideas of the video.
   - Each item must include a "timestamp" in "HH:MM:SS" format and a brief "topic" description. The topic must be written entirely in the output language (%[1]s) and must be concise (max 100 characters).
   - Summarize content blocks, not individual sentences.
   - Target 5 to 15 items; do not exceed 20.
   - Exclude all introductory remarks, greetings, audience engagement (e.g., likes/subscribes), sponsor mentions, and closing summaries.
   - Group temporally adjacent or topically related content under a single outline point when appropriate.
   - No duplicate timestamps allowed.

2. Summary
   - Write a concise and professional summary of the video's core content, structured by themes or topics, not by time.
   - Use formal, factual, and objective language.
   - Do not reference the video itself or its structure (e.g., "the video explains..." or "in the beginning...").
   - If the speaker expresses personal viewpoints or opinions, summarize them clearly and distinguish them from objective facts, using phrases like "The speaker argues that..." or "According to the speaker...".

3. Keywords
   - Extract 1 to 3 high-value keywords that best represent the core themes of the video.
   - Use lowercase unless the keyword is a proper noun.

4. Language Compliance
   - All content (outline, summary, keywords) must be written in the specified output language: %[1]s.
   - The structure and field names in the JSON must remain in English.

Return your result in the following JSON structure only, without any additional commentary or text:

` + "```json" + `
{
  "outline": [
    { "timestamp": "HH:MM:SS", "topic": "Brief description of the section" }
  ],
  "summary": "Comprehensive summary of the video content.",
  "keywords": ["keyword1", "keyword2", "keyword3"],
  "language": "Language used in the content above"
}
` + "```"

const summaryPromptTemplate = `You are tasked with summarizing a YouTube video using the transcript captions provided below.

VIDEO TITLE:
%s

VIDEO DESCRIPTION:
%s

CAPTIONS:
%s

OUTPUT CONTENT LANGUAGE:
%s

Instructions:
- Generate the entire summary content in the specified language, including all outline topics.
- Follow the JSON output format strictly as described in the system message.
- Do not introduce any content not derived from the captions.
- Maintain a professional tone, use concise and accurate language, and do not omit important details.
- Do not include any introductory or trailing text; only the JSON object is expected in your final output.`

const retryPromptTemplate = `Your previous summary did not pass validation. Fix every reported issue and return a corrected JSON object only.

VALIDATION REPORT:
%s

Remember: exactly the fields "outline", "summary", "keywords", "language"; all content in %s; JSON only.`

// SystemPrompt renders the generator role instructions for a target language.
func SystemPrompt(targetLanguage string) string {
	return fmt.Sprintf(generatorSystemPrompt, targetLanguage)
}

// BuildPrompt renders the initial user message. Missing title or description
// fall back to placeholders; missing captions or language are errors.
func BuildPrompt(req SummaryRequest) (string, error) {
	captions := RenderCaptions(req.Captions)
	if strings.TrimSpace(captions) == "" {
		return "", &InvalidRequestError{Field: "captions"}
	}
	if strings.TrimSpace(req.TargetLanguage) == "" {
		return "", &InvalidRequestError{Field: "target language"}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultDescription
	}

	title = truncate(title, maxTitleLen)
	description = truncate(description, maxDescriptionLen)
	captions = truncate(captions, maxCaptionsLen)

	return fmt.Sprintf(summaryPromptTemplate, title, description, captions, req.TargetLanguage), nil
}

// BuildRetryPrompt embeds a validation report so the next draft can
// self-correct.
func BuildRetryPrompt(outcome ValidationOutcome, targetLanguage string) string {
	return fmt.Sprintf(retryPromptTemplate, outcome.Report(), targetLanguage)
}

// truncate limits s to at most limit characters, never splitting a rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
