package triage

import "strings"

// EmptyBody stands in for an issue without a body
const EmptyBody = "(empty)"

// Placeholders recognized in custom prompt templates
const (
	PlaceholderTitle             = "{{title}}"
	PlaceholderBody              = "{{body}}"
	PlaceholderExtraInstructions = "{{extra_instructions}}"
)

const promptIntro = "You are a GitHub issue triage assistant. Analyze this issue and classify it."

const classificationRules = `## Classification Rules

**SUPPORT** - Close and redirect:
- "How do I..." / "How to..." questions
- Configuration/setup help requests
- Usage questions without any bug evidence
- Requests for tutorials or examples
- "It doesn't work" without error details or reproduction steps

**BUG** - Keep open:
- Has error messages, stack traces, or logs
- Includes steps to reproduce
- Reports unexpected behavior with evidence
- Mentions regression (worked before, now broken)
- Includes version info and reproduction details

**FEATURE** - Keep open:
- Requests new functionality
- Suggests improvements
- "Would be nice if..."

**UNCLEAR** - Need more info:
- Too vague to classify
- Could be bug or support, needs clarification`

// ResponseFormat closes every built-in prompt
const ResponseFormat = `## Response Format
Respond with ONLY valid JSON (no markdown, no explanation):
{
  "classification": "support" | "bug" | "feature" | "unclear",
  "confidence": "high" | "medium" | "low",
  "reason": "brief explanation (1-2 sentences)",
  "suggestedAction": "close" | "keep" | "needs_info"
}`

// PromptInput is everything the prompt depends on
type PromptInput struct {
	Title             string
	Body              string
	ExtraInstructions string
	CustomPrompt      string
}

// BuildPrompt returns the text sent to the agent. A non-blank custom
// template replaces the built-in one.
func BuildPrompt(in PromptInput) string {
	if custom := strings.TrimSpace(in.CustomPrompt); custom != "" {
		return RenderCustomPrompt(custom, in.Title, in.Body, in.ExtraInstructions)
	}
	return DefaultPrompt(in.Title, in.Body, in.ExtraInstructions)
}

// DefaultPrompt renders the built-in triage prompt
func DefaultPrompt(title, body, extraInstructions string) string {
	var sb strings.Builder

	sb.WriteString(promptIntro)
	sb.WriteString("\n\n## Issue Title\n")
	sb.WriteString(title)
	sb.WriteString("\n\n## Issue Body\n")
	sb.WriteString(bodyOrEmpty(body))
	sb.WriteString("\n\n")
	sb.WriteString(classificationRules)
	sb.WriteString("\n\n")
	if extraInstructions != "" {
		sb.WriteString("## Additional Instructions\n")
		sb.WriteString(extraInstructions)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(ResponseFormat)

	return sb.String()
}

// RenderCustomPrompt replaces every placeholder occurrence, title first,
// then body, then extra instructions.
func RenderCustomPrompt(template, title, body, extraInstructions string) string {
	out := strings.ReplaceAll(template, PlaceholderTitle, title)
	out = strings.ReplaceAll(out, PlaceholderBody, bodyOrEmpty(body))
	return strings.ReplaceAll(out, PlaceholderExtraInstructions, extraInstructions)
}

func bodyOrEmpty(body string) string {
	if body == "" {
		return EmptyBody
	}
	return body
}
