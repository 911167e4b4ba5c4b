package prompt

const commitTemplate = `Please write a commit message for my changes.
Only respond with the commit message. Don't give any notes.
Explain what the changes are and why they were done.
Focus on the most important changes.
Use the present tense.
Use a conventional commit header: type(scope): description.
Ensure the header is at most {{.MaxHeader}} characters.
Hard wrap body lines at {{.MaxBody}} characters.
Do not start any lines with the hash symbol.
{{.Extras}}
Allowed types: {{.Types}}
Scope: {{.Scope}}

Here is my git diff:
{{.DiffNote}}` + "```" + `
{{.Diff}}
` + "```"

const prTemplate = `Generate a pull request title and description for the changes below.
The title must follow the format {{.TitleFormat}} with every placeholder
replaced by a non-empty value, using one of the allowed types: {{.Types}}.
Respond with a single JSON object and no other text, shaped as:
{"title": "<title>", "sections": {"<section name>": "<markdown content>"}}
Required sections, in order: {{.Sections}}.

Additional context:
Title override: {{.TitleHint}}
Body context: {{.Context}}

Changes:
{{.DiffNote}}` + "```" + `
{{.Diff}}
` + "```"

const retryTemplate = `{{.Prompt}}

Your previous attempt was rejected:
` + "```" + `
{{.Previous}}
` + "```" + `
It violated these rules:
{{.Violations}}
Produce a corrected message that fixes every violation.`

const simplifiedDiffNote = "The diff below is a summary: changed file paths with +added/-removed line counts.\n"

const (
	extraScope = `Use the scope "{{.ScopeName}}" unless clearly inapplicable.`
	extraBrief = `Use brief, concise language and respond with the header line only, no body.`
	extraEmoji = `Start the header with exactly one emoji matching the commit type, before the type.`
)
