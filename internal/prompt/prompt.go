// Package prompt assembles the conversation sent to the model for one
// question.
package prompt

import "fmt"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Turn struct {
	Role Role
	Text string
}

// Conversation is ordered; the model sees the turns in slice order.
type Conversation []Turn

const instructions = `You are an agent that helps students with course registration at Georgia Tech. You can query a SQLite database of the sections available for registration, and your job is to write one query against it that answers the student's question.

Be very selective about the columns you select: only include what is needed to answer the question. Always include the CRN when it makes sense to. Do NOT include enrollment information (enrollment, seats, waitlist counts) unless the student asks for it.

Assume the student is enrolled at the Atlanta campus ('Georgia Tech-Atlanta *') and is only interested in sections they can take in person.

When a student refers to a course like 'CS 1331', they mean subject 'CS' and course number '1331'. When they refer to 'CS 8803 ANI', they mean the 'ANI' section of subject 'CS', number '8803'.

Here is the schema of the database:
` + "```sql" + `
%s
` + "```" + `

The next message is a question from a student. Read it carefully:`

const formatDirective = `Write a single SQL query that answers the question above. Think carefully before responding. Respond ONLY with the text of the SQL query and nothing else: no explanation, no commentary.`

// Build returns the three turns for question: instructions carrying the
// schema descriptor, the question verbatim, then the output-format directive.
// The question is not validated; an empty one fails later, at execution.
func Build(schema, question string) Conversation {
	return Conversation{
		{Role: RoleSystem, Text: fmt.Sprintf(instructions, schema)},
		{Role: RoleUser, Text: question},
		{Role: RoleSystem, Text: formatDirective},
	}
}
