package llm

import (
	"fmt"
	"strings"
)

// BuildTaskPrompt builds the analysis prompt for a single to-do item. The
// catalog is a plain-text description of the available actions and their
// parameters. The completion is expected to loosely follow the template
// shown in the example; the parser downstream treats it as untrusted.
func BuildTaskPrompt(task, catalog string) string {
	var b strings.Builder

	b.WriteString("Given these available actions:\n")
	b.WriteString(catalog)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "For the task: %q, determine the most appropriate action to use.\n", task)
	b.WriteString("I just want these, please don't include anything else.\n")
	b.WriteString("Example:\n")
	b.WriteString("Task: Remind me to \"Do EPAI Assignment by Sunday\" via email. My email is user@example.com\n")
	b.WriteString("Function: remind_me\n")
	b.WriteString("Variables:\n")
	b.WriteString("- subject = \"EPAI Assignment Reminder\"\n")
	b.WriteString("- body = \"Don't forget to do the EPAI Assignment by Sunday.\"\n")
	b.WriteString("- to_email = \"user@example.com\"\n")

	return b.String()
}

// BuildOrganizePrompt asks the model to map each housekeeping task in the
// given directory onto one of the catalog actions, one line per task.
func BuildOrganizePrompt(tasks []string, catalog string) string {
	var b strings.Builder

	b.WriteString("Given these available actions:\n")
	b.WriteString(catalog)
	b.WriteString("\n\n")
	b.WriteString("For each task, tell me which action would be most appropriate and why:\n\n")
	b.WriteString("Tasks:\n")
	for i, task := range tasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, task)
	}
	b.WriteString("\nFormat your response as:\n")
	for i := range tasks {
		fmt.Fprintf(&b, "Task %d: [Task %d] - [action name] - [explanation]\n", i+1, i+1)
	}

	return b.String()
}
