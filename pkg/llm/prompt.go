package llm

import "fmt"

const sentimentSystemPrompt = "You are a helpful assistant that analyzes sentiment in the given text."

// SummaryPrompt asks for a summary of at most maxWords words. The limit is an
// instruction to the model only.
func SummaryPrompt(text string, maxWords int) []Message {
	return []Message{
		{
			Role: RoleSystem,
			Content: fmt.Sprintf("You are a helpful assistant that summarize long texts into text with maximum %d words.",
				maxWords),
		},
		{
			Role: RoleUser,
			Content: fmt.Sprintf("Summarize the following text into a text with maximum %d words, the text is %s",
				maxWords, text),
		},
	}
}

func SentimentPrompt(text string) []Message {
	return []Message{
		{Role: RoleSystem, Content: sentimentSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("Analyze the sentiment of this text: '%s'", text)},
	}
}
