package studio

import (
	"fmt"
	"strings"
)

// stored prompts for operations whose input is a file rather than text
const (
	promptRemoveBackground = "Remove background from image"
	promptReviewResume     = "Review the uploaded resume"
)

const (
	articleTemperature   float32 = 0.6
	blogTitleTemperature float32 = 0.7
	resumeTemperature    float32 = 0.7

	blogTitleMaxTokens = 100
	resumeMaxTokens    = 1000
)

// asks for structure rather than a word count so the token budget is respected
func buildArticlePrompt(topic string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a well-structured article about \"%s\".\n", topic)
	b.WriteString("Use headings and short paragraphs.\n")
	b.WriteString("Keep it informative and concise.\n")

	return b.String()
}

func buildResumePrompt(text string) string {
	return "Review the following resume and provide constructive feedback on its strengths, " +
		"weaknesses, and areas for improvement. Resume Content: \n\n" + text
}

func removedObjectPrompt(object string) string {
	return fmt.Sprintf("Removed %s from image", object)
}
