package study

import (
	"fmt"
	"strings"
	"time"
)

const chatSystemPrompt = `You are a helpful study assistant. Answer questions clearly and concisely based on academic subjects. If you don't know the answer, politely state that you cannot assist with that specific query.`

func buildPlanPrompt(subject string, examDate, today time.Time, weeklyHours int, notes string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are an expert study planner. Create a detailed, day-by-day study plan for the subject %q.\n", subject))
	b.WriteString(fmt.Sprintf("Today is %s. The exam is on %s.\n", today.Format(DateLayout), examDate.Format(DateLayout)))
	b.WriteString(fmt.Sprintf("The student has approximately %d hours available per week.\n", weeklyHours))
	writeNotes(&b, notes)
	b.WriteString(`
Return an object with a "plan" array. Each entry has "day" (number), "date" (YYYY-MM-DD), "topic" (string) and "activities" (array of strings).
The plan must start today and end before the exam date.`)

	return b.String()
}

func buildAnalysisPrompt(notes string) string {
	var b strings.Builder
	b.WriteString("Analyze the following study material and extract the key concepts and a list of subtopics.\n")
	writeNotes(&b, notes)
	b.WriteString(`
Return an object with "keyConcepts" (array of strings) and "subtopics" (array of strings).`)
	return b.String()
}

func buildFlashcardsPrompt(notes string) string {
	var b strings.Builder
	b.WriteString("Generate 5-10 flashcards (question/answer pairs) from the following study material.\n")
	writeNotes(&b, notes)
	b.WriteString(`
Return an object with a "flashcards" array. Each entry has "question" (string) and "answer" (string).`)
	return b.String()
}

func buildQuizPrompt(notes string) string {
	var b strings.Builder
	b.WriteString("Generate 10 multiple-choice quiz questions based on the following study material. ")
	b.WriteString("Each question should have 4 options, only one of which is correct. Provide an explanation for the correct answer.\n")
	writeNotes(&b, notes)
	b.WriteString(`
Return an object with a "questions" array. Each entry has "question" (string), "options" (array of 4 strings), "correctAnswerIndex" (number, 0-3) and "explanation" (string).`)
	return b.String()
}

func writeNotes(b *strings.Builder, notes string) {
	b.WriteString("\nStudy material:\n```\n")
	b.WriteString(notes)
	b.WriteString("\n```\n")
}
