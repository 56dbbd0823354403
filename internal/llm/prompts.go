package llm

const correctInstruction = "Correct any spelling errors in the following text without changing the grammar or adding or removing any words. " +
	"Format the text using HTML tags to identify paragraphs, new lines, bullet points, headings, and subheadings. " +
	"Wherever changes were made to the text put a red font color html tag and styling. Return the formatted text in HTML format:"

const evaluatePreamble = `Evaluate the following descriptive answer based on the given criteria. Provide the feedback in two formats: textual and scores. The textual feedback should be detailed, explaining what was good, what wasn't good, and what can be improved, with examples if applicable. Be strict and detailed in your feedback. The scores should follow the provided marking scheme, and do not give scores more than 75%.`

const evaluateRubric = `Instructions/Parameters for textual feedback:

1. Understand the Question: Deciphering the demand of the question.

2. Word Limit: Should not be more than 20% more or less than the word limit indicated.

3. Structure: The answer should be well-structured, generally following an introduction-body-conclusion format.

4. Introduction: A brief introduction of the topic or defining the terms involved in the question. Present facts/data from authentic sources. Should be 10-15% of word limit.

5. Body: The main discussion on the question. Write the answer in point format. Highlight the main keywords. Substantiate points with facts/data/examples wherever possible or required. Should be 70-80% of word limit.

6. Conclusion: Provide a way forward by highlighting the issue or providing a solution. Highlight government initiatives, legislation, programs, or civil society initiatives. Should be 10-15% of word limit.

7. Content: Ensure the content is factually correct and up-to-date. Backed by relevant data if needed. For subjective questions, consider multiple perspectives. Include government-released data/facts and government schemes wherever possible.

8. Language: The language should be simple, clear, and grammatically correct.

9. Presentation: Present points logically and coherently. Ensure a smooth flow of ideas. Use tables/flowcharts wherever applicable to enhance understanding and presentation.

Instructions/Parameters for Marking Scheme (out of 100%):

• Understanding of the Question (10%): Correct interpretation of the question and addressing all parts.

• Content (40%): Relevance, depth, and breadth of knowledge. Inclusion of facts, examples, and case studies. Accuracy and up-to-date information.

• Structure and Organization (20%): Logical flow of ideas. Clear introduction, body, and conclusion. Effective use of paragraphs and subheadings. Coherence and connectivity between points.

• Analysis and Argumentation (20%): Critical analysis and reasoning. Balanced and objective viewpoints. Effective use of arguments to support the answer. Addressing counterarguments where relevant.

• Language and Expression (10%): Clarity and conciseness. Proper grammar, spelling, and punctuation. Appropriate use of technical terms. Professional and formal tone.

Also, provide three points for improvement mainly on structure and organisation and content, each point should be substantiated with examples and three reading material links on the topic. Provide feedback as key-value pairs in HTML format.

Example format:
{
    "Feedback": "",
    "Scores": "",
    "Improvement": "",
    "Links": ""
}`

// evaluateInstruction embeds the question between the preamble and the rubric.
func evaluateInstruction(question string) string {
	return evaluatePreamble + "\n\nQuestion: " + question + "\n\n\n" + evaluateRubric
}
