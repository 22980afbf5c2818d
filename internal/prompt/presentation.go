package prompt

import (
	"fmt"
	"strings"
	"time"
)

// languageNames maps BCP-47-ish codes from the client to the names the model
// follows best. Unknown codes pass through unchanged.
var languageNames = map[string]string{
	"en-US": "English (US)",
	"pt":    "Portuguese",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"zh":    "Chinese",
	"ru":    "Russian",
	"hi":    "Hindi",
	"ar":    "Arabic",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Outline asks for a presentation outline: a <TITLE> tag followed by markdown
// topics with 2-3 bullets each.
func Outline(topic string, numSlides int, language string, now time.Time) string {
	return fmt.Sprintf(`Given the following presentation topic and requirements, generate a structured outline with %d main topics in markdown format.
The outline should be in %s language and it very important.

Current Date: %s
Topic: %s

First, generate an appropriate title for the presentation, then create exactly %d main topics that would make for an engaging and well-structured presentation.

Format the response starting with the title in XML tags, followed by markdown content with each topic as a heading and 2-3 bullet points.

Example format:
<TITLE>Your Generated Presentation Title Here</TITLE>

# First Main Topic
- Key point about this topic
- Another important aspect
- Brief conclusion or impact

# Second Main Topic
- Main insight for this section
- Supporting detail or example
- Practical application or takeaway

Make sure the topics:
1. Flow logically from one to another
2. Cover the key aspects of the main topic
3. Are clear and concise
4. Are engaging for the audience
5. ALWAYS use bullet points (not paragraphs) and format each point as "- point text"
6. Do not use bold, italic or underline
7. Keep each bullet point brief - just one sentence per point
8. Include exactly 2-3 bullet points per topic (not more, not less)

Return ONLY the formatted outline with title in XML tags, nothing else.`,
		numSlides, languageName(language), now.Format("Monday, January 2, 2006"), topic, numSlides)
}

// Presentation asks for the full slide deck as a JSON array.
func Presentation(title, userPrompt string, outline []string, language, tone string, now time.Time) string {
	return fmt.Sprintf(`You are an expert presentation designer. Your task is to create an engaging presentation in JSON format.

## PRESENTATION DETAILS
- Title: %s
- User's Original Request: %s
- Current Date: %s
- Outline: %s
- Language: %s
- Tone: %s

## OUTPUT FORMAT
Return a JSON array where each object represents one slide with this structure:
{
  "layout": "bullets|columns|timeline|arrows|boxes|compare|icons|cycle|pyramid|staircase",
  "section_layout": "left|right|vertical",
  "content": {
    "heading": "Slide heading",
    "items": [
      {"text": "Point 1", "subtext": "Optional detail"},
      {"text": "Point 2", "subtext": "Optional detail"}
    ]
  },
  "image_query": "detailed 10+ word image search query"
}

## LAYOUT DESCRIPTIONS
- bullets: Key points with bullet points
- columns: Side-by-side comparisons (2-3 columns)
- timeline: Chronological events
- arrows: Process flow or cause-effect
- boxes: Simple information tiles
- compare: Before/after or A vs B comparison
- icons: Concepts with symbolic icons
- cycle: Circular process workflow
- pyramid: Hierarchical importance
- staircase: Progressive advancement

## SECTION LAYOUTS (image position)
- left: Image on left side
- right: Image on right side
- vertical: Image at top

## REQUIREMENTS
1. Create slides based on the outline topics
2. Use DIFFERENT layouts for variety
3. Expand outline points with examples and context
4. Include detailed image queries (10+ words) for every slide
5. Keep text concise but informative
6. Ensure logical flow between slides
7. Match the specified language and tone

Return ONLY the JSON array, no additional text or markdown formatting.`,
		title, userPrompt, now.Format("Monday, January 2, 2006"), strings.Join(outline, "\n"), languageName(language), tone)
}
