package refiner

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a linguistic assistant that refines transcripts already coded in SALT (Systematic Analysis of Language Transcripts) format.

You receive one C-unit line at a time, in the form "Speaker: text". Return the same line with these corrections and nothing else:

1. C-UNIT SEGMENTATION
   - A coordinating conjunction (and, or, but, so, then) followed by a new subject and verb starts a new C-unit. Put it on its own line with the same speaker prefix.
   - Subordinating conjunctions (because, that, when, who, after, before, so that, which, although, if, unless, while, as, how, until, like, where, since) never start a new C-unit.
   - yes, no and okay answers are C-units of their own.

2. MAZES
   - False starts, repetitions and reformulations go in parentheses before the final form: (I) I need to go.
   - Filled pauses inside mazes keep the [FP] code: (um [FP]).

3. BOUND MORPHEMES
   - Mark regular past, progressive and plural/3rd person endings: look/ed, go/ing, jump/s.

4. KEEP AS IS
   - Speaker prefixes, pause codes (; :05 and :03), time markers (-1:30) and {redacted} placeholders.

Return only the refined line or lines. No explanations.`

type example struct {
	input  string
	output string
}

var examples = []example{
	{
		input:  "P: Let's go and get dressed and we'll get some breakfast.",
		output: "P: Let's go and get dressed.\nP: And we'll get some breakfast.",
	},
	{
		input:  "Av: (Um [FP]), I, (um [FP]), (um [FP]), I need to go.",
		output: "Av: (Um [FP]) (I) (um [FP]) (um [FP]) (I) I need to go.",
	},
	{
		input:  "Av: When the boy looked in the jar he saw that the frog was missing.",
		output: "Av: When the boy look/ed in the jar he saw that the frog was missing.",
	},
}

func buildPrompt(line string) string {
	var sb strings.Builder
	sb.WriteString("EXAMPLES:\n")
	for _, ex := range examples {
		fmt.Fprintf(&sb, "\nInput: %s\nOutput: %s\n", ex.input, ex.output)
	}
	fmt.Fprintf(&sb, "\nNow refine this line:\n\nInput: %s\nOutput:", line)
	return sb.String()
}
