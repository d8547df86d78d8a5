package rules

// Default returns the built-in English tables. Each call returns a fresh copy.
func Default() *Rules {
	return &Rules{
		Language:     "English",
		RedactionKey: "{redacted}",
		Speakers: []SpeakerDef{
			{Code: "Av", Name: "Avatar", Aliases: []string{"AV"}},
			{Code: "P", Name: "Participant"},
		},
		Redactions: NewWordSet(
			"redacted", "name", "location", "redacted name", "redacted location", "pii",
		),
		Hesitations: map[string]HesitationClass{
			"uh":   Always,
			"um":   Always,
			"hm":   Always,
			"hmm":  Always,
			"er":   Always,
			"ah":   Always,
			"oh":   Always,
			"uhoh": Always,
			"oops": Always,
			"ooh":  Always,
			"like": Discourse,
		},
		Lexicalized: NewWordSet(
			"uh-huh", "uh-oh", "uh-uh", "mm-hmm", "mhm", "hmm-mm", "oh-oh", "ah-ha",
		),
		Coordinators: NewWordSet("and", "or", "but", "so", "then"),
		Subordinators: NewWordSet(
			"because", "that", "when", "who", "after", "before", "which", "although",
			"if", "unless", "while", "as", "how", "until", "like", "where", "since",
		),
		Replies: NewWordSet("yes", "no", "okay", "yeah", "nope", "nah", "ok", "yep"),
		StrongSubjects: NewWordSet(
			"i", "we", "he", "she", "they",
			"i'm", "i'll", "i've", "i'd",
			"we're", "we'll", "we've", "we'd",
			"he's", "he'll", "he'd", "she's", "she'll", "she'd",
			"they're", "they'll", "they've", "they'd",
			"you're", "you'll", "you've", "you'd",
			"it's", "it'll", "that's", "there's", "let's",
		),
		WeakSubjects: NewWordSet(
			"you", "it", "this", "that", "there", "these", "those",
			"everyone", "everybody", "someone", "somebody", "nobody",
			"everything", "something", "nothing",
		),
		Determiners: NewWordSet(
			"the", "a", "an", "my", "your", "his", "her", "our", "their", "its",
			"this", "that", "these", "those", "some", "every", "each",
		),
		Auxiliaries: NewWordSet(
			"am", "is", "are", "was", "were", "be", "been", "being",
			"has", "have", "had", "do", "does", "did",
			"will", "would", "can", "could", "shall", "should", "may", "might", "must",
			"don't", "doesn't", "didn't", "won't", "wouldn't", "can't", "couldn't",
			"shouldn't", "isn't", "aren't", "wasn't", "weren't", "hasn't", "haven't",
			"hadn't", "gonna", "wanna", "gotta",
		),
		IrregularPast: NewWordSet(
			"went", "said", "ate", "saw", "got", "came", "took", "made", "gave", "told",
			"found", "thought", "knew", "felt", "left", "kept", "brought", "bought",
			"sat", "stood", "ran", "began", "wrote", "spoke", "slept", "woke", "fell",
			"forgot", "heard", "held", "lost", "meant", "met", "paid", "sent", "spent",
			"understood", "wore", "drank", "drove", "flew", "grew", "hid", "lay", "led",
			"rode", "rang", "sang", "threw", "won", "did", "had", "was", "were",
		),
		BaseVerbs: NewWordSet(
			"get", "go", "come", "take", "make", "have", "do", "eat", "drink", "sit",
			"stand", "put", "wear", "help", "want", "need", "look", "see", "know",
			"think", "feel", "rest", "stay", "sleep", "wait", "walk", "talk", "try",
			"use", "give", "find", "tell", "ask", "call", "play", "read", "watch",
			"bring", "keep", "leave", "let", "open", "close", "wash", "brush", "change",
			"dress", "move", "lie", "listen", "turn", "pick", "grab", "run", "start",
			"stop", "finish", "show", "hold", "buy", "pay", "clean", "cook", "relax",
			"breathe", "check", "remember", "forget", "say", "work", "like", "love",
			"visit", "hear", "lay",
		),
		FunctionWords: NewWordSet(
			// pronouns and determiners
			"i", "me", "my", "you", "your", "he", "him", "his", "she", "her", "it", "its",
			"we", "us", "our", "they", "them", "their", "this", "that", "these", "those",
			"the", "a", "an", "some", "any", "every", "each",
			// auxiliaries
			"is", "was", "has", "does", "am", "are", "were", "be", "been", "being",
			"have", "had", "do", "did", "will", "would", "can", "could", "should",
			// prepositions and conjunctions
			"as", "thus", "plus", "across", "towards", "upwards", "during", "according",
			"regarding", "including", "notwithstanding", "unless", "since",
			// words that only look inflected
			"yes", "always", "perhaps", "sometimes", "maybe", "nothing", "something",
			"anything", "everything", "morning", "evening", "thing", "ring", "sing",
			"king", "bring", "spring", "string", "wing", "ceiling", "bed", "red",
			"need", "feed", "seed", "speed", "hundred", "shed", "naked", "wicked",
			"sacred", "tired", "scared", "bus", "gas", "this", "news", "series",
			"species", "glasses", "pants", "clothes", "lots",
		),
		Abbreviations: NewWordSet(
			"mr.", "mrs.", "ms.", "dr.", "st.", "jr.", "sr.", "vs.", "etc.", "e.g.",
			"i.e.", "a.m.", "p.m.", "no.", "approx.",
		),
		Morphology: map[string]string{
			// -ed
			"looked":   "look/ed",
			"helped":   "help/ed",
			"wanted":   "want/ed",
			"needed":   "need/ed",
			"started":  "start/ed",
			"finished": "finish/ed",
			"dressed":  "dress/ed",
			"walked":   "walk/ed",
			"talked":   "talk/ed",
			"asked":    "ask/ed",
			"called":   "call/ed",
			"played":   "play/ed",
			"jumped":   "jump/ed",
			"worked":   "work/ed",
			"liked":    "like/ed",
			"loved":    "love/ed",
			"used":     "use/ed",
			"tried":    "try/ed",
			"cried":    "cry/ed",
			"stopped":  "stop/ed",
			"dropped":  "drop/ed",
			"planned":  "plan/ed",
			"moved":    "move/ed",
			"lived":    "live/ed",
			"packed":   "pack/ed",
			"opened":   "open/ed",
			"happened": "happen/ed",
			"showed":   "show/ed",
			"turned":   "turn/ed",
			"missed":   "miss/ed",
			"picked":   "pick/ed",
			"fixed":    "fix/ed",
			"washed":   "wash/ed",
			"changed":  "change/ed",
			"closed":   "close/ed",
			"baked":    "bake/ed",
			"cooked":   "cook/ed",
			"visited":  "visit/ed",
			"waited":   "wait/ed",
			"stayed":   "stay/ed",
			"carried":  "carry/ed",
			"worried":  "worry/ed",
			"hurried":  "hurry/ed",
			"listened": "listen/ed",
			// -ing
			"looking":  "look/ing",
			"going":    "go/ing",
			"getting":  "get/ing",
			"coming":   "come/ing",
			"making":   "make/ing",
			"taking":   "take/ing",
			"having":   "have/ing",
			"running":  "run/ing",
			"sitting":  "sit/ing",
			"doing":    "do/ing",
			"feeling":  "feel/ing",
			"trying":   "try/ing",
			"helping":  "help/ing",
			"eating":   "eat/ing",
			"wearing":  "wear/ing",
			"sleeping": "sleep/ing",
			"waiting":  "wait/ing",
			"talking":  "talk/ing",
			"walking":  "walk/ing",
			"playing":  "play/ing",
			"putting":  "put/ing",
			"staying":  "stay/ing",
			"resting":  "rest/ing",
			"standing": "stand/ing",
			"leaving":  "leave/ing",
			"giving":   "give/ing",
			"living":   "live/ing",
			"moving":   "move/ing",
			"swimming": "swim/ing",
			"shopping": "shop/ing",
			"dressing": "dress/ing",
			"washing":  "wash/ing",
			"using":    "use/ing",
			"changing": "change/ing",
			"lying":    "lie/ing",
			// -s
			"tries":    "try/s",
			"babies":   "baby/s",
			"watches":  "watch/s",
			"goes":     "go/s",
			"wants":    "want/s",
			"needs":    "need/s",
			"looks":    "look/s",
			"likes":    "like/s",
			"feels":    "feel/s",
			"shoes":    "shoe/s",
			"pills":    "pill/s",
			"friends":  "friend/s",
			"kids":     "kid/s",
			"things":   "thing/s",
			"parents":  "parent/s",
			"nurses":   "nurse/s",
			"doctors":  "doctor/s",
			"days":     "day/s",
			"boxes":    "box/s",
			"dishes":   "dish/s",
			"stories":  "story/s",
			"families": "family/s",
			"knows":    "know/s",
			"says":     "say/s",
			"makes":    "make/s",
			"takes":    "take/s",
			"comes":    "come/s",
			"gets":     "get/s",
			"helps":    "help/s",
			"socks":    "sock/s",
			"buttons":  "button/s",
			"hands":    "hand/s",
			"minutes":  "minute/s",
		},
	}
}
