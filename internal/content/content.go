// Package content holds the static lesson tables for Unit 1 ("Trends").
// Accessors return copies so callers cannot mutate the shared tables.
package content

import (
	"slices"

	"github.com/aziyat1977/Inter-1.1/internal/models"
)

const UnitTitle = "Unit 1.1: Trends & Friends"

var reading = models.Reading{
	Title:  "Facebook Friends",
	Author: "Rob Jones",
	Paragraphs: []string{
		"How many Facebook friends have you seen lately? Rob Jones is currently meeting every single one. His goal? 700 friends.",
		"He wants to raise money for charity. He has already met 123 friends in seven countries.",
		"He takes a photo with everyone. He has raised over £3,000 so far.",
		"He hopes to meet all 700 in three years. This includes a trip to New Zealand.",
		"Are Facebook friends real? Rob met his girlfriend online. They have been together for three years.",
		"'I am learning a lot about myself,' Rob says. 'I now have good friends in people I never met before.'",
		"He generally spends a day with them. They choose the activity.",
		"He has visited England, Scotland, Poland, Finland, Germany, Switzerland and the USA.",
	},
	Comprehension: []models.ComprehensionCheck{
		{Question: "Why meet 700 people?", Answer: "For charity (£3,000)."},
		{Question: "Where did he go?", Answer: "Europe, USA, New Zealand."},
	},
}

var vocab = []models.VocabItem{
	{ID: "1", Word: "achievement", PartOfSpeech: "n", Definition: "a big success", ContextSentence: "Winning was a huge achievement.",
		Translation: map[models.Language]string{models.Russian: "достижение", models.Uzbek: "yutuq"}},
	{ID: "2", Word: "fall out", PartOfSpeech: "v", Definition: "stop being friends", ContextSentence: "I never fall out with him.",
		Translation: map[models.Language]string{models.Russian: "поссориться", models.Uzbek: "urushib qolmoq"}},
	{ID: "3", Word: "get on well", PartOfSpeech: "v", Definition: "be good friends", ContextSentence: "We get on well.",
		Translation: map[models.Language]string{models.Russian: "ладить", models.Uzbek: "chiqishmoq"}},
	{ID: "4", Word: "meet up", PartOfSpeech: "v", Definition: "meet socially", ContextSentence: "Let's meet up later.",
		Translation: map[models.Language]string{models.Russian: "встретиться", models.Uzbek: "uchrashmoq"}},
	{ID: "5", Word: "persuade", PartOfSpeech: "v", Definition: "convince someone", ContextSentence: "Can I persuade you?",
		Translation: map[models.Language]string{models.Russian: "убеждать", models.Uzbek: "ishontirmoq"}},
	{ID: "6", Word: "currently", PartOfSpeech: "adv", Definition: "now", ContextSentence: "I am currently working.",
		Translation: map[models.Language]string{models.Russian: "сейчас", models.Uzbek: "hozirda"}},
	{ID: "7", Word: "in common", PartOfSpeech: "phr", Definition: "same interests", ContextSentence: "We have a lot in common.",
		Translation: map[models.Language]string{models.Russian: "общее", models.Uzbek: "umumiy"}},
	{ID: "8", Word: "keep in touch", PartOfSpeech: "phr", Definition: "stay connected", ContextSentence: "Keep in touch!",
		Translation: map[models.Language]string{models.Russian: "на связи", models.Uzbek: "aloqada bo'lmoq"}},
}

var grammar = []models.GrammarRule{
	{Title: "Present Simple", Usage: models.UsageSimple, Description: "Facts and Habits.",
		Examples: []string{"I live in London.", "He takes photos."}},
	{Title: "Present Continuous", Usage: models.UsageContinuous, Description: "Now and Trends.",
		Examples: []string{"I am working now.", "It is changing."}},
	{Title: "Present Perfect", Usage: models.UsagePerfect, Description: "Experience and Results.",
		Examples: []string{"I have visited Paris.", "He has left."}},
}

func choice(id, prompt string, options [2]string, correct, explanation string) models.Question {
	return models.Question{
		ID:             id,
		Bank:           models.BankBattle,
		Prompt:         prompt,
		Type:           models.QuestionMultipleChoice,
		Options:        options[:],
		CorrectAnswers: []string{correct},
		Explanation:    explanation,
	}
}

func input(id, prompt, explanation string, accepted ...string) models.Question {
	return models.Question{
		ID:             id,
		Bank:           models.BankPractice,
		Prompt:         prompt,
		Type:           models.QuestionInput,
		CorrectAnswers: accepted,
		Explanation:    explanation,
	}
}

// Battle questions always carry exactly two options.
var battle = []models.Question{
	choice("k1", "Rob _____ his friends right now.", [2]string{"meets", "is meeting"}, "is meeting", "NOW = Continuous."),
	choice("k2", "To 'fall out' means to...", [2]string{"Argue", "Hug"}, "Argue", "Bad relationship."),
	choice("k3", "Experience up to now?", [2]string{"I have visited", "I visit"}, "I have visited", "Experience = Perfect."),
	choice("k4", "What does 'Currently' mean?", [2]string{"Now", "Actually"}, "Now", "Currently = At this moment."),
	choice("k5", "He usually _____ the food.", [2]string{"is choosing", "chooses"}, "chooses", "Usually = Simple."),
	choice("k6", "'I have lived here all my life.'", [2]string{"Past action", "Started in past, still here"}, "Started in past, still here", "Perfect connects past to now."),
	choice("k7", "Opposite of 'Get on'?", [2]string{"Fall out", "Meet up"}, "Fall out", "Get on = Good. Fall out = Bad."),
	choice("k8", "Look! It _____.", [2]string{"rains", "is raining"}, "is raining", "Look! = Happening now."),
}

var practice = []models.Question{
	input("p1", "I often _____ friends. (meet up / am meeting up)", "Often = Habit.", "meet up"),
	input("p2", "Facebook _____ communication. (changes / is changing)", "Trend = Continuous.", "is changing"),
	input("p3", "He _____ 100 people so far. (met / has met)", "So far = Perfect.", "has met", "'s met"),
	input("p4", "I _____ a great time now! (have / am having)", "Now = Continuous.", "am having", "'m having"),
}

var discussion = models.DiscussionPrompt{
	Statement: "The average Facebook user has 338 friends.",
	Question: map[models.Language]string{
		models.English: "Is this true? Can you really have so many friends?",
		models.Russian: "Это правда? Можно ли иметь столько друзей?",
		models.Uzbek:   "Bu rostmi? Shuncha do'st bo'lishi mumkinmi?",
	},
	ModelIdea: "Maybe you know 338 people, but you only have 5 real friends. The rest are just contacts.",
	MinLength: 5,
}

var levels = []models.Level{
	{Name: "Newbie", XP: 0, Color: "text-slate-400"},
	{Name: "Explorer", XP: 100, Color: "text-teal-400"},
	{Name: "Socialite", XP: 500, Color: "text-blue-400"},
	{Name: "Influencer", XP: 1500, Color: "text-purple-400"},
	{Name: "Trendsetter", XP: 3000, Color: "text-pink-400"},
	{Name: "Legend", XP: 5000, Color: "text-yellow-400"},
}

const (
	BadgeFirstBlood = "first_blood"
	BadgeSpeedDemon = "speed_demon"
	BadgeComboKing  = "combo_king"
	BadgeBookworm   = "bookworm"
	BadgeWordSmith  = "word_smith"
)

var badges = []models.Badge{
	{ID: BadgeFirstBlood, Icon: "🩸", Name: "First Blood", Description: "Started the unit."},
	{ID: BadgeSpeedDemon, Icon: "⚡", Name: "Speed Demon", Description: "Finished a speed battle with every answer right."},
	{ID: BadgeComboKing, Icon: "🔥", Name: "Combo King", Description: "Reached a combo of 5 in a speed battle."},
	{ID: BadgeBookworm, Icon: "📚", Name: "Bookworm", Description: "Got every practice answer right."},
	{ID: BadgeWordSmith, Icon: "🧠", Name: "Word Smith", Description: "Knew 8 words in a row."},
}

var teacher = models.TeacherNotes{
	Unit: UnitTitle,
	Aims: []string{
		"Engage students with the topic of friendship in the digital age.",
		"Clarify usage of Present Simple, Continuous, and Perfect.",
		"Practice friendship-related vocabulary (phrasal verbs).",
		"Encourage fluency through open discussions regarding Facebook stats.",
	},
	ConceptChecks: []models.ConceptCheck{
		{Target: "I have known him for 3 years.", Usage: models.UsagePerfect, Questions: []models.QAPair{
			{Question: "Do I know him now?", Answer: "Yes"},
			{Question: "Did I meet him in the past?", Answer: "Yes"},
			{Question: "Is the connection finished?", Answer: "No"},
		}},
		{Target: "I am meeting my friends.", Usage: models.UsageContinuous, Questions: []models.QAPair{
			{Question: "Is this a habit?", Answer: "Maybe not, usually temporary"},
			{Question: "Is it happening around now?", Answer: "Yes"},
		}},
	},
	AnswerKeys: []models.AnswerKey{
		{Exercise: "Reading", Answers: []string{
			"To raise money for charity (£3000+).",
			"Europe (UK, Poland, Finland, etc), New Zealand, USA.",
		}},
		{Exercise: "Ex 1a (Grammar)", Answers: []string{
			"is meeting (Temp/Current)",
			"takes (Habit)",
			"they've now been (Duration)",
		}},
		{Exercise: "Ex 6a (Vocab)", Answers: []string{
			"Positive: get on, meet up, have a lot in common, help out, keep in touch, make friends.",
			"Negative: fall out, have an argument.",
		}},
	},
}

func cloneQuestion(q models.Question) models.Question {
	q.Options = slices.Clone(q.Options)
	q.CorrectAnswers = slices.Clone(q.CorrectAnswers)
	return q
}

func cloneQuestions(in []models.Question) []models.Question {
	out := make([]models.Question, len(in))
	for i, q := range in {
		out[i] = cloneQuestion(q)
	}
	return out
}

// Vocab returns the vocabulary table.
func Vocab() []models.VocabItem {
	out := make([]models.VocabItem, len(vocab))
	for i, v := range vocab {
		tr := make(map[models.Language]string, len(v.Translation))
		for k, s := range v.Translation {
			tr[k] = s
		}
		v.Translation = tr
		out[i] = v
	}
	return out
}

// BattleQuestions returns the two-option speed battle bank.
func BattleQuestions() []models.Question { return cloneQuestions(battle) }

// PracticeExercises returns the typed practice set of the student lesson.
func PracticeExercises() []models.Question { return cloneQuestions(practice) }

// Questions returns the bank with the given name, or nil.
func Questions(bank models.QuestionBank) []models.Question {
	switch bank {
	case models.BankBattle:
		return BattleQuestions()
	case models.BankPractice:
		return PracticeExercises()
	}
	return nil
}

func Grammar() []models.GrammarRule {
	out := make([]models.GrammarRule, len(grammar))
	for i, g := range grammar {
		g.Examples = slices.Clone(g.Examples)
		out[i] = g
	}
	return out
}

func ReadingText() models.Reading {
	r := reading
	r.Paragraphs = slices.Clone(r.Paragraphs)
	r.Comprehension = slices.Clone(r.Comprehension)
	return r
}

func Discussion() models.DiscussionPrompt {
	d := discussion
	d.Question = make(map[models.Language]string, len(discussion.Question))
	for k, v := range discussion.Question {
		d.Question[k] = v
	}
	return d
}

// Levels returns the level table ordered by ascending XP threshold.
func Levels() []models.Level { return slices.Clone(levels) }

// Thresholds returns the XP cutoffs of Levels.
func Thresholds() []int {
	out := make([]int, len(levels))
	for i, l := range levels {
		out[i] = l.XP
	}
	return out
}

func Badges() []models.Badge { return slices.Clone(badges) }

func Teacher() models.TeacherNotes {
	t := teacher
	t.Aims = slices.Clone(t.Aims)
	t.ConceptChecks = make([]models.ConceptCheck, len(teacher.ConceptChecks))
	for i, c := range teacher.ConceptChecks {
		c.Questions = slices.Clone(c.Questions)
		t.ConceptChecks[i] = c
	}
	t.AnswerKeys = make([]models.AnswerKey, len(teacher.AnswerKeys))
	for i, k := range teacher.AnswerKeys {
		k.Answers = slices.Clone(k.Answers)
		t.AnswerKeys[i] = k
	}
	return t
}
