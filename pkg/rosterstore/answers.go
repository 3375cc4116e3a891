package rosterstore

import "fmt"

// Literal answer texts from the qualifier form. If the form answers change,
// these need to change with them. The order matters: the index of an answer
// is its ordinal score.

// PythonExperienceAnswers maps Python experience answers to scores 0-3.
var PythonExperienceAnswers = []string{
	"I'm a complete beginner, or I learned some of the basics of the language from courses or tutorials",
	"I'm OK, I've done a few projects in Python that are not related to courses or tutorials",
	"I have some experience with Python, and considerable experience in other languages",
	"I have considerable experience with the language, and have possibly worked with it professionally for several years",
}

// GitExperienceAnswers maps Git experience answers to scores 0-3.
var GitExperienceAnswers = []string{
	"What is Git?",
	"I can commit, pull, push, etc., but I don't have much experience with it",
	"I'm pretty familiar with Git and use it regularly",
	"I can cherry-pick a remote branch using the disturbance ripples of butterflies",
}

// LeaderAnswers maps team-leader willingness answers to scores 0-2.
var LeaderAnswers = []string{
	"No",
	"I'm OK either way",
	"Yes",
}

// AnswerScore returns the ordinal score of answer within the given answer
// set, or an error for text that matches no known answer.
func AnswerScore(answers []string, answer string) (int, error) {
	for i, a := range answers {
		if a == answer {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unrecognized form answer %q", answer)
}
