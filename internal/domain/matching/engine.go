package matching

import (
	"math"
	"strings"

	"learnmatch/internal/domain/job"
	"learnmatch/internal/domain/learner"
)

type Label string

const (
	LabelGreatMatch   Label = "Great Match"
	LabelGoodMatch    Label = "Good Match"
	LabelPartialMatch Label = "Partial Match"
	LabelNotAFit      Label = "Not a Fit"
)

const (
	SkillWeight    = 0.6
	InterestWeight = 0.2
	GoalWeight     = 0.2

	componentMax = 100.0
)

const (
	greatMatchFloor   = 80.0
	goodMatchFloor    = 60.0
	partialMatchFloor = 40.0
)

var skillLevelScores = map[learner.SkillLevel]float64{
	learner.SkillLevelBeginner:     30,
	learner.SkillLevelIntermediate: 60,
	learner.SkillLevelAdvanced:     90,
}

type Breakdown struct {
	SkillScore    float64
	InterestScore float64
	GoalScore     float64
}

type Result struct {
	Label     Label
	Value     float64
	Breakdown Breakdown
}

// NoProfile is the fixed result for a learner without an aptitude profile.
func NoProfile() Result {
	return Result{Label: LabelNotAFit, Value: 0}
}

// Score rates how well a learner's aptitude profile fits a job posting.
//
// The skill component is a flat score from the learner's self-reported level; the
// posting's required skill names are not compared against the learner's skills.
func Score(profile *learner.AptitudeProfile, posting job.Posting) Result {
	if profile == nil {
		return NoProfile()
	}

	b := Breakdown{
		SkillScore:    skillScore(profile.SkillLevel, len(posting.RequiredSkills)),
		InterestScore: membershipScore(profile.Interests.Contains(posting.CategoryID)),
		GoalScore:     membershipScore(profile.CareerGoals.Contains(posting.JobTypeID)),
	}

	value := Combine(b)
	return Result{Label: LabelFor(value), Value: value, Breakdown: b}
}

// Combine applies the component weights and rounds to two decimals.
func Combine(b Breakdown) float64 {
	total := b.SkillScore*SkillWeight + b.InterestScore*InterestWeight + b.GoalScore*GoalWeight
	return round2(total)
}

func LabelFor(value float64) Label {
	switch {
	case value >= greatMatchFloor:
		return LabelGreatMatch
	case value >= goodMatchFloor:
		return LabelGoodMatch
	case value >= partialMatchFloor:
		return LabelPartialMatch
	default:
		return LabelNotAFit
	}
}

// SkillLevelScore maps a level to its flat score, case-insensitively. Unknown
// levels score 0.
func SkillLevelScore(level learner.SkillLevel) float64 {
	norm := learner.SkillLevel(strings.ToLower(strings.TrimSpace(string(level))))
	return skillLevelScores[norm]
}

func skillScore(level learner.SkillLevel, requiredSkills int) float64 {
	if requiredSkills == 0 {
		return 0
	}
	return SkillLevelScore(level)
}

func membershipScore(member bool) float64 {
	if member {
		return componentMax
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
