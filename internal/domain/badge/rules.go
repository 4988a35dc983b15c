package badge

import (
	"sort"
	"time"
)

const (
	QuickLearnerLessons        = 3
	ConsistentStreakDays       = 7
	QuizMasterAttempts         = 5
	PerfectQuizScore           = 100
	SocialLearnerShares        = 3
	MarathonMinDurationMinutes = 1200
)

// Activity is a read-only snapshot of the learner history the rules look at.
// Zero values mean "no such records".
type Activity struct {
	LessonsCompletedToday int
	RecentCompletionDates []time.Time
	PerfectQuizAttempts   int
	CertificateShares     int
	HasMarathonCourse     bool
}

type Rule struct {
	Slug      string
	Satisfied func(Activity) bool
}

var rules = []Rule{
	{Slug: SlugQuickLearner, Satisfied: func(a Activity) bool {
		return a.LessonsCompletedToday >= QuickLearnerLessons
	}},
	{Slug: SlugConsistent, Satisfied: func(a Activity) bool {
		return IsConsecutiveDays(a.RecentCompletionDates, ConsistentStreakDays)
	}},
	{Slug: SlugQuizMaster, Satisfied: func(a Activity) bool {
		return a.PerfectQuizAttempts >= QuizMasterAttempts
	}},
	{Slug: SlugSocialLearner, Satisfied: func(a Activity) bool {
		return a.CertificateShares >= SocialLearnerShares
	}},
	{Slug: SlugMarathon, Satisfied: func(a Activity) bool {
		return a.HasMarathonCourse
	}},
}

func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Qualifying returns the slugs of every rule the activity satisfies, in rule order.
// All rules are checked.
func Qualifying(a Activity) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Satisfied(a) {
			out = append(out, r.Slug)
		}
	}
	return out
}

// IsConsecutiveDays reports whether dates holds exactly n distinct calendar days
// with no gaps between them. Only the year/month/day of each value is used.
func IsConsecutiveDays(dates []time.Time, n int) bool {
	if n <= 0 || len(dates) != n {
		return false
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, civilDay(d))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for i := 1; i < len(days); i++ {
		if !days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			return false
		}
	}
	return true
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
