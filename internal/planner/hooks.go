package planner

import (
	"sort"
	"strings"
)

// HookFramework is a reusable opening line formula.
type HookFramework struct {
	ID       string
	Name     string
	Formula  string
	Example  string
	Purpose  string
	Category string
}

var HookFrameworks = []HookFramework{
	{
		ID:       "wrong-truth",
		Name:     "The common misconception",
		Formula:  "Everyone thinks X, but the truth is Y.",
		Example:  "Most people think the biggest cost of AI is GPUs. The real cost is somewhere else entirely.",
		Purpose:  "Sets off a small alarm: what I know might be wrong.",
		Category: "Curiosity",
	},
	{
		ID:       "what-you-learn",
		Name:     "What you will learn today",
		Formula:  "By the end of this video you will clearly understand X.",
		Example:  "By the end of this video you will know how to test whether a SaaS idea can actually make money.",
		Purpose:  "The gold standard for teaching content. A clear promise builds trust.",
		Category: "Education",
	},
	{
		ID:       "ignored-detail",
		Name:     "The ignored detail",
		Formula:  "The thing nobody talks about that decides X...",
		Example:  "There is one metric nobody talks about that decides whether an AI project succeeds.",
		Purpose:  "Feels like insider knowledge. Viewers like to feel privileged.",
		Category: "Insight",
	},
	{
		ID:       "if-you-do",
		Name:     "If you do X",
		Formula:  "If you are doing X, do not skip this video.",
		Example:  "If you make teaching videos on YouTube and your views are flat, do not skip this video.",
		Purpose:  "Targets the audience. The wrong viewers leave and the right ones lock in.",
		Category: "Targeting",
	},
	{
		ID:       "save-time",
		Name:     "Save time",
		Formula:  "You do not need months to try X.",
		Example:  "You do not need months to learn whether a business idea works. You can test it in a week.",
		Purpose:  "Time is the most valuable currency and this hook plays straight to it.",
		Category: "Productivity",
	},
	{
		ID:       "i-was-wrong",
		Name:     "I was wrong too",
		Formula:  "For a long time I believed X, and I was wrong.",
		Example:  "For a long time I believed a good product grows on its own. What happened was very different.",
		Purpose:  "Offers learning instead of ego and builds trust in teaching content.",
		Category: "Experience",
	},
	{
		ID:       "simple-effective",
		Name:     "Simple but effective",
		Formula:  "X is much simpler than you think.",
		Example:  "Scaling an AI project is much simpler than you think. The hard part is something else.",
		Purpose:  "Lowers fear and raises curiosity.",
		Category: "Simplification",
	},
	{
		ID:       "happening-now",
		Name:     "Happening right now",
		Formula:  "There is a quiet shift happening in X right now.",
		Example:  "There is a quiet shift happening in AI right now and most people have not noticed.",
		Purpose:  "Timeliness plus a sense of opportunity.",
		Category: "Timeliness",
	},
	{
		ID:       "concrete-result",
		Name:     "Concrete result",
		Formula:  "When you do X, Y happens.",
		Example:  "Track these three metrics and you will see exactly why SaaS projects fail.",
		Purpose:  "Promises an outcome rather than vague information.",
		Category: "Outcome",
	},
	{
		ID:       "what-this-is-not",
		Name:     "What this video is not",
		Formula:  "This video is not X.",
		Example:  "This video is not get-rich motivation. It is an analysis built on real data.",
		Purpose:  "Cuts wrong expectations early and gathers the right audience.",
		Category: "Clarification",
	},
	{
		ID:       "comparison",
		Name:     "Comparison",
		Formula:  "The difference between X and Y is bigger than people think.",
		Example:  "The difference between a product that uses AI and one built on AI is bigger than you think.",
		Purpose:  "Promises mental clarity.",
		Category: "Analysis",
	},
	{
		ID:       "common-mistake",
		Name:     "Everyone makes this mistake",
		Formula:  "Everyone makes the same mistake when doing X.",
		Example:  "90% of new YouTubers put the hook in the wrong place.",
		Purpose:  "No blame, just a shared human experience.",
		Category: "Shared experience",
	},
}

// FrameworksByCategory groups the catalogue by category, keeping catalogue
// order within each group.
func FrameworksByCategory() map[string][]HookFramework {
	out := make(map[string][]HookFramework)
	for _, h := range HookFrameworks {
		out[h.Category] = append(out[h.Category], h)
	}
	return out
}

// HookCategories lists the categories in alphabetical order.
func HookCategories() []string {
	groups := FrameworksByCategory()
	out := make([]string, 0, len(groups))
	for c := range groups {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// SearchHooks filters the catalogue by category ("" for all) and a
// case-insensitive query over name, formula and example.
func SearchHooks(category, query string) []HookFramework {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []HookFramework
	for _, h := range HookFrameworks {
		if category != "" && h.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(h.Name), query) &&
			!strings.Contains(strings.ToLower(h.Formula), query) &&
			!strings.Contains(strings.ToLower(h.Example), query) {
			continue
		}
		out = append(out, h)
	}
	return out
}
