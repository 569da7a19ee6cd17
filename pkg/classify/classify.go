// Package classify infers category, language, framework, and SDK labels from
// the free-text fields of crawled agent records.
//
// Each classifier is an ordered list of (pattern, label) rules evaluated
// first-match-wins, so rule order is part of the contract: more specific
// patterns must be listed before generic ones. SDK detection is the one
// multi-match exception and collects every matching label.
package classify

import (
	"regexp"
	"strings"

	"github.com/agentdex/agentdex/pkg/agent"
)

// rule pairs a predicate with the label returned when it matches.
type rule struct {
	match func(string) bool
	label string
}

// firstMatch evaluates rules in order against text and returns the first
// matching label, or fallback when nothing matches.
func firstMatch(rules []rule, text, fallback string) string {
	for _, r := range rules {
		if r.match(text) {
			return r.label
		}
	}
	return fallback
}

func contains(substr string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, substr) }
}

func matches(expr string) func(string) bool {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// frameworkRules is evaluated top to bottom. "semantic-kernel" and
// "spring-boot" sit above the bare "spring" rule so the generic substring
// cannot shadow them.
var frameworkRules = []rule{
	{contains("google-adk"), "google-adk"},
	{contains("adk-python"), "google-adk"},
	{contains("agent development kit"), "google-adk"},
	{contains("langgraph"), "langgraph"},
	{contains("crewai"), "crewai"},
	{contains("crew-ai"), "crewai"},
	{contains("autogen"), "autogen"},
	{contains("semantic-kernel"), "semantic-kernel"},
	{contains("semantic kernel"), "semantic-kernel"},
	{contains("spring-boot"), "spring-boot"},
	{contains("springboot"), "spring-boot"},
	{contains("spring"), "spring-boot"},
	{contains("langchain"), "langchain"},
	{contains("llamaindex"), "llamaindex"},
	{contains("llama-index"), "llamaindex"},
	{contains("genkit"), "genkit"},
	{contains("nestjs"), "nestjs"},
}

// Framework infers the agent framework from free text and tags.
// First match wins; the default is the "custom" sentinel.
func Framework(text string, tags []string) string {
	haystack := strings.ToLower(text + " " + strings.Join(tags, " "))
	return firstMatch(frameworkRules, haystack, agent.FrameworkCustom)
}

// languageAliases maps lower-cased alias strings to canonical language
// labels. Aliases include package-manager keywords because a raw document
// mentioning "pip" or "cargo" is a reliable language signal.
var languageAliases = []struct {
	alias string
	label string
}{
	{"typescript", "typescript"},
	{"javascript", "typescript"},
	{"nodejs", "typescript"},
	{"node.js", "typescript"},
	{"npm", "typescript"},
	{"python", "python"},
	{"pip ", "python"},
	{"pypi", "python"},
	{"golang", "go"},
	{"rust", "rust"},
	{"cargo", "rust"},
	{"kotlin", "kotlin"},
	{"csharp", "csharp"},
	{"c#", "csharp"},
	{"dotnet", "csharp"},
	{".net", "csharp"},
	{"java", "java"},
	{"maven", "java"},
	{"php", "php"},
	{"composer.json", "php"},
	{"ruby", "ruby"},
	{"rubygem", "ruby"},
}

// Language infers the implementation language. A code-host language hint is
// preferred when it matches a known label exactly (case-insensitive); free
// text is only consulted when the hint is absent or unrecognized.
func Language(hint, text string) string {
	if hint != "" {
		h := strings.ToLower(hint)
		for _, l := range agent.Languages {
			if h == l {
				return l
			}
		}
		// Common hint spellings that differ from our labels.
		switch h {
		case "javascript", "ts":
			return "typescript"
		case "c#":
			return "csharp"
		}
	}

	haystack := strings.ToLower(text)
	for _, a := range languageAliases {
		if strings.Contains(haystack, a.alias) {
			return a.label
		}
	}
	// "go" alone is too ambiguous for substring search; require a word.
	if regexp.MustCompile(`\bgo\b`).MatchString(haystack) {
		return "go"
	}
	return agent.LanguageUnknown
}

// categoryRules is evaluated top to bottom over name+description+tags.
var categoryRules = []rule{
	{matches(`orchestrat|multi-agent|coordinat.*agent|agent.*workflow`), "orchestration"},
	{matches(`code.?gen|coding|code review|code assistant|copilot|developer tool`), "code-generation"},
	{matches(`\bsearch\b|retriev|\brag\b|web.?search`), "search"},
	{matches(`data analy|analytics|visualization|\bdataset\b|data science`), "data-analytics"},
	{matches(`financ|banking|payment|trading|crypto|blockchain`), "finance"},
	{matches(`securit|authenticat|vulnerab|threat|guardrail`), "security"},
	{matches(`image|video|audio|speech|media|text.?to.?image`), "media-content"},
	{matches(`travel|flight|hotel|booking|itinerary`), "travel"},
	{matches(`chatbot|conversation|dialog|chat agent|assistant`), "conversational"},
	{matches(`kubernetes|docker|devops|deploy|gateway|proxy|registry|discovery|infra`), "infrastructure"},
	{matches(`legal|healthcare|medical|education|real.?estate|enterprise`), "enterprise"},
	{matches(`\bsdk\b|library|framework|template|boilerplate|starter|example|sample|demo|tutorial`), "utility"},
}

// Category infers the directory category from an agent's name, description,
// and tags. First match wins; the default is the "general" sentinel.
func Category(name, description string, tags []string) string {
	haystack := strings.ToLower(name + " " + description + " " + strings.Join(tags, " "))
	return firstMatch(categoryRules, haystack, agent.CategoryGeneral)
}

// sdkKeywords maps raw-document keywords to SDK language labels.
// Unlike the other classifiers this table is multi-match. The java rule
// needs a word boundary so "javascript" does not count as Java.
var sdkKeywords = []struct {
	match func(string) bool
	label string
}{
	{contains("python"), "python"},
	{contains("typescript"), "typescript"},
	{contains("javascript"), "typescript"},
	{contains("nodejs"), "typescript"},
	{matches(`\bjava\b`), "java"},
	{contains("golang"), "go"},
	{contains("go-sdk"), "go"},
	{contains("rust"), "rust"},
	{contains("csharp"), "csharp"},
	{contains("dotnet"), "csharp"},
	{contains("kotlin"), "kotlin"},
}

// defaultSDKs is returned when no keyword matches: the two languages every
// A2A release ships first-party SDKs for.
var defaultSDKs = []string{"python", "typescript"}

// SDKs scans the serialized raw source document for language keywords and
// collects every match. Returns the default two-element list when nothing
// matches.
func SDKs(rawDocument string) []string {
	haystack := strings.ToLower(rawDocument)
	var out []string
	seen := map[string]bool{}
	for _, k := range sdkKeywords {
		if seen[k.label] {
			continue
		}
		if k.match(haystack) {
			out = append(out, k.label)
			seen[k.label] = true
		}
	}
	if len(out) == 0 {
		out = append(out, defaultSDKs...)
	}
	return out
}
