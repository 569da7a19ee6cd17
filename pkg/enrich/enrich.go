// Package enrich re-infers language, category, and framework for records the
// crawl left at their sentinel values.
//
// The crawl classifiers are first-match keyword scans over whatever text a
// single source happened to carry; enrichment runs after the merge, so it
// can weigh every signal the merged record accumulated (tags from one
// source, description from another). It is deliberately conservative: a
// field is only rewritten when the top candidate reaches a minimum score
// and, for language, is not tied with a different answer.
package enrich

import (
	"regexp"
	"strings"

	"github.com/agentdex/agentdex/pkg/agent"
)

// Signal weights. A single weak signal can never clear minScore on its own.
const (
	weightStrong = 3
	weightMedium = 2
	weightWeak   = 1
	weightSample = 5

	minScore = 2
)

// Change records one rewritten field.
type Change struct {
	Field string
	From  string
	To    string
}

// Apply enriches the sentinel-valued fields of a in place and returns the
// changes made. Fields already holding a real value are never touched.
func Apply(a *agent.Agent) []Change {
	var changes []Change

	if a.Language == agent.LanguageUnknown {
		if lang, ok := Language(*a); ok {
			changes = append(changes, Change{"language", a.Language, lang})
			a.Language = lang
		}
	}
	if a.Category == agent.CategoryGeneral {
		if cat, ok := Category(*a); ok {
			changes = append(changes, Change{"category", a.Category, cat})
			a.Category = cat
		}
	}
	if a.Framework == agent.FrameworkCustom {
		if fw, ok := Framework(*a); ok {
			changes = append(changes, Change{"framework", a.Framework, fw})
			a.Framework = fw
		}
	}
	return changes
}

// ballot accumulates weighted votes per label.
type ballot map[string]int

// winner returns the top label when it clears minScore. When requireUntied
// is set, a tie between two labels disqualifies both; otherwise ties break
// lexicographically so the result never depends on map iteration order.
func (b ballot) winner(requireUntied bool) (string, bool) {
	top, topScore, tied := "", 0, false
	for label, score := range b {
		switch {
		case score > topScore:
			top, topScore, tied = label, score, false
		case score == topScore && score > 0 && label != top:
			tied = true
			if label < top {
				top = label
			}
		}
	}
	if topScore < minScore {
		return "", false
	}
	if requireUntied && tied {
		return "", false
	}
	return top, true
}

var frameworkLanguage = map[string]string{
	"google-adk":      "python",
	"langgraph":       "python",
	"langchain":       "python",
	"crewai":          "python",
	"autogen":         "python",
	"llamaindex":      "python",
	"semantic-kernel": "csharp",
	"spring-boot":     "java",
	"nestjs":          "typescript",
	"genkit":          "typescript",
}

var tagLanguage = map[string]string{
	"python": "python", "python3": "python", "python-sdk": "python",
	"adk-python": "python", "flask": "python", "django": "python",
	"fastapi": "python", "pydantic": "python", "uvicorn": "python",
	"pip": "python", "poetry": "python", "uv": "python",

	"typescript": "typescript", "ts": "typescript", "javascript": "typescript",
	"js": "typescript", "nodejs": "typescript", "node": "typescript",
	"nextjs": "typescript", "nestjs": "typescript", "deno": "typescript",
	"react": "typescript", "vue": "typescript", "vite": "typescript",
	"bun": "typescript", "npm": "typescript",

	"java": "java", "java-sdk": "java", "spring": "java",
	"spring-boot": "java", "springboot": "java", "spring-ai": "java",

	"go": "go", "golang": "go", "go-sdk": "go", "go-lang": "go",
	"rust": "rust", "rust-sdk": "rust", "rust-lang": "rust",

	"csharp": "csharp", "c-sharp": "csharp", "dotnet": "csharp",
	".net": "csharp", "aspnet": "csharp", "blazor": "csharp",

	"kotlin": "kotlin", "kotlin-sdk": "kotlin",
	"php": "php", "php-sdk": "php", "sdk-php": "php",
	"ruby": "ruby", "ruby-gem": "ruby", "rubygem": "ruby",
}

// repoSuffixLanguage matches trailing repo-name segments like "a2a-go".
var repoSuffixLanguage = []struct {
	suffix string
	label  string
}{
	{"-python", "python"}, {"-py", "python"},
	{"-typescript", "typescript"}, {"-ts", "typescript"}, {"-js", "typescript"},
	{"-java", "java"},
	{"-go", "go"},
	{"-rust", "rust"}, {"-rs", "rust"},
	{"-csharp", "csharp"}, {"-dotnet", "csharp"},
	{"-kotlin", "kotlin"},
	{"-php", "php"},
	{"-ruby", "ruby"}, {"-rb", "ruby"},
}

var nameLanguagePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`\bpython\b`), "python"},
	{regexp.MustCompile(`\b(?:typescript|ts)\b`), "typescript"},
	{regexp.MustCompile(`\bjava\b`), "java"},
	{regexp.MustCompile(`\bgolang\b`), "go"},
	{regexp.MustCompile(`\brust\b`), "rust"},
	{regexp.MustCompile(`\bcsharp\b`), "csharp"},
	{regexp.MustCompile(`\bkotlin\b`), "kotlin"},
	{regexp.MustCompile(`\bphp\b`), "php"},
	{regexp.MustCompile(`\bruby\b`), "ruby"},
}

var descLanguagePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`\bPython\b`), "python"},
	{regexp.MustCompile(`\bTypeScript\b`), "typescript"},
	{regexp.MustCompile(`\bJavaScript\b`), "typescript"},
	{regexp.MustCompile(`\bNode\.js\b`), "typescript"},
	{regexp.MustCompile(`\bJava\b([^S]|$)`), "java"},
	{regexp.MustCompile(`\bGo(?:lang)?\s+(?:implementation|sdk|library|client|server|agent)\b`), "go"},
	{regexp.MustCompile(`\bwritten in Go\b`), "go"},
	{regexp.MustCompile(`\bGolang\b`), "go"},
	{regexp.MustCompile(`\bRust\b`), "rust"},
	{regexp.MustCompile(`C#`), "csharp"},
	{regexp.MustCompile(`\.NET\b`), "csharp"},
	{regexp.MustCompile(`\bKotlin\b`), "kotlin"},
	{regexp.MustCompile(`\bPHP\b`), "php"},
	{regexp.MustCompile(`\bRuby\b`), "ruby"},
}

var officialSampleDesc = regexp.MustCompile(`^Official A2A (\w+) sample`)

// Language infers an implementation language from the merged record.
func Language(a agent.Agent) (string, bool) {
	votes := ballot{}

	if lang, ok := frameworkLanguage[a.Framework]; ok {
		votes[lang] += weightStrong
	}

	for _, tag := range a.Tags {
		if lang, ok := tagLanguage[strings.ToLower(tag)]; ok {
			votes[lang] += weightStrong
		}
	}

	if name := repoName(a.Repository); name != "" {
		for _, s := range repoSuffixLanguage {
			if strings.HasSuffix(name, s.suffix) {
				votes[s.label] += weightStrong
			}
		}
	}

	combined := strings.ToLower(a.Slug + " " + a.Name)
	for _, p := range nameLanguagePatterns {
		if p.re.MatchString(combined) {
			votes[p.label] += weightMedium
		}
	}

	for _, p := range descLanguagePatterns {
		if p.re.MatchString(a.Description) {
			votes[p.label] += weightMedium
		}
	}

	if m := officialSampleDesc.FindStringSubmatch(a.Description); m != nil {
		if lang := strings.ToLower(m[1]); isKnownLanguage(lang) {
			votes[lang] += weightSample
		}
	}

	if len(a.SDKs) == 1 && isKnownLanguage(a.SDKs[0]) {
		votes[a.SDKs[0]] += weightWeak
	}

	return votes.winner(true)
}

// repoName extracts the repository name from a GitHub URL, ignoring any
// /tree/... path that follows it.
func repoName(repo string) string {
	if repo == "" || !strings.Contains(repo, "github.com") {
		return ""
	}
	parts := strings.Split(strings.TrimRight(repo, "/"), "/")
	if len(parts) < 5 {
		return ""
	}
	return strings.ToLower(parts[4])
}

func isKnownLanguage(label string) bool {
	for _, l := range agent.Languages {
		if label == l && l != agent.LanguageUnknown {
			return true
		}
	}
	return false
}

// tagCategoryRules vote once per matching tag.
var tagCategoryRules = []struct {
	tags     []string
	category string
}{
	{[]string{"finance", "fintech", "banking", "payment", "payments", "trading", "crypto", "blockchain", "defi", "escrow"}, "finance"},
	{[]string{"search", "retrieval", "rag", "web-search", "google-search", "semantic-search"}, "search"},
	{[]string{"security", "authentication", "auth", "agent-security", "cybersecurity", "vulnerability"}, "security"},
	{[]string{"devops", "docker", "kubernetes", "k8s", "infrastructure", "cloud", "aws", "gcp", "azure", "deployment", "ci-cd"}, "infrastructure"},
	{[]string{"image", "video", "audio", "media", "image-generation", "text-to-image", "text-to-speech", "tts"}, "media-content"},
	{[]string{"code", "code-generation", "coding", "code-review", "code-assistant"}, "code-generation"},
	{[]string{"data", "data-analysis", "analytics", "data-analytics", "data-science", "dataset", "visualization"}, "data-analytics"},
	{[]string{"chat", "chatbot", "conversational", "conversation", "dialog", "dialogue"}, "conversational"},
	{[]string{"travel", "flight", "hotel", "booking", "tourism", "trip"}, "travel"},
	{[]string{"multi-agent", "multi-agent-systems", "agent-orchestration", "orchestration", "agent-collaboration"}, "orchestration"},
	{[]string{"cli", "tool", "utility", "sdk", "library", "framework", "template", "boilerplate", "starter"}, "utility"},
	{[]string{"demo", "example", "hello-world", "sample", "tutorial", "learning", "scaffold"}, "utility"},
	{[]string{"registry", "discovery", "agent-registry", "agent-discovery", "agent-marketplace"}, "infrastructure"},
	{[]string{"gateway", "proxy", "middleware", "router", "routing"}, "infrastructure"},
	{[]string{"mqtt", "amqp", "grpc", "json-rpc", "websocket"}, "infrastructure"},
	{[]string{"business", "commerce", "legal", "healthcare", "medical", "education", "real-estate", "manufacturing"}, "enterprise"},
}

var descCategoryPatterns = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)\b(?:search|retriev|lookup|query|rag)\b`), "search"},
	{regexp.MustCompile(`(?i)\b(?:secur|authent|authoriz|encrypt|vulnerab|threat)`), "security"},
	{regexp.MustCompile(`(?i)\b(?:financ|bank|payment|trading|crypto|blockchain|escrow)`), "finance"},
	{regexp.MustCompile(`(?i)\b(?:travel|flight|hotel|booking|trip|itinerary|tourism)\b`), "travel"},
	{regexp.MustCompile(`(?i)\b(?:image|video|audio|media|text-to-speech)\b`), "media-content"},
	{regexp.MustCompile(`(?i)\b(?:coding|code review|code generat\w*|generat\w* code)\b`), "code-generation"},
	{regexp.MustCompile(`(?i)\b(?:analytics|visualization|dataset|data analy\w*)\b`), "data-analytics"},
	{regexp.MustCompile(`(?i)\b(?:chatbot|conversational|dialog|conversation)\b`), "conversational"},
	{regexp.MustCompile(`(?i)\b(?:deploy|docker|kubernetes|infra|devops|gateway|proxy|registry|discover|catalog|directory)`), "infrastructure"},
	{regexp.MustCompile(`(?i)\b(?:orchestrat|multi-agent)`), "orchestration"},
	{regexp.MustCompile(`(?i)\b(?:sdk|library|framework|implementation|toolkit|boilerplate|template|starter|wrapper|scaffold)\b`), "utility"},
	{regexp.MustCompile(`(?i)\b(?:samples?|demo|example|tutorial|beginner|learning|playground|documentation)\b`), "utility"},
	{regexp.MustCompile(`(?i)\b(?:testing|mocking|mock)\b`), "utility"},
	{regexp.MustCompile(`(?i)\b(?:dashboard|monitoring|observability|grafana|prometheus)\b`), "data-analytics"},
	{regexp.MustCompile(`(?i)\b(?:legal|lawyer|attorney|healthcare|medical|manufacturing)\b`), "enterprise"},
}

var nameCategoryPatterns = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`search|retriev|rag`), "search"},
	{regexp.MustCompile(`secur|auth`), "security"},
	{regexp.MustCompile(`financ|bank|trade|crypto`), "finance"},
	{regexp.MustCompile(`travel|flight|hotel|trip`), "travel"},
	{regexp.MustCompile(`media|image|video|audio`), "media-content"},
	{regexp.MustCompile(`code|coding|dev`), "code-generation"},
	{regexp.MustCompile(`data|analy`), "data-analytics"},
	{regexp.MustCompile(`chat|convers`), "conversational"},
	{regexp.MustCompile(`orchestrat|multi.?agent`), "orchestration"},
	{regexp.MustCompile(`deploy|infra|devops|docker|k8s`), "infrastructure"},
}

var utilityNamePattern = regexp.MustCompile(`template|sample|demo|starter|scaffold|boilerplate|hello.?world`)

// Category infers a directory category from the merged record.
func Category(a agent.Agent) (string, bool) {
	votes := ballot{}

	tags := map[string]bool{}
	for _, t := range a.Tags {
		tags[strings.ToLower(t)] = true
	}

	for _, rule := range tagCategoryRules {
		for _, t := range rule.tags {
			if tags[t] {
				votes[rule.category] += weightStrong
			}
		}
	}

	for _, p := range descCategoryPatterns {
		if p.re.MatchString(a.Description) {
			votes[p.category] += weightMedium
		}
	}

	for _, skill := range a.Skills {
		skillTags := map[string]bool{}
		for _, t := range skill.Tags {
			skillTags[strings.ToLower(t)] = true
		}
		for _, rule := range tagCategoryRules {
			for _, t := range rule.tags {
				if skillTags[t] {
					votes[rule.category] += weightMedium
					break
				}
			}
		}
	}

	combined := strings.ToLower(a.Name + " " + a.Slug)
	for _, p := range nameCategoryPatterns {
		if p.re.MatchString(combined) {
			votes[p.category] += weightWeak
		}
	}
	if utilityNamePattern.MatchString(combined) {
		votes["utility"] += weightMedium
	}
	if a.HasSource(agent.SourceSamples) {
		votes["utility"] += weightMedium
	}

	return votes.winner(false)
}

var tagFramework = map[string]string{
	"adk": "google-adk", "adk-google": "google-adk", "adk-python": "google-adk",
	"google-adk": "google-adk",
	"langgraph":  "langgraph",
	"langchain":  "langchain",
	"crewai":     "crewai", "crew-ai": "crewai",
	"spring": "spring-boot", "spring-boot": "spring-boot",
	"springboot": "spring-boot", "spring-ai": "spring-boot",
	"autogen": "autogen", "ag2": "autogen",
	"semantic-kernel": "semantic-kernel",
	"llamaindex":      "llamaindex", "llama-index": "llamaindex",
	"nestjs": "nestjs",
	"genkit": "genkit",
}

var frameworkPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)\b(?:google[- ]?adk|agent[- ]?development[- ]?kit)\b`), "google-adk"},
	{regexp.MustCompile(`(?i)\badk\b`), "google-adk"},
	{regexp.MustCompile(`(?i)\blanggraph\b`), "langgraph"},
	{regexp.MustCompile(`(?i)\blangchain\b`), "langchain"},
	{regexp.MustCompile(`(?i)\bcrew[- ]?ai\b`), "crewai"},
	{regexp.MustCompile(`(?i)\bspring[- ]?(?:boot|ai)\b`), "spring-boot"},
	{regexp.MustCompile(`(?i)\bspringboot\b`), "spring-boot"},
	{regexp.MustCompile(`(?i)\b(?:autogen|ag2)\b`), "autogen"},
	{regexp.MustCompile(`(?i)\bsemantic[- ]?kernel\b`), "semantic-kernel"},
	{regexp.MustCompile(`(?i)\bllama[- ]?index\b`), "llamaindex"},
	{regexp.MustCompile(`(?i)\bnestjs\b`), "nestjs"},
	{regexp.MustCompile(`(?i)\bgenkit\b`), "genkit"},
}

// Framework infers an agent framework from the merged record. The bare
// "adk" pattern is too weak on its own: google-adk only wins below the
// strong-signal threshold when an adk tag backs it up.
func Framework(a agent.Agent) (string, bool) {
	votes := ballot{}

	hasADKTag := false
	for _, tag := range a.Tags {
		t := strings.ToLower(tag)
		if fw, ok := tagFramework[t]; ok {
			votes[fw] += weightStrong
			if fw == "google-adk" {
				hasADKTag = true
			}
		}
	}

	allText := a.Name + " " + a.Slug + " " + a.Description + " " + a.Repository
	for _, p := range frameworkPatterns {
		if p.re.MatchString(allText) {
			votes[p.label] += weightMedium
		}
	}

	if strings.Contains(a.Description, "Official A2A") {
		if i := strings.LastIndex(a.Description, ":"); i >= 0 {
			sampleName := a.Description[i+1:]
			for _, p := range frameworkPatterns {
				if p.re.MatchString(sampleName) {
					votes[p.label] += weightSample - 1
				}
			}
		}
	}

	fw, ok := votes.winner(false)
	if !ok {
		return "", false
	}
	if fw == "google-adk" && votes[fw] < weightStrong && !hasADKTag {
		return "", false
	}
	return fw, true
}
