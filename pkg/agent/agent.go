// Package agent defines the canonical record produced by the crawl pipeline.
//
// Every source fetcher normalizes its raw items into [Agent] values; the
// merge stage combines them by slug, and the writer serializes the survivors
// to one JSON file per agent. The label sets below (categories, languages,
// frameworks) are closed vocabularies shared by the classifiers, the merge
// rules, and the facet counts in the run summary.
package agent

// Source labels, in merge priority order. When the same agent is discovered
// by more than one source, fields from a higher-priority source win.
const (
	SourceRegistry = "a2a-registry"
	SourceSamples  = "official-samples"
	SourceSearch   = "github-search"
	SourceBroad    = "github-topic"
)

// SourcePriority lists all source labels from most to least authoritative.
var SourcePriority = []string{SourceRegistry, SourceSamples, SourceSearch, SourceBroad}

// Sentinel values used by the merge stage: a field holding its sentinel is
// considered unset and may be filled by a lower-priority source.
const (
	CategoryGeneral = "general"
	LanguageUnknown = "unknown"
	FrameworkCustom = "custom"
	LicenseUnknown  = "unknown"
	AuthNone        = "none"
)

// Categories is the closed set of category labels.
var Categories = []string{
	"orchestration", "code-generation", "search", "data-analytics",
	"conversational", "infrastructure", "finance", "security",
	"media-content", "travel", "enterprise", "utility", CategoryGeneral,
}

// Languages is the closed set of implementation-language labels.
var Languages = []string{
	"python", "typescript", "java", "go", "rust", "csharp", "kotlin",
	"php", "ruby", LanguageUnknown,
}

// Frameworks is the closed set of agent-framework labels.
var Frameworks = []string{
	"google-adk", "langgraph", "crewai", "autogen", "semantic-kernel",
	"langchain", "llamaindex", "genkit", "spring-boot", "nestjs",
	FrameworkCustom,
}

// Tag caps applied before and after merge.
const (
	MaxTagsPerSource = 10
	MaxTagsMerged    = 15
)

// Provider identifies the organization or person behind an agent.
type Provider struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Skill is a named capability advertised in an agent card.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// Capabilities mirrors the boolean capability flags of an A2A agent card.
type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
	MultiTurn         bool `json:"multiTurn"`
}

// Agent is the canonical per-agent record.
//
// Slug doubles as the merge key and the output filename stem. Sources is
// internal bookkeeping for merge provenance and is stripped before records
// are written to disk.
type Agent struct {
	Slug         string       `json:"slug"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Provider     Provider     `json:"provider"`
	Repository   string       `json:"repository,omitempty"`
	Category     string       `json:"category"`
	Tags         []string     `json:"tags"`
	Framework    string       `json:"framework"`
	Language     string       `json:"language"`
	Skills       []Skill      `json:"skills"`
	Capabilities Capabilities `json:"capabilities"`
	AuthType     string       `json:"authType"`
	AgentCardURL string       `json:"agentCardUrl,omitempty"`
	EndpointURL  string       `json:"endpointUrl,omitempty"`
	SDKs         []string     `json:"sdks"`
	GitHubStars  int          `json:"githubStars"`
	LastUpdated  string       `json:"lastUpdated"`
	Official     bool         `json:"official"`
	SelfHosted   bool         `json:"selfHosted"`
	License      string       `json:"license"`
	Sources      []string     `json:"sources,omitempty"`
}

// HasSource reports whether label is already recorded in a.Sources.
func (a *Agent) HasSource(label string) bool {
	for _, s := range a.Sources {
		if s == label {
			return true
		}
	}
	return false
}

// AddSource appends label to a.Sources if not already present.
func (a *Agent) AddSource(label string) {
	if !a.HasSource(label) {
		a.Sources = append(a.Sources, label)
	}
}

// DedupeTags returns tags with duplicates removed (first occurrence wins,
// case preserved) and truncated to at most limit entries. The result is
// never nil, so the tags field always serializes as a JSON array.
func DedupeTags(tags []string, limit int) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
