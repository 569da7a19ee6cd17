package crawl

import (
	"reflect"
	"testing"

	"github.com/agentdex/agentdex/pkg/agent"
)

func registryEcho() agent.Agent {
	return agent.Agent{
		Slug:         "echo-agent",
		Name:         "Echo Agent",
		Description:  "Echoes every message back over the A2A protocol.",
		Category:     agent.CategoryGeneral,
		Framework:    agent.FrameworkCustom,
		Language:     "python",
		Skills:       []agent.Skill{{ID: "echo", Name: "Echo", Description: "Repeats input."}},
		Capabilities: agent.Capabilities{Streaming: true},
		AuthType:     agent.AuthNone,
		EndpointURL:  "https://echo.acme.dev",
		License:      "MIT",
		LastUpdated:  "2025-04-01",
		Sources:      []string{agent.SourceRegistry},
	}
}

func searchEcho() agent.Agent {
	return agent.Agent{
		Slug:        "echo-agent",
		Name:        "Echo Agent",
		Description: "An echo agent repository discovered via topic search.",
		Category:    agent.CategoryGeneral,
		Framework:   "langgraph",
		Language:    agent.LanguageUnknown,
		Repository:  "https://github.com/someorg/echo-agent",
		Tags:        []string{"a2a", "echo"},
		GitHubStars: 42,
		License:     agent.LicenseUnknown,
		LastUpdated: "2025-05-01",
		AuthType:    agent.AuthNone,
		Sources:     []string{agent.SourceSearch},
	}
}

func TestMergeUnionsSources(t *testing.T) {
	m := Merge(registryEcho(), searchEcho())
	want := []string{agent.SourceRegistry, agent.SourceSearch}
	if !reflect.DeepEqual(m.Sources, want) {
		t.Errorf("Sources = %v, want %v", m.Sources, want)
	}
}

func TestMergePrecedence(t *testing.T) {
	m := Merge(registryEcho(), searchEcho())

	if len(m.Skills) != 1 || m.Skills[0].ID != "echo" {
		t.Errorf("Skills = %+v, want registry skills kept", m.Skills)
	}
	if !m.Capabilities.Streaming {
		t.Error("Capabilities lost in merge")
	}
	if m.GitHubStars != 42 {
		t.Errorf("GitHubStars = %d, want max(0, 42)", m.GitHubStars)
	}
	if m.LastUpdated != "2025-05-01" {
		t.Errorf("LastUpdated = %q, want later date", m.LastUpdated)
	}
	if m.Repository != "https://github.com/someorg/echo-agent" {
		t.Errorf("Repository = %q, want filled from incoming", m.Repository)
	}
	if m.Framework != "langgraph" {
		t.Errorf("Framework = %q, want sentinel replaced", m.Framework)
	}
	if m.License != "MIT" {
		t.Errorf("License = %q, incoming sentinel must not overwrite", m.License)
	}
	if m.EndpointURL != "https://echo.acme.dev" {
		t.Errorf("EndpointURL = %q", m.EndpointURL)
	}
}

func TestMergeRegistrySkillsWinFromEitherSide(t *testing.T) {
	// Search seen first (same-source duplicates aside, MergeAll prevents
	// this ordering, but Merge itself must still let registry skills win).
	m := Merge(searchEcho(), registryEcho())
	if len(m.Skills) != 1 || m.Skills[0].ID != "echo" {
		t.Errorf("Skills = %+v, want registry skills adopted", m.Skills)
	}
	if !m.Capabilities.Streaming {
		t.Error("registry capabilities not adopted")
	}
	if m.EndpointURL != "https://echo.acme.dev" {
		t.Errorf("EndpointURL = %q, want filled from registry", m.EndpointURL)
	}
}

func TestMergeIsPure(t *testing.T) {
	existing, incoming := registryEcho(), searchEcho()
	existingSources := len(existing.Sources)
	_ = Merge(existing, incoming)
	if len(existing.Sources) != existingSources {
		t.Error("Merge mutated its existing argument")
	}
}

func TestMergeTagCap(t *testing.T) {
	existing := registryEcho()
	existing.Tags = []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}
	incoming := searchEcho()
	incoming.Tags = []string{"t5", "u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9"}

	m := Merge(existing, incoming)
	if len(m.Tags) != agent.MaxTagsMerged {
		t.Errorf("len(Tags) = %d, want cap %d", len(m.Tags), agent.MaxTagsMerged)
	}
	// Union keeps first occurrence; the duplicate t5 must not appear twice.
	seen := map[string]int{}
	for _, tag := range m.Tags {
		seen[tag]++
	}
	if seen["t5"] != 1 {
		t.Errorf("t5 count = %d, want 1", seen["t5"])
	}
}

func TestMergeTagsNeverNil(t *testing.T) {
	existing := registryEcho()
	existing.Tags = nil
	incoming := searchEcho()
	incoming.Tags = nil

	m := Merge(existing, incoming)
	if m.Tags == nil {
		t.Error("Tags should be an empty slice when both sides have none")
	}
}

func TestMergeAllIdempotentWithinSource(t *testing.T) {
	a := searchEcho()

	once := MergeAll([]agent.Agent{a})
	twice := MergeAll([]agent.Agent{a, a})
	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("lengths = %d/%d, want 1/1", len(once), len(twice))
	}
	if !reflect.DeepEqual(once[0], twice[0]) {
		t.Errorf("duplicate within one source changed the record:\nonce:  %+v\ntwice: %+v", once[0], twice[0])
	}
	if len(twice[0].Sources) != 1 {
		t.Errorf("Sources = %v, want single label", twice[0].Sources)
	}
}

func TestMergeAllPreservesInsertionOrder(t *testing.T) {
	first := registryEcho()
	other := searchEcho()
	other.Slug = "other-agent"

	merged := MergeAll([]agent.Agent{first}, []agent.Agent{other, searchEcho()})
	if len(merged) != 2 {
		t.Fatalf("got %d records, want 2", len(merged))
	}
	if merged[0].Slug != "echo-agent" || merged[1].Slug != "other-agent" {
		t.Errorf("order = %q, %q", merged[0].Slug, merged[1].Slug)
	}
}
