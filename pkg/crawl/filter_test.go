package crawl

import (
	"strings"
	"testing"

	"github.com/agentdex/agentdex/pkg/agent"
)

func TestKeep(t *testing.T) {
	base := agent.Agent{
		Name:        "Echo Agent",
		Description: "A description comfortably over the minimum length.",
		Repository:  "https://github.com/acme/echo-agent",
	}

	tests := []struct {
		name   string
		mutate func(*agent.Agent)
		want   bool
	}{
		{"complete record", func(a *agent.Agent) {}, true},
		{"short name", func(a *agent.Agent) { a.Name = "Ab" }, false},
		{"three char name is enough", func(a *agent.Agent) { a.Name = "Bot" }, true},
		{"nine char description", func(a *agent.Agent) { a.Description = strings.Repeat("x", 9) }, false},
		{"ten char description", func(a *agent.Agent) { a.Description = strings.Repeat("x", 10) }, true},
		{"nine rune cjk description", func(a *agent.Agent) { a.Description = strings.Repeat("答", 9) }, false},
		{"ten rune cjk description", func(a *agent.Agent) { a.Description = strings.Repeat("答", 10) }, true},
		{"three rune cjk name", func(a *agent.Agent) { a.Name = "応答体" }, true},
		{"no links at all", func(a *agent.Agent) { a.Repository = "" }, false},
		{"endpoint instead of repository", func(a *agent.Agent) {
			a.Repository = ""
			a.EndpointURL = "https://echo.acme.dev"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.mutate(&a)
			if got := Keep(a); got != tt.want {
				t.Errorf("Keep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	a := agent.Agent{Name: "First Agent", Description: "Long enough description.", Repository: "r"}
	b := agent.Agent{Name: "No", Description: "Long enough description.", Repository: "r"}
	c := agent.Agent{Name: "Third Agent", Description: "Long enough description.", Repository: "r"}

	got := Filter([]agent.Agent{a, b, c})
	if len(got) != 2 || got[0].Name != "First Agent" || got[1].Name != "Third Agent" {
		t.Errorf("Filter = %+v", got)
	}
}
