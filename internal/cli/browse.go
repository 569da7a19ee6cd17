package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/config"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the crawled agents interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, true)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			agents, err := loadAgents(cfg.OutputDir)
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				printWarning("No agents found in %s, run crawl first", cfg.OutputDir)
				return nil
			}

			model := NewAgentListModel(agents)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			if m, ok := final.(AgentListModel); ok && m.Selected != nil {
				printAgent(*m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "agentdex.toml", "config file path")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "agents directory (overrides config)")
	return cmd
}

// loadAgents reads every agent file in dir, sorted by stars descending.
func loadAgents(dir string) ([]agent.Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read agents dir: %w", err)
	}

	var agents []agent.Agent
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var a agent.Agent
		if err := json.Unmarshal(data, &a); err != nil {
			continue
		}
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool {
		if agents[i].GitHubStars != agents[j].GitHubStars {
			return agents[i].GitHubStars > agents[j].GitHubStars
		}
		return agents[i].Slug < agents[j].Slug
	})
	return agents, nil
}

// printAgent renders one agent's details after selection.
func printAgent(a agent.Agent) {
	fmt.Println(StyleTitle.Render(a.Name))
	printDetail("%s", a.Description)
	printKeyValue("category", a.Category)
	printKeyValue("language", a.Language)
	printKeyValue("framework", a.Framework)
	printKeyValue("stars", fmt.Sprintf("%d", a.GitHubStars))
	if a.Repository != "" {
		printKeyValue("repository", styleLink.Render(a.Repository))
	}
	if a.EndpointURL != "" {
		printKeyValue("endpoint", styleLink.Render(a.EndpointURL))
	}
	if len(a.Tags) > 0 {
		printKeyValue("tags", strings.Join(a.Tags, ", "))
	}
}

// AgentListModel is the bubbletea model for interactive agent browsing.
type AgentListModel struct {
	Agents   []agent.Agent
	Cursor   int
	Offset   int
	Height   int
	Selected *agent.Agent
}

// NewAgentListModel creates a list model over agents.
func NewAgentListModel(agents []agent.Agent) AgentListModel {
	return AgentListModel{Agents: agents, Height: 15}
}

func (m AgentListModel) Init() tea.Cmd {
	return nil
}

func (m AgentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Agents)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			a := m.Agents[m.Cursor]
			m.Selected = &a
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m AgentListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Agents (%d)", len(m.Agents))))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Agents) {
		end = len(m.Agents)
	}
	for i := m.Offset; i < end; i++ {
		a := m.Agents[i]
		line := fmt.Sprintf("%s  %s", a.Name, listDimStyle.Render(fmt.Sprintf("%s · ★%d", a.Category, a.GitHubStars)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("> ") + listSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move · enter select · q quit"))
	b.WriteString("\n")
	return b.String()
}
