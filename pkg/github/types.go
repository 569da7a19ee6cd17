package github

// TreeEntry represents a file or directory in a recursive tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob" or "tree"
	Size int    `json:"size,omitempty"`
}

// treeResponse is the GitHub git/trees API response.
type treeResponse struct {
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// Owner is the owning user or organization of a repository.
type Owner struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
	Type    string `json:"type"` // "User" or "Organization"
}

// Repo is a repository as returned by the search API.
type Repo struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Owner       Owner    `json:"owner"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Archived    bool     `json:"archived"`
	PushedAt    string   `json:"pushed_at"`
	UpdatedAt   string   `json:"updated_at"`
	License     struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

// SearchResult is one page of repository search results.
type SearchResult struct {
	TotalCount int    `json:"total_count"`
	Items      []Repo `json:"items"`
}
