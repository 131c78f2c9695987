package formula

// Formula represents one Homebrew formula record from the formulae.brew.sh API.
// Only the fields the tool interprets or displays are modeled; the API returns
// many more that are not relevant here.
type Formula struct {
	Name     string   `json:"name"`
	FullName string   `json:"full_name,omitempty"`
	Desc     string   `json:"desc,omitempty"`
	License  string   `json:"license,omitempty"`
	Homepage string   `json:"homepage,omitempty"`
	Versions Versions `json:"versions"`
}

// Versions holds the nested version block of a formula record.
type Versions struct {
	Stable string `json:"stable,omitempty"`
	Head   string `json:"head,omitempty"`
	Bottle bool   `json:"bottle,omitempty"`
}

// StableVersion returns the stable version string, or "" when the API
// record carries no stable version. A missing version is never an error.
func (f Formula) StableVersion() string {
	return f.Versions.Stable
}
