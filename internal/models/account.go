package models

import "encoding/json"

// AccountInfo is the decoded payload of the index AJAX action. It carries the
// per-session secrets the rest of the client needs.
type AccountInfo struct {
	Username      string          `json:"username"`
	ID            int             `json:"id"`
	AuthKey       string          `json:"authkey"`
	PassKey       string          `json:"passkey"`
	Notifications json.RawMessage `json:"notifications,omitempty"`
	UserStats     struct {
		Uploaded      int64   `json:"uploaded"`
		Downloaded    int64   `json:"downloaded"`
		Ratio         float64 `json:"ratio"`
		RequiredRatio float64 `json:"requiredratio"`
		Class         string  `json:"class"`
	} `json:"userstats"`
}
