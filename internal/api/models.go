package api

import "github.com/alexanderramin/pitwall/internal/domain"

type errorResponse struct {
	Error string `json:"error"`
}

type replaceScheduleRequest struct {
	Document    domain.ScheduleDocument `json:"document"`
	BaseVersion int64                   `json:"base_version"`
	Message     string                  `json:"message,omitempty"`
}

type scheduleResponse struct {
	Document domain.ScheduleDocument `json:"document"`
	Commit   *domain.CommitRecord    `json:"commit,omitempty"`
}

type patchConfigRequest struct {
	Patch   domain.OverlayPatch `json:"patch"`
	Message string              `json:"message,omitempty"`
}

type resetConfigRequest struct {
	Date string `json:"date"`
}

type configResponse struct {
	Overlay domain.ConfigurationOverlay `json:"overlay"`
	Commit  *domain.CommitRecord        `json:"commit,omitempty"`
}

type historyResponse struct {
	Commits []*domain.CommitRecord `json:"commits"`
}

type rollbackRequest struct {
	Version int64 `json:"version"`
}

type syncRequest struct {
	RemotePath string `json:"remote_path,omitempty"`
}

type syncResponse struct {
	Pulled int `json:"pulled"`
	Pushed int `json:"pushed"`
}
