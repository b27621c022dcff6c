package dto

import "gorm.io/datatypes"

type UpdateProfileRequest struct {
	Nickname    *string        `json:"nickname,omitempty"`
	AvatarURL   *string        `json:"avatar_url,omitempty"`
	Bio         *string        `json:"bio,omitempty"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
}

type CreateReportRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	Reason      string `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}
