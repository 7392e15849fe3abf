package api

import (
	"encoding/json"
	"time"

	"lectern/internal/objects"
)

// ObjectResponse is the wire form of a repository object.
type ObjectResponse struct {
	Druid       string    `json:"druid"`
	SourceID    string    `json:"sourceId,omitempty"`
	ObjectType  string    `json:"objectType"`
	Label       string    `json:"label"`
	HeadVersion int       `json:"headVersion"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func fromObject(obj *objects.RepositoryObject) ObjectResponse {
	return ObjectResponse{
		Druid:       obj.Druid,
		SourceID:    obj.SourceID,
		ObjectType:  obj.ObjectType,
		Label:       obj.Label,
		HeadVersion: obj.HeadVersion,
		CreatedAt:   obj.CreatedAt,
		UpdatedAt:   obj.UpdatedAt,
	}
}

// VersionResponse is the wire form of one object version.
type VersionResponse struct {
	Version     int        `json:"version"`
	Label       string     `json:"label,omitempty"`
	Description string     `json:"description,omitempty"`
	Open        bool       `json:"open"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

func fromVersion(v *objects.Version) VersionResponse {
	return VersionResponse{
		Version:     v.Version,
		Label:       v.Label,
		Description: v.Description,
		Open:        v.Open(),
		CreatedAt:   v.CreatedAt,
		ClosedAt:    v.ClosedAt,
	}
}

// UserVersionResponse is the wire form of one user version.
type UserVersionResponse struct {
	UserVersion int  `json:"userVersion"`
	Version     int  `json:"version"`
	Withdrawn   bool `json:"withdrawn"`
}

func fromUserVersion(uv *objects.UserVersion) UserVersionResponse {
	return UserVersionResponse{
		UserVersion: uv.UserVersion,
		Version:     uv.Version,
		Withdrawn:   uv.Withdrawn,
	}
}

// RegisterRequest is the object registration payload. Description and
// structural documents pass through as raw JSON.
type RegisterRequest struct {
	Druid         string          `json:"druid"`
	SourceID      string          `json:"sourceId"`
	ObjectType    string          `json:"objectType"`
	Label         string          `json:"label"`
	CocinaVersion string          `json:"cocinaVersion"`
	Description   json.RawMessage `json:"description,omitempty"`
	Structural    json.RawMessage `json:"structural,omitempty"`
}

// OpenVersionRequest carries optional metadata for a newly opened version.
type OpenVersionRequest struct {
	Description string `json:"description"`
}

// UserVersionRequest names the repository version a user version points at.
type UserVersionRequest struct {
	Version int `json:"version"`
}
