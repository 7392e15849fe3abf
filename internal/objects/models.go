package objects

import "time"

// RepositoryObject is the versioned object root. LockToken changes on every
// successful mutation and doubles as the API ETag.
type RepositoryObject struct {
	Druid       string
	SourceID    string
	ObjectType  string
	Label       string
	LockToken   string
	HeadVersion int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Version is one repository object version. A nil ClosedAt marks the open
// draft; at most one version per object may be open at a time.
type Version struct {
	Druid           string
	Version         int
	Label           string
	Description     string
	CocinaVersion   string
	DescriptionJSON string
	StructuralJSON  string
	CreatedAt       time.Time
	ClosedAt        *time.Time
}

// Open reports whether the version is still a draft.
func (v *Version) Open() bool {
	return v != nil && v.ClosedAt == nil
}

// UserVersion is a public-facing pointer at a closed repository version.
type UserVersion struct {
	Druid       string
	UserVersion int
	Version     int
	Withdrawn   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Registration carries the fields needed to mint a new repository object.
type Registration struct {
	Druid           string
	SourceID        string
	ObjectType      string
	Label           string
	CocinaVersion   string
	DescriptionJSON string
	StructuralJSON  string
}

// VersionParams carries the mutable fields of a draft version.
type VersionParams struct {
	Label           string
	Description     string
	CocinaVersion   string
	DescriptionJSON string
	StructuralJSON  string
}
