package cocina

// Source identifies the authority a value is drawn from.
type Source struct {
	Code    string             `json:"code,omitempty"`
	URI     string             `json:"uri,omitempty"`
	Value   string             `json:"value,omitempty"`
	Version string             `json:"version,omitempty"`
	Note    []DescriptiveValue `json:"note,omitempty"`
}

// ValueScript describes the writing system of a value.
type ValueScript struct {
	Code   string  `json:"code,omitempty"`
	Value  string  `json:"value,omitempty"`
	Source *Source `json:"source,omitempty"`
}

// ValueLanguage describes the language and script of a single value.
type ValueLanguage struct {
	Code        string       `json:"code,omitempty"`
	Value       string       `json:"value,omitempty"`
	Source      *Source      `json:"source,omitempty"`
	ValueScript *ValueScript `json:"valueScript,omitempty"`
}

// Standard identifies an encoding standard such as a coordinate reference
// system.
type Standard struct {
	Code  string  `json:"code,omitempty"`
	Value string  `json:"value,omitempty"`
	URI   string  `json:"uri,omitempty"`
	Note  []DescriptiveValue `json:"note,omitempty"`
}

// DescriptiveValue is the universal building block of the descriptive model.
// At most one of Value, StructuredValue, and ParallelValue is populated; a
// node with none of the three is an intentionally empty placeholder.
type DescriptiveValue struct {
	Value           string             `json:"value,omitempty"`
	StructuredValue []DescriptiveValue `json:"structuredValue,omitempty"`
	ParallelValue   []DescriptiveValue `json:"parallelValue,omitempty"`
	Type            string             `json:"type,omitempty"`
	Status          string             `json:"status,omitempty"`
	Code            string             `json:"code,omitempty"`
	URI             string             `json:"uri,omitempty"`
	Standard        *Standard          `json:"standard,omitempty"`
	Encoding        *Source            `json:"encoding,omitempty"`
	Source          *Source            `json:"source,omitempty"`
	DisplayLabel    string             `json:"displayLabel,omitempty"`
	Qualifier       string             `json:"qualifier,omitempty"`
	Note            []DescriptiveValue `json:"note,omitempty"`
	ValueLanguage   *ValueLanguage     `json:"valueLanguage,omitempty"`
}

// Contributor is an agent (person, organization, conference, event, family)
// contributing to the resource.
type Contributor struct {
	Name       []DescriptiveValue `json:"name,omitempty"`
	Type       string             `json:"type,omitempty"`
	Status     string             `json:"status,omitempty"`
	Role       []DescriptiveValue `json:"role,omitempty"`
	Identifier []DescriptiveValue `json:"identifier,omitempty"`
	Note       []DescriptiveValue `json:"note,omitempty"`
}

// Event is something that happened to the resource: creation, publication,
// capture, copyright, and so on.
type Event struct {
	Type         string             `json:"type,omitempty"`
	DisplayLabel string             `json:"displayLabel,omitempty"`
	Date         []DescriptiveValue `json:"date,omitempty"`
	Contributor  []Contributor      `json:"contributor,omitempty"`
	Location     []DescriptiveValue `json:"location,omitempty"`
	Identifier   []DescriptiveValue `json:"identifier,omitempty"`
	Note         []DescriptiveValue `json:"note,omitempty"`
}

// Language is a language of the resource content.
type Language struct {
	Value        string            `json:"value,omitempty"`
	Code         string            `json:"code,omitempty"`
	URI          string            `json:"uri,omitempty"`
	Status       string            `json:"status,omitempty"`
	Source       *Source           `json:"source,omitempty"`
	Script       *DescriptiveValue `json:"script,omitempty"`
	DisplayLabel string            `json:"displayLabel,omitempty"`
}

// RelatedResource is another resource associated with the described resource.
type RelatedResource struct {
	Type            string             `json:"type,omitempty"`
	Status          string             `json:"status,omitempty"`
	DisplayLabel    string             `json:"displayLabel,omitempty"`
	Title           []DescriptiveValue `json:"title,omitempty"`
	Contributor     []Contributor      `json:"contributor,omitempty"`
	Note            []DescriptiveValue `json:"note,omitempty"`
	Identifier      []DescriptiveValue `json:"identifier,omitempty"`
	Purl            string             `json:"purl,omitempty"`
}

// Geographic holds embedded geospatial metadata: forms describing the data
// format/type and subjects carrying coordinates or coverage.
type Geographic struct {
	Form    []DescriptiveValue `json:"form,omitempty"`
	Subject []DescriptiveValue `json:"subject,omitempty"`
}

// Access describes where the resource is held and how it may be accessed.
type Access struct {
	PhysicalLocation []DescriptiveValue `json:"physicalLocation,omitempty"`
	DigitalLocation  []DescriptiveValue `json:"digitalLocation,omitempty"`
	AccessContact    []DescriptiveValue `json:"accessContact,omitempty"`
	URL              []DescriptiveValue `json:"url,omitempty"`
	Note             []DescriptiveValue `json:"note,omitempty"`
}

// AdminMetadata describes the metadata record itself rather than the
// resource.
type AdminMetadata struct {
	Contributor []Contributor      `json:"contributor,omitempty"`
	Event       []Event            `json:"event,omitempty"`
	Language    []Language         `json:"language,omitempty"`
	Note        []DescriptiveValue `json:"note,omitempty"`
	Identifier  []DescriptiveValue `json:"identifier,omitempty"`
	Standard    []DescriptiveValue `json:"metadataStandard,omitempty"`
}

// Description is the full descriptive record for one repository object.
type Description struct {
	Title           []DescriptiveValue `json:"title,omitempty"`
	Contributor     []Contributor      `json:"contributor,omitempty"`
	Event           []Event            `json:"event,omitempty"`
	Form            []DescriptiveValue `json:"form,omitempty"`
	Language        []Language         `json:"language,omitempty"`
	Note            []DescriptiveValue `json:"note,omitempty"`
	Identifier      []DescriptiveValue `json:"identifier,omitempty"`
	Subject         []DescriptiveValue `json:"subject,omitempty"`
	RelatedResource []RelatedResource  `json:"relatedResource,omitempty"`
	Geographic      []Geographic       `json:"geographic,omitempty"`
	Access          *Access            `json:"access,omitempty"`
	AdminMetadata   *AdminMetadata     `json:"adminMetadata,omitempty"`
	Purl            string             `json:"purl,omitempty"`
}
