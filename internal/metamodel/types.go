package metamodel

// SubjectIDConfig locates the subject identifier of a record.
type SubjectIDConfig struct {
	Path string `json:"path" yaml:"path" msgpack:"path" bson:"path"`
}

// SensitiveDataConfig locates one sensitive field and the value that replaces it.
type SensitiveDataConfig struct {
	Path             string `json:"path" yaml:"path" msgpack:"path" bson:"path"`
	ReplacementValue string `json:"replacementValue" yaml:"replacementValue" msgpack:"replacementValue" bson:"replacementValue"`
}

// DataProtectionConfig is the metamodel of a single data-holder type.
type DataProtectionConfig struct {
	Type          string                `json:"type" yaml:"type" msgpack:"type" bson:"type"`
	Revision      string                `json:"revision" yaml:"revision" msgpack:"revision" bson:"revision"`
	SubjectID     SubjectIDConfig       `json:"subjectId" yaml:"subjectId" msgpack:"subjectId" bson:"subjectId"`
	SensitiveData []SensitiveDataConfig `json:"sensitiveData" yaml:"sensitiveData" msgpack:"sensitiveData" bson:"sensitiveData"`
}

// DataProtectionConfigList is the generator output, one entry per data-holder
// type in discovery order.
type DataProtectionConfigList struct {
	Config []DataProtectionConfig `json:"config" yaml:"config" msgpack:"config" bson:"config"`
}

// NewDataProtectionConfigList returns an empty list that encodes as [] rather than null.
func NewDataProtectionConfigList() DataProtectionConfigList {
	return DataProtectionConfigList{Config: []DataProtectionConfig{}}
}
